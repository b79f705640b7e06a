package md2docx

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/tsawler/md2docx/config"
	"github.com/tsawler/md2docx/docx"
	"github.com/tsawler/md2docx/htmldoc"
	"github.com/tsawler/md2docx/markdown"
	"github.com/tsawler/md2docx/model"
)

const sampleMarkdown = `---
title: Field Notes
author: Park
keywords: [survey, river]
---
# Field Notes

Water was **clear** and *cold*.

| Site | Depth |
| --- | --- |
| A | 1.2 |
| B | 0.8 |

- upstream
  - left bank

![map](map.png)
![lost](lost.png)

---
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing png: %v", err)
	}
}

// sampleFile writes sampleMarkdown and map.png into a temp directory.
func sampleFile(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "map.png"), 200, 100)
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte(sampleMarkdown), 0644); err != nil {
		t.Fatalf("writing markdown: %v", err)
	}
	return path, dir
}

func TestOpen_NonexistentFile(t *testing.T) {
	_, _, err := Open("nonexistent.md").Blocks()
	if err == nil {
		t.Fatal("expected error for non-existent file")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Errorf("error category: got %v", err)
	}
	var gerr *goerrors.Error
	if !errors.As(err, &gerr) || gerr.TextCode != CodeSourceRead {
		t.Errorf("error text code: got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
}

func TestConverter_NoSource(t *testing.T) {
	_, _, err := (&Converter{options: defaultOptions()}).Blocks()
	if err == nil {
		t.Fatal("expected error without source")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Errorf("error category: got %v", err)
	}
}

func TestConverter_Document(t *testing.T) {
	path, dir := sampleFile(t)

	doc, warnings, err := Open(path).Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	if doc.Metadata.Title != "Field Notes" || doc.Metadata.Author != "Park" {
		t.Errorf("Metadata = %+v", doc.Metadata)
	}
	if !reflect.DeepEqual(doc.Metadata.Keywords, []string{"survey", "river"}) {
		t.Errorf("Keywords = %v", doc.Metadata.Keywords)
	}

	table, _ := model.NewTable([]string{"Site", "Depth"}, [][]string{{"A", "1.2"}, {"B", "0.8"}})
	want := []model.Block{
		model.Heading{Level: 1, Text: "Field Notes"},
		model.Paragraph{Runs: []model.Run{
			{Text: "Water was "}, {Text: "clear", Bold: true}, {Text: " and "}, {Text: "cold", Italic: true}, {Text: "."},
		}},
		table,
		model.BulletItem{Level: 1, Text: "upstream"},
		model.BulletItem{Level: 2, Text: "left bank"},
		model.Image{Description: "map", Path: filepath.Join(dir, "map.png"), Resolved: true},
		model.Image{Description: "lost", Path: filepath.Join(dir, "lost.png")},
		model.Rule{},
	}
	if !reflect.DeepEqual(doc.Blocks, want) {
		t.Errorf("Blocks =\n%#v\nwant\n%#v", doc.Blocks, want)
	}

	if len(warnings) != 1 || warnings[0].Kind != markdown.WarnMissingImage {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestConverter_FrontMatterDisabled(t *testing.T) {
	blocks, _, err := FromBytes([]byte("---\ntitle: x\n---\n"), ".").FrontMatter(false).Blocks()
	if err != nil {
		t.Fatalf("Blocks() error = %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("expected front matter lines to be converted")
	}
	if _, ok := blocks[0].(model.Rule); !ok {
		t.Errorf("blocks[0] = %#v, want Rule", blocks[0])
	}
}

func TestConverter_LeadingRuleThenHeading(t *testing.T) {
	blocks, warnings, err := FromBytes([]byte("---\n# Title\n---\nBody text\n"), ".").Blocks()
	if err != nil {
		t.Fatalf("Blocks() error = %v", err)
	}

	want := []model.Block{
		model.Rule{},
		model.Heading{Level: 1, Text: "Title"},
		model.Rule{},
		model.Paragraph{Runs: []model.Run{{Text: "Body text"}}},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Blocks = %#v, want %#v", blocks, want)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestConverter_ImageDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "pic.png"), 10, 10)

	blocks, warnings, err := FromBytes([]byte("![pic](pic.png)"), ".").ImageDir(dir).Blocks()
	if err != nil {
		t.Fatalf("Blocks() error = %v", err)
	}
	img, ok := blocks[0].(model.Image)
	if !ok || !img.Resolved {
		t.Errorf("blocks[0] = %#v, want resolved image", blocks[0])
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestConverter_Immutable(t *testing.T) {
	base := FromBytes([]byte("text"), "base")
	derived := base.ImageDir("other").ImageLabel("Image")

	if base.options.imageDir != "base" || base.options.imageLabel != "이미지" {
		t.Errorf("base options changed: %+v", base.options)
	}
	if derived.options.imageDir != "other" || derived.options.imageLabel != "Image" {
		t.Errorf("derived options = %+v", derived.options)
	}
}

func TestConverter_ImageWidthRange(t *testing.T) {
	tests := []struct {
		width   float64
		wantErr bool
	}{
		{5.5, false},
		{config.MaxImageWidth, false},
		{0, true},
		{-1, true},
		{config.MaxImageWidth + 0.1, true},
	}

	for _, tt := range tests {
		_, _, err := FromBytes([]byte("text"), ".").ImageWidth(tt.width).Blocks()
		if (err != nil) != tt.wantErr {
			t.Errorf("ImageWidth(%v): error = %v, wantErr %v", tt.width, err, tt.wantErr)
		}
		if err != nil && !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Errorf("ImageWidth(%v): category of %v", tt.width, err)
		}
	}
}

func TestConverter_WithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ImageLabel = "Figure"
	cfg.FontName = "Arial"

	c := FromBytes([]byte("text"), "keep").WithConfig(cfg)
	if c.err != nil {
		t.Fatalf("WithConfig() err = %v", c.err)
	}
	if c.options.imageLabel != "Figure" || c.options.fontName != "Arial" {
		t.Errorf("options = %+v", c.options)
	}
	if c.options.imageDir != "keep" {
		t.Errorf("imageDir = %q, want keep", c.options.imageDir)
	}

	cfg.FontSize = 0
	if _, _, err := FromBytes([]byte("text"), ".").WithConfig(cfg).Blocks(); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestConverter_ToDOCX(t *testing.T) {
	path, dir := sampleFile(t)
	out := filepath.Join(dir, "notes.docx")

	warnings, err := Open(path).ImageLabel("Image").ToDOCX(out)
	if err != nil {
		t.Fatalf("ToDOCX() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v", warnings)
	}

	r, err := docx.Open(out)
	if err != nil {
		t.Fatalf("docx.Open() error = %v", err)
	}
	defer r.Close()

	if got := r.Metadata().Title; got != "Field Notes" {
		t.Errorf("Title = %q", got)
	}
	if len(r.Media()) != 1 {
		t.Errorf("Media() = %v, want one picture", r.Media())
	}

	text := r.Text()
	for _, want := range []string{"Field Notes", "Water was clear and cold.", "Site\tDepth", "left bank", "[Image: lost]"} {
		if !strings.Contains(text, want) {
			t.Errorf("document text missing %q:\n%s", want, text)
		}
	}
}

func TestConverter_CorruptImageWarns(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	warnings, err := FromBytes([]byte("![bad](bad.png)"), dir).WriteDOCX(&buf)
	if err != nil {
		t.Fatalf("WriteDOCX() error = %v", err)
	}
	if len(warnings) != 1 || warnings[0].Kind != markdown.WarnImageEmbed {
		t.Fatalf("warnings = %v", warnings)
	}

	r, err := docx.OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	if got := r.Text(); got != "[이미지: bad]" {
		t.Errorf("Text() = %q", got)
	}
}

func TestConverter_ToDOCXUnwritable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "out.docx")
	_, err := FromBytes([]byte("text"), ".").ToDOCX(out)
	if err == nil {
		t.Fatal("expected error for missing output directory")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Errorf("error category: got %v", err)
	}
}

func TestConverter_ToHTML(t *testing.T) {
	path, dir := sampleFile(t)
	out := filepath.Join(dir, "preview.html")

	if _, err := Open(path).ToHTML(out); err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	for _, want := range []string{"<title>Field Notes</title>", `src="map.png"`, "<th>Site</th>", "[이미지: lost]"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}

	doc, err := htmldoc.Open(out)
	if err != nil {
		t.Fatalf("htmldoc.Open() error = %v", err)
	}
	if len(doc.TableOfContents()) != 1 {
		t.Errorf("TableOfContents() = %v", doc.TableOfContents())
	}
}

func TestConverter_WriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if _, err := FromBytes([]byte("# Hi"), ".").WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<h1>Hi</h1>") {
		t.Errorf("html = %s", buf.String())
	}
}

func TestFromBytes_CopiesInput(t *testing.T) {
	data := []byte("# One")
	c := FromBytes(data, ".")
	data[2] = 'X'

	blocks := MustValue(c.Blocks())
	if h, ok := blocks[0].(model.Heading); !ok || h.Text != "One" {
		t.Errorf("blocks[0] = %#v", blocks[0])
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(docx.Open("nonexistent.docx"))
}
