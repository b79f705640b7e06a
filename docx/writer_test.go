package docx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/md2docx/model"
)

// writePNG creates a w x h PNG file in dir and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing png: %v", err)
	}
	return path
}

// reopen serializes d and parses the result.
func reopen(t *testing.T, d *Document) *Reader {
	t.Helper()
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d bytes, buffer has %d", n, buf.Len())
	}
	r, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	return r
}

func part(t *testing.T, r *Reader, name string) string {
	t.Helper()
	data, err := r.Part(name)
	if err != nil {
		t.Fatalf("Part(%q) error = %v", name, err)
	}
	return string(data)
}

func TestDocument_PackageParts(t *testing.T) {
	d := New(Options{})
	d.AddParagraph().AddRun("hello")
	r := reopen(t, d)

	files := make(map[string]bool)
	for _, f := range r.Files() {
		files[f] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/numbering.xml",
		"word/settings.xml",
	} {
		if !files[want] {
			t.Errorf("package is missing %s", want)
		}
	}
	if len(r.Media()) != 0 {
		t.Errorf("Media() = %v, want none", r.Media())
	}
	if got := r.Metadata().Custom["Application"]; got != applicationName {
		t.Errorf("Application = %q, want %q", got, applicationName)
	}
}

func TestDocument_ParagraphsAndRuns(t *testing.T) {
	d := New(DefaultOptions())
	d.AddHeading("Title", 1)
	p := d.AddParagraph()
	p.AddRun("plain ")
	p.AddRun("bold").SetBold(true)
	p.AddRun(" and ")
	p.AddRun("italic").SetItalic(true)
	p.AddRun("  spaced  ")

	if got := p.Text(); got != "plain bold and italic  spaced  " {
		t.Errorf("Paragraph.Text() = %q", got)
	}

	r := reopen(t, d)
	paras := r.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if paras[0].StyleID != "Heading1" || paras[0].Level != 1 || paras[0].Text != "Title" {
		t.Errorf("heading = %+v", paras[0])
	}
	if paras[0].StyleName != "heading 1" {
		t.Errorf("heading StyleName = %q, want %q", paras[0].StyleName, "heading 1")
	}

	want := []ParsedRun{
		{Text: "plain "},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "italic", Italic: true},
		{Text: "  spaced  "},
	}
	if !reflect.DeepEqual(paras[1].Runs, want) {
		t.Errorf("runs = %+v\nwant %+v", paras[1].Runs, want)
	}
}

func TestRun_Toggles(t *testing.T) {
	d := New(DefaultOptions())
	run := d.AddParagraph().AddRun("x").SetBold(true).SetItalic(true)
	if !run.Bold() || !run.Italic() {
		t.Fatal("expected bold italic run")
	}
	run.SetBold(false)
	if run.Bold() || !run.Italic() {
		t.Errorf("after SetBold(false): bold=%v italic=%v", run.Bold(), run.Italic())
	}
	if run.Text() != "x" {
		t.Errorf("Text() = %q", run.Text())
	}
}

func TestDocument_AddHeadingClampsLevel(t *testing.T) {
	d := New(DefaultOptions())
	d.AddHeading("low", 0)
	d.AddHeading("deep", 7)

	r := reopen(t, d)
	paras := r.Paragraphs()
	if paras[0].StyleID != "Heading1" {
		t.Errorf("level 0 style = %q, want Heading1", paras[0].StyleID)
	}
	if paras[1].StyleID != "Heading3" {
		t.Errorf("level 7 style = %q, want Heading3", paras[1].StyleID)
	}
}

func TestDocument_Table(t *testing.T) {
	d := New(DefaultOptions())
	tbl := d.AddTable(2, 3)
	if tbl.Rows() != 2 || tbl.Cols() != 3 {
		t.Fatalf("table is %dx%d, want 2x3", tbl.Rows(), tbl.Cols())
	}
	tbl.Cell(0, 0).SetText("a").SetBold(true)
	tbl.Cell(0, 1).SetText("b").SetBold(true)
	tbl.Cell(0, 2).SetText("c").SetBold(true)
	tbl.Cell(1, 1).SetText("2")

	if tbl.Cell(2, 0) != nil || tbl.Cell(0, 3) != nil || tbl.Cell(-1, 0) != nil {
		t.Error("out of range Cell() should be nil")
	}
	if got := tbl.Cell(1, 1).Text(); got != "2" {
		t.Errorf("Cell(1,1).Text() = %q", got)
	}

	r := reopen(t, d)
	tables := r.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	want := [][]string{{"a", "b", "c"}, {"", "2", ""}}
	if !reflect.DeepEqual(tables[0].Rows, want) {
		t.Errorf("rows = %q, want %q", tables[0].Rows, want)
	}
	if !tables[0].HeaderBold {
		t.Error("header row should be bold")
	}
	if tables[0].StyleID != "LightGrid-Accent1" {
		t.Errorf("StyleID = %q", tables[0].StyleID)
	}
}

func TestDocument_AddPicture(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "wide.png", 200, 100)

	d := New(DefaultOptions())
	p, err := d.AddPicture(path, 5.5)
	if err != nil {
		t.Fatalf("AddPicture() error = %v", err)
	}
	p.SetAltText("a wide picture")
	if d.MediaCount() != 1 {
		t.Errorf("MediaCount() = %d, want 1", d.MediaCount())
	}

	r := reopen(t, d)
	if media := r.Media(); len(media) != 1 || media[0] != "word/media/image1.png" {
		t.Errorf("Media() = %v", media)
	}

	paras := r.Paragraphs()
	if len(paras) != 1 || len(paras[0].Images) != 1 {
		t.Fatalf("expected one picture paragraph, got %+v", paras)
	}
	img := paras[0].Images[0]
	if img.Width != 5029200 || img.Height != 2514600 {
		t.Errorf("extent = %dx%d EMU, want 5029200x2514600", img.Width, img.Height)
	}
	if img.Target != "word/media/image1.png" {
		t.Errorf("Target = %q", img.Target)
	}
	if img.Description != "a wide picture" {
		t.Errorf("Description = %q", img.Description)
	}
	if paras[0].Alignment != "center" {
		t.Errorf("Alignment = %q, want center", paras[0].Alignment)
	}

	ct := part(t, r, "[Content_Types].xml")
	if !strings.Contains(ct, `Extension="png" ContentType="image/png"`) {
		t.Errorf("content types missing png default:\n%s", ct)
	}
}

func TestDocument_AddPictureErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	os.WriteFile(bad, []byte("not an image"), 0644)

	d := New(DefaultOptions())
	if _, err := d.AddPicture(filepath.Join(dir, "missing.png"), 5.5); err == nil {
		t.Error("AddPicture() on missing file should fail")
	}
	if _, err := d.AddPicture(bad, 5.5); err == nil {
		t.Error("AddPicture() on corrupt file should fail")
	}
	if _, err := d.AddPicture(writePNG(t, dir, "ok.png", 10, 10), 0); err == nil {
		t.Error("AddPicture() with zero width should fail")
	}
	if d.MediaCount() != 0 {
		t.Errorf("MediaCount() = %d after failures, want 0", d.MediaCount())
	}
}

func TestDocument_AddPictureDataDownscales(t *testing.T) {
	dir := t.TempDir()
	data, _ := os.ReadFile(writePNG(t, dir, "big.png", 400, 200))

	d := New(Options{MaxImagePixels: 100})
	if _, err := d.AddPictureData(data, 2); err != nil {
		t.Fatalf("AddPictureData() error = %v", err)
	}

	r := reopen(t, d)
	stored, err := r.Part("word/media/image1.png")
	if err != nil {
		t.Fatalf("media part: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(stored))
	if err != nil {
		t.Fatalf("stored media is not PNG: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("stored size = %dx%d, want 100x50", cfg.Width, cfg.Height)
	}
}

func TestDocument_Metadata(t *testing.T) {
	d := New(Options{Created: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)})
	d.SetMetadata(model.Metadata{
		Title:       "Report",
		Author:      "Kim",
		Subject:     "Quarterly",
		Description: "Numbers & notes",
		Keywords:    []string{"finance", "q2"},
	})
	r := reopen(t, d)

	meta := r.Metadata()
	if meta.Title != "Report" || meta.Author != "Kim" || meta.Subject != "Quarterly" {
		t.Errorf("Metadata() = %+v", meta)
	}
	if meta.Description != "Numbers & notes" {
		t.Errorf("Description = %q", meta.Description)
	}
	if !reflect.DeepEqual(meta.Keywords, []string{"finance", "q2"}) {
		t.Errorf("Keywords = %q", meta.Keywords)
	}
	if core := part(t, r, "docProps/core.xml"); !strings.Contains(core, "2024-05-01T12:00:00Z") {
		t.Errorf("core.xml missing creation stamp:\n%s", core)
	}
}

func TestStylesPart(t *testing.T) {
	styles := string(stylesPart(Options{FontName: "A&B", FontSize: 12, TableStyle: "LightGrid-Accent1"}))

	for _, want := range []string{
		`w:ascii="A&amp;B"`,
		`<w:sz w:val="24"/>`,
		`w:styleId="Heading1"`,
		`w:styleId="Heading3"`,
		`w:styleId="ListBullet"`,
		`w:styleId="ListBullet2"`,
		`w:styleId="LightGrid-Accent1"`,
		`<w:ind w:left="720" w:hanging="360"/>`,
	} {
		if !strings.Contains(styles, want) {
			t.Errorf("styles.xml missing %s", want)
		}
	}

	if strings.Contains(string(stylesPart(Options{FontName: "Calibri", FontSize: 11})), "LightGrid") {
		t.Error("table style should be omitted when empty")
	}
}

func TestDocument_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.docx")
	os.WriteFile(path, []byte("old"), 0644)

	d := New(DefaultOptions())
	d.AddParagraph().AddRun("saved")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	if r.Text() != "saved" {
		t.Errorf("Text() = %q", r.Text())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only out.docx", len(entries))
	}

	if err := d.Save(filepath.Join(dir, "missing", "out.docx")); err == nil {
		t.Error("Save() into a missing directory should fail")
	}
}
