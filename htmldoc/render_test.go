package htmldoc

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/md2docx/model"
)

func renderString(t *testing.T, doc *model.Document, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, doc, opts); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func sampleDocument() *model.Document {
	table, _ := model.NewTable([]string{"Name", "Age"}, [][]string{{"kim", "25"}, {"lee", "30"}})

	doc := model.NewDocument()
	doc.Metadata.Title = "Sample"
	doc.Append(
		model.Heading{Level: 1, Text: "Title"},
		model.Heading{Level: 2, Text: "Section"},
		model.Paragraph{Runs: []model.Run{{Text: "a "}, {Text: "b", Bold: true}, {Text: " "}, {Text: "c", Italic: true}}},
		table,
		model.BulletItem{Level: 1, Text: "first"},
		model.BulletItem{Level: 2, Text: "nested"},
		model.BulletItem{Level: 1, Text: "second"},
		model.Rule{},
		model.Image{Description: "chart", Path: "img/chart.png", Resolved: true},
		model.Image{Description: "gone"},
	)
	return doc
}

func TestRender(t *testing.T) {
	out := renderString(t, sampleDocument(), DefaultOptions())

	for _, want := range []string{
		`<!DOCTYPE html>`,
		`<html lang="ko">`,
		`<meta charset="utf-8"/>`,
		`<title>Sample</title>`,
		`<style>`,
		`<h1>Title</h1><h2>Section</h2>`,
		`<p>a <strong>b</strong> <em>c</em></p>`,
		`<table><thead><tr><th>Name</th><th>Age</th></tr></thead><tbody><tr><td>kim</td><td>25</td></tr><tr><td>lee</td><td>30</td></tr></tbody></table>`,
		`<ul><li>first<ul><li>nested</li></ul></li><li>second</li></ul>`,
		`<hr/>`,
		`<figure><img src="img/chart.png" alt="chart"/></figure>`,
		`<p class="missing-image">[이미지: gone]</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
}

func TestRender_Inline(t *testing.T) {
	tests := []struct {
		name string
		run  model.Run
		want string
	}{
		{"plain", model.Run{Text: "x"}, "<p>x</p>"},
		{"bold", model.Run{Text: "x", Bold: true}, "<p><strong>x</strong></p>"},
		{"italic", model.Run{Text: "x", Italic: true}, "<p><em>x</em></p>"},
		{"both", model.Run{Text: "x", Bold: true, Italic: true}, "<p><strong><em>x</em></strong></p>"},
		{"escaped", model.Run{Text: "<b>&"}, "<p>&lt;b&gt;&amp;</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.NewDocument()
			doc.Append(model.Paragraph{Runs: []model.Run{tt.run}})
			if out := renderString(t, doc, Options{}); !strings.Contains(out, tt.want) {
				t.Errorf("output = %s, want %s", out, tt.want)
			}
		})
	}
}

func TestRender_Options(t *testing.T) {
	doc := model.NewDocument()
	doc.Append(
		model.Image{Description: "pic", Path: "/abs/pic.png", Resolved: true},
		model.Image{Description: "lost"},
	)

	out := renderString(t, doc, Options{
		ImageLabel: "Image",
		ImageSrc:   func(img model.Image) string { return "media/" + img.Description + ".png" },
	})
	if !strings.Contains(out, `src="media/pic.png"`) {
		t.Errorf("custom ImageSrc not used:\n%s", out)
	}
	if !strings.Contains(out, "[Image: lost]") {
		t.Errorf("custom label not used:\n%s", out)
	}
	if strings.Contains(out, "<style>") || strings.Contains(out, "lang=") {
		t.Errorf("zero Options should omit stylesheet and lang:\n%s", out)
	}
}

func TestRender_Title(t *testing.T) {
	doc := model.NewDocument()
	if out := renderString(t, doc, Options{}); !strings.Contains(out, "<title>Document</title>") {
		t.Errorf("empty document title:\n%s", out)
	}

	doc.Append(model.Paragraph{Runs: []model.Run{{Text: "intro"}}}, model.Heading{Level: 2, Text: "First heading"})
	if out := renderString(t, doc, Options{}); !strings.Contains(out, "<title>First heading</title>") {
		t.Errorf("heading title:\n%s", out)
	}
}

func TestRender_OrphanSubBullet(t *testing.T) {
	doc := model.NewDocument()
	doc.Append(model.BulletItem{Level: 2, Text: "orphan"}, model.Rule{}, model.BulletItem{Level: 1, Text: "new list"})

	out := renderString(t, doc, Options{})
	want := `<ul><li><ul><li>orphan</li></ul></li></ul><hr/><ul><li>new list</li></ul>`
	if !strings.Contains(out, want) {
		t.Errorf("output = %s, want %s", out, want)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDocument()
	parsed, err := Parse(strings.NewReader(renderString(t, doc, DefaultOptions())))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if parsed.Metadata.Title != "Sample" {
		t.Errorf("Title = %q", parsed.Metadata.Title)
	}
	if !reflect.DeepEqual(parsed.Blocks, doc.Blocks) {
		t.Errorf("blocks differ\n got %#v\nwant %#v", parsed.Blocks, doc.Blocks)
	}
}
