// Package htmldoc renders a model.Document as a standalone HTML preview and
// parses such previews back into blocks.
package htmldoc

import (
	"fmt"
	"io"
	"path/filepath"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/md2docx/model"
)

// DefaultStylesheet approximates the DOCX layout.
const DefaultStylesheet = `body{font-family:Calibri,"Malgun Gothic",sans-serif;font-size:11pt;max-width:6.5in;margin:1in auto}
h1{margin:12pt 0 6pt}h2{margin:10pt 0 6pt}h3{margin:8pt 0 4pt}p{margin:0 0 6pt}
table{border-collapse:collapse}th,td{border:1px solid #4f81bd;padding:2pt 6pt}th{font-weight:bold}
figure{text-align:center;margin:0 0 6pt}figure img{width:5.5in;max-width:100%}
p.missing-image{margin-left:0.25in}`

// Options controls the generated markup.
type Options struct {
	// ImageLabel prefixes missing-image text, model.DefaultImageLabel when empty.
	ImageLabel string
	Lang       string
	// Stylesheet is inlined in a <style> element. Empty omits it.
	Stylesheet string
	// ImageSrc returns the src attribute of a picture. The default is the
	// image path with forward slashes.
	ImageSrc func(img model.Image) string
}

// DefaultOptions returns Korean language markup with DefaultStylesheet.
func DefaultOptions() Options {
	return Options{Lang: "ko", Stylesheet: DefaultStylesheet}
}

// Render writes doc as an HTML document.
func Render(w io.Writer, doc *model.Document, opts Options) error {
	if err := html.Render(w, Build(doc, opts)); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// Build returns the document node tree for doc.
func Build(doc *model.Document, opts Options) *html.Node {
	if opts.ImageSrc == nil {
		opts.ImageSrc = func(img model.Image) string { return filepath.ToSlash(img.Path) }
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	if opts.Lang != "" {
		setAttr(htmlEl, "lang", opts.Lang)
	}
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	meta := element(atom.Meta)
	setAttr(meta, "charset", "utf-8")
	head.AppendChild(meta)
	head.AppendChild(withText(element(atom.Title), documentTitle(doc)))
	for _, m := range []struct{ name, content string }{
		{"author", doc.Metadata.Author},
		{"description", doc.Metadata.Description},
	} {
		if m.content == "" {
			continue
		}
		el := element(atom.Meta)
		setAttr(el, "name", m.name)
		setAttr(el, "content", m.content)
		head.AppendChild(el)
	}
	if opts.Stylesheet != "" {
		head.AppendChild(withText(element(atom.Style), opts.Stylesheet))
	}
	htmlEl.AppendChild(head)

	b := &builder{body: element(atom.Body), opts: opts}
	for _, block := range doc.Blocks {
		b.add(block)
	}
	htmlEl.AppendChild(b.body)
	return root
}

// documentTitle prefers the metadata title, then the first heading.
func documentTitle(doc *model.Document) string {
	if doc.Metadata.Title != "" {
		return doc.Metadata.Title
	}
	if toc := doc.TableOfContents(); len(toc) > 0 {
		return toc[0].Text
	}
	return "Document"
}

type builder struct {
	body *html.Node
	opts Options
	// list is the open <ul>, nil once a non-bullet block follows.
	list *html.Node
	// item is the last level-1 <li> of list.
	item *html.Node
}

func (b *builder) add(block model.Block) {
	if _, ok := block.(model.BulletItem); !ok {
		b.list, b.item = nil, nil
	}

	switch v := block.(type) {
	case model.Heading:
		b.body.AppendChild(withText(element(headingAtom(v.Level)), v.Text))
	case model.Paragraph:
		p := element(atom.P)
		for _, run := range v.Runs {
			p.AppendChild(inline(run))
		}
		b.body.AppendChild(p)
	case model.Table:
		b.body.AppendChild(table(v))
	case model.Image:
		b.body.AppendChild(b.image(v))
	case model.BulletItem:
		b.bullet(v)
	case model.Rule:
		b.body.AppendChild(element(atom.Hr))
	}
}

func headingAtom(level int) atom.Atom {
	switch {
	case level <= 1:
		return atom.H1
	case level == 2:
		return atom.H2
	default:
		return atom.H3
	}
}

// inline wraps run text in <strong> and <em> as needed.
func inline(run model.Run) *html.Node {
	n := text(run.Text)
	if run.Italic {
		n = wrap(element(atom.Em), n)
	}
	if run.Bold {
		n = wrap(element(atom.Strong), n)
	}
	return n
}

func table(t model.Table) *html.Node {
	tbl := element(atom.Table)
	thead := element(atom.Thead)
	tr := element(atom.Tr)
	for _, h := range t.Header {
		tr.AppendChild(withText(element(atom.Th), h))
	}
	thead.AppendChild(tr)
	tbl.AppendChild(thead)

	tbody := element(atom.Tbody)
	for r := 0; r < t.RowCount(); r++ {
		tr := element(atom.Tr)
		for c := 0; c < t.ColCount(); c++ {
			tr.AppendChild(withText(element(atom.Td), t.Cell(r, c)))
		}
		tbody.AppendChild(tr)
	}
	tbl.AppendChild(tbody)
	return tbl
}

func (b *builder) image(img model.Image) *html.Node {
	if img.Missing() {
		p := withText(element(atom.P), img.Fallback(b.opts.ImageLabel))
		setAttr(p, "class", "missing-image")
		return p
	}
	el := element(atom.Img)
	setAttr(el, "src", b.opts.ImageSrc(img))
	setAttr(el, "alt", img.Description)
	return wrap(element(atom.Figure), el)
}

// bullet appends to the open list. Level-2 items nest under the previous
// level-1 item.
func (b *builder) bullet(item model.BulletItem) {
	if b.list == nil {
		b.list = element(atom.Ul)
		b.body.AppendChild(b.list)
	}
	li := withText(element(atom.Li), item.Text)

	if item.Level < 2 {
		b.list.AppendChild(li)
		b.item = li
		return
	}

	if b.item == nil {
		b.item = element(atom.Li)
		b.list.AppendChild(b.item)
	}
	sub := b.item.LastChild
	if sub == nil || sub.DataAtom != atom.Ul {
		sub = element(atom.Ul)
		b.item.AppendChild(sub)
	}
	sub.AppendChild(li)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	if s != "" {
		n.AppendChild(text(s))
	}
	return n
}

func wrap(parent, child *html.Node) *html.Node {
	parent.AppendChild(child)
	return parent
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
