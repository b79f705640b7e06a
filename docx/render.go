package docx

import (
	"errors"

	"github.com/tsawler/md2docx/model"
)

// DefaultImageWidth is the width of embedded pictures.
const DefaultImageWidth model.Inches = 5.5

// ErrImageNotFound is passed to the image error hook for images whose file
// did not exist at conversion time.
var ErrImageNotFound = errors.New("image file not found")

var (
	// headingSpacing holds space before/after for heading levels 1..3.
	headingSpacing = [][2]model.Points{{12, 6}, {10, 6}, {8, 4}}

	fallbackIndent = model.Inches(0.25)
)

// ImageErrorFunc handles an image block that could not be embedded.
type ImageErrorFunc func(d *Document, img model.Image, err error)

// RenderOptions controls how blocks are laid out.
type RenderOptions struct {
	Options
	ImageWidth model.Inches
	// ImageLabel prefixes fallback text, model.DefaultImageLabel when empty.
	ImageLabel string
	// OnImageError replaces the default fallback paragraph.
	OnImageError ImageErrorFunc
}

// Render builds a DOCX document from doc.
func Render(doc *model.Document, opts RenderOptions) *Document {
	d := New(opts.Options)
	d.SetMetadata(doc.Metadata)
	d.AddBlocks(doc.Blocks, opts)
	return d
}

// AddBlocks appends blocks in order.
func (d *Document) AddBlocks(blocks []model.Block, opts RenderOptions) {
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = DefaultImageWidth
	}
	if opts.OnImageError == nil {
		label := opts.ImageLabel
		opts.OnImageError = func(d *Document, img model.Image, _ error) {
			d.AddImageFallback(img, label)
		}
	}

	for _, b := range blocks {
		switch v := b.(type) {
		case model.Heading:
			d.addHeading(v)
		case model.Paragraph:
			p := d.AddParagraph().SetSpacing(0, paragraphSpaceAfter)
			for _, run := range v.Runs {
				p.AddRun(run.Text).SetBold(run.Bold).SetItalic(run.Italic)
			}
		case model.Table:
			d.addTable(v)
		case model.Image:
			d.addImage(v, opts)
		case model.BulletItem:
			d.addBullet(v)
		case model.Rule:
			d.AddParagraph().AddRun(ruleText)
		}
	}
}

func (d *Document) addHeading(h model.Heading) {
	p := d.AddHeading(h.Text, h.Level)
	i := h.Level - 1
	if i < 0 {
		i = 0
	}
	if i >= len(headingSpacing) {
		i = len(headingSpacing) - 1
	}
	p.SetSpacing(headingSpacing[i][0], headingSpacing[i][1])
}

// addTable writes the header in bold followed by the body rows. Cells past
// the header width are dropped and short rows keep empty cells.
func (d *Document) addTable(t model.Table) {
	cols := t.ColCount()
	if cols == 0 {
		return
	}
	tbl := d.AddTable(t.RowCount()+1, cols)
	for c, text := range t.Header {
		tbl.Cell(0, c).SetText(text).SetBold(true)
	}
	for r, row := range t.Rows {
		for c := 0; c < cols && c < len(row); c++ {
			tbl.Cell(r+1, c).SetText(row[c])
		}
	}
}

func (d *Document) addBullet(b model.BulletItem) {
	i := 0
	if b.Level >= 2 {
		i = 1
	}
	style := bulletStyles[i]
	d.AddParagraph().
		SetStyle(style.id).
		SetIndent(style.left, bulletHanging).
		AddRun(b.Text)
}

func (d *Document) addImage(img model.Image, opts RenderOptions) {
	if img.Missing() {
		opts.OnImageError(d, img, ErrImageNotFound)
		return
	}
	p, err := d.AddPicture(img.Path, opts.ImageWidth)
	if err != nil {
		opts.OnImageError(d, img, err)
		return
	}
	p.SetAltText(img.Description)
}

// AddImageFallback appends the indented "[label: description]" paragraph
// shown in place of a picture.
func (d *Document) AddImageFallback(img model.Image, label string) *Paragraph {
	p := d.AddParagraph().SetIndent(fallbackIndent, 0)
	p.AddRun(img.Fallback(label))
	return p
}
