package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/md2docx/imaging"
	"github.com/tsawler/md2docx/model"
)

// Page geometry: US Letter with one inch margins.
const (
	pageWidth    model.Inches = 8.5
	pageHeight   model.Inches = 11
	pageMargin   model.Inches = 1
	contentWidth              = pageWidth - 2*pageMargin
)

const headingColor = "1F3864"

var (
	// headingSizes holds the font size of Heading1, Heading2, ...
	headingSizes = []model.Points{16, 13, 12}

	paragraphSpaceAfter = model.Points(6)

	bulletHanging = model.Inches(0.25)
	bulletStyles  = []struct {
		id, name string
		left     model.Inches
	}{
		{styleListBullet, "List Bullet", 0.25},
		{styleListBullet2, "List Bullet 2", 0.5},
	}
)

// Alignment is a paragraph justification value.
type Alignment string

// Paragraph alignments
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Options configures a new document.
type Options struct {
	FontName   string
	FontSize   model.Points
	TableStyle string
	// MaxImagePixels downscales pictures whose longest side exceeds it.
	// Zero keeps the original size.
	MaxImagePixels int
	// Created stamps docProps/core.xml. Zero means the time of writing.
	Created time.Time
}

// DefaultOptions returns Calibri 11pt with the LightGrid-Accent1 table style.
func DefaultOptions() Options {
	return Options{
		FontName:   "Calibri",
		FontSize:   11,
		TableStyle: "LightGrid-Accent1",
	}
}

// Document is a DOCX package under construction.
type Document struct {
	opts       Options
	meta       model.Metadata
	body       xBody
	rels       []relationshipXML
	media      []mediaFile
	mediaTypes map[string]string
	pictures   int
}

type mediaFile struct {
	name string
	data []byte
}

// New creates an empty document. Zero fields of opts take their
// DefaultOptions value.
func New(opts Options) *Document {
	def := DefaultOptions()
	if opts.FontName == "" {
		opts.FontName = def.FontName
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	return &Document{
		opts:       opts,
		rels:       documentRels(),
		mediaTypes: make(map[string]string),
	}
}

// SetMetadata sets the core document properties.
func (d *Document) SetMetadata(meta model.Metadata) {
	d.meta = meta
}

// Paragraph is a handle to a paragraph in a Document.
type Paragraph struct {
	p *xParagraph
}

// Run is a handle to a run of text.
type Run struct {
	r *xRun
}

// AddParagraph appends an empty paragraph.
func (d *Document) AddParagraph() *Paragraph {
	p := &xParagraph{}
	d.body.Items = append(d.body.Items, p)
	return &Paragraph{p: p}
}

// AddHeading appends a heading paragraph. Levels outside the defined
// heading styles are clamped.
func (d *Document) AddHeading(text string, level int) *Paragraph {
	if level < 1 {
		level = 1
	}
	if level > len(headingSizes) {
		level = len(headingSizes)
	}
	p := d.AddParagraph().SetStyle(fmt.Sprintf("Heading%d", level))
	if text != "" {
		p.AddRun(text)
	}
	return p
}

func (p *Paragraph) props() *xPPr {
	if p.p.PPr == nil {
		p.p.PPr = &xPPr{}
	}
	return p.p.PPr
}

// SetStyle applies a paragraph style ID.
func (p *Paragraph) SetStyle(id string) *Paragraph {
	p.props().Style = &xVal{Val: id}
	return p
}

// SetSpacing sets the space before and after the paragraph.
func (p *Paragraph) SetSpacing(before, after model.Points) *Paragraph {
	p.props().Spacing = &xSpacing{Before: before.Twips(), After: after.Twips()}
	return p
}

// SetIndent sets the left and hanging indentation.
func (p *Paragraph) SetIndent(left, hanging model.Inches) *Paragraph {
	p.props().Ind = &xInd{Left: left.Twips(), Hanging: hanging.Twips()}
	return p
}

// SetAlignment sets the paragraph justification.
func (p *Paragraph) SetAlignment(a Alignment) *Paragraph {
	p.props().Jc = &xVal{Val: string(a)}
	return p
}

// SetAltText sets the description of every picture in the paragraph.
func (p *Paragraph) SetAltText(text string) *Paragraph {
	for _, r := range p.p.Runs {
		if r.Drawing != nil {
			r.Drawing.Inline.DocPr.Descr = text
		}
	}
	return p
}

// AddRun appends a run of text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &xRun{Text: newText(text)}
	p.p.Runs = append(p.p.Runs, r)
	return &Run{r: r}
}

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.p.Runs {
		if r.Text != nil {
			sb.WriteString(r.Text.Value)
		}
	}
	return sb.String()
}

func newText(s string) *xText {
	t := &xText{Value: s}
	if s != strings.TrimSpace(s) {
		t.Space = "preserve"
	}
	return t
}

func (r *Run) props() *xRPr {
	if r.r.RPr == nil {
		r.r.RPr = &xRPr{}
	}
	return r.r.RPr
}

// SetBold toggles bold.
func (r *Run) SetBold(on bool) *Run {
	if on {
		r.props().Bold = &xOn{}
	} else if r.r.RPr != nil {
		r.r.RPr.Bold = nil
	}
	return r
}

// SetItalic toggles italic.
func (r *Run) SetItalic(on bool) *Run {
	if on {
		r.props().Italic = &xOn{}
	} else if r.r.RPr != nil {
		r.r.RPr.Italic = nil
	}
	return r
}

// Bold reports whether the run is bold.
func (r *Run) Bold() bool { return r.r.RPr != nil && r.r.RPr.Bold != nil }

// Italic reports whether the run is italic.
func (r *Run) Italic() bool { return r.r.RPr != nil && r.r.RPr.Italic != nil }

// Text returns the run text.
func (r *Run) Text() string {
	if r.r.Text == nil {
		return ""
	}
	return r.r.Text.Value
}

// Table is a handle to a table with a fixed grid.
type Table struct {
	t    *xTable
	rows int
	cols int
}

// Cell is a handle to a table cell.
type Cell struct {
	c *xCell
}

// AddTable appends a rows x cols table with empty cells spread evenly over
// the text width.
func (d *Document) AddTable(rows, cols int) *Table {
	if rows < 0 {
		rows = 0
	}
	if cols < 1 {
		cols = 1
	}
	colWidth := contentWidth.Twips() / cols

	t := &xTable{
		TblPr: xTblPr{
			Width: xTblWidth{W: 0, Type: "auto"},
			Look:  xTblLook{Val: "04A0", FirstRow: 1, NoVBand: 1},
		},
	}
	if d.opts.TableStyle != "" {
		t.TblPr.Style = &xVal{Val: d.opts.TableStyle}
	}
	for c := 0; c < cols; c++ {
		t.Grid.Cols = append(t.Grid.Cols, xGridCol{W: colWidth})
	}
	for r := 0; r < rows; r++ {
		row := &xRow{}
		for c := 0; c < cols; c++ {
			row.Cells = append(row.Cells, &xCell{
				TcPr:       xTcPr{Width: xTblWidth{W: colWidth, Type: "dxa"}},
				Paragraphs: []*xParagraph{{}},
			})
		}
		t.Rows = append(t.Rows, row)
	}

	d.body.Items = append(d.body.Items, t)
	return &Table{t: t, rows: rows, cols: cols}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.cols }

// Cell returns the cell at row r, column c, or nil when out of range.
func (t *Table) Cell(r, c int) *Cell {
	if r < 0 || r >= t.rows || c < 0 || c >= t.cols {
		return nil
	}
	return &Cell{c: t.t.Rows[r].Cells[c]}
}

// SetText replaces the cell content with a single run of text.
func (c *Cell) SetText(text string) *Run {
	p := &Paragraph{p: &xParagraph{}}
	c.c.Paragraphs = []*xParagraph{p.p}
	return p.AddRun(text)
}

// Text returns the text of the cell's paragraphs joined by newlines.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.c.Paragraphs))
	for _, p := range c.c.Paragraphs {
		parts = append(parts, (&Paragraph{p: p}).Text())
	}
	return strings.Join(parts, "\n")
}

// AddPicture appends a centered paragraph holding the image at path,
// width inches wide with the height following the aspect ratio.
func (d *Document) AddPicture(path string, width model.Inches) (*Paragraph, error) {
	pic, err := imaging.PrepareFile(path, d.opts.MaxImagePixels)
	if err != nil {
		return nil, err
	}
	return d.addPicture(pic, filepath.Base(path), width)
}

// AddPictureData is AddPicture for image bytes held in memory.
func (d *Document) AddPictureData(data []byte, width model.Inches) (*Paragraph, error) {
	pic, err := imaging.Prepare(data, d.opts.MaxImagePixels)
	if err != nil {
		return nil, err
	}
	return d.addPicture(pic, "", width)
}

func (d *Document) addPicture(pic *imaging.Picture, name string, width model.Inches) (*Paragraph, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid picture width %v", width)
	}
	ext := pic.Format.Extension()
	if ext == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	d.pictures++
	mediaName := fmt.Sprintf("image%d%s", d.pictures, ext)
	d.media = append(d.media, mediaFile{name: mediaName, data: pic.Data})
	d.mediaTypes[strings.TrimPrefix(ext, ".")] = pic.Format.ContentType()

	relID := fmt.Sprintf("rId%d", len(d.rels)+1)
	d.rels = append(d.rels, relationshipXML{ID: relID, Type: relTypeImage, Target: "media/" + mediaName})

	if name == "" {
		name = mediaName
	}
	cx := width.EMU()
	cy := model.ScaleToWidth(pic.Width, pic.Height, width).EMU()
	docPr := xDocPr{ID: d.pictures, Name: fmt.Sprintf("Picture %d", d.pictures)}

	run := &xRun{Drawing: &xDrawing{Inline: xInline{
		Extent:  xExtent{CX: cx, CY: cy},
		DocPr:   docPr,
		FramePr: xGraphicFramePr{Locks: xFrameLocks{NoChangeAspect: 1}},
		Graphic: xGraphic{Data: xGraphicData{
			URI: graphicDataPicture,
			Pic: xPic{
				NvPicPr:  xNvPicPr{CNvPr: xDocPr{ID: 0, Name: name}},
				BlipFill: xBlipFill{Blip: xBlip{Embed: relID}},
				SpPr: xSpPr{
					Xfrm: xXfrm{Ext: xExtent{CX: cx, CY: cy}},
					Geom: xPrstGeom{Prst: "rect"},
				},
			},
		}},
	}}}

	p := d.AddParagraph().SetAlignment(AlignCenter)
	p.p.Runs = append(p.p.Runs, run)
	return p, nil
}

// MediaCount returns the number of embedded pictures.
func (d *Document) MediaCount() int {
	return len(d.media)
}

// WriteTo writes the DOCX package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	created := d.opts.Created
	if created.IsZero() {
		created = time.Now()
	}

	doc := xDocument{
		XMLNSW:   nsW,
		XMLNSR:   nsR,
		XMLNSWP:  nsWP,
		XMLNSA:   nsA,
		XMLNSPic: nsPic,
		Body: xBody{
			Items: d.body.Items,
			SectPr: &xSectPr{
				PgSz: xPgSz{W: pageWidth.Twips(), H: pageHeight.Twips()},
				PgMar: xPgMar{
					Top: pageMargin.Twips(), Right: pageMargin.Twips(),
					Bottom: pageMargin.Twips(), Left: pageMargin.Twips(),
					Header: 720, Footer: 720,
				},
			},
		},
	}

	parts := []struct {
		name string
		v    any
	}{
		{"[Content_Types].xml", contentTypesPart(d.mediaTypes)},
		{"_rels/.rels", packageRelsPart()},
		{"docProps/core.xml", corePropsPart(d.meta, created)},
		{"docProps/app.xml", appPropsPart()},
		{"word/document.xml", doc},
		{"word/_rels/document.xml.rels", relationshipsXML{XMLNS: nsRelationships, Relationships: d.rels}},
		{"word/styles.xml", stylesPart(d.opts)},
		{"word/numbering.xml", numberingPart()},
		{"word/settings.xml", settingsPart()},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, part.v); err != nil {
			return cw.n, err
		}
	}

	for _, m := range d.media {
		fw, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return cw.n, fmt.Errorf("failed to create %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.data); err != nil {
			return cw.n, fmt.Errorf("failed to write %s: %w", m.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to close package: %w", err)
	}
	return cw.n, nil
}

// writePart writes one XML part. Byte slices are written verbatim after
// the XML declaration, anything else is marshaled.
func writePart(zw *zip.Writer, name string, v any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header to %s: %w", name, err)
	}
	if raw, ok := v.([]byte); ok {
		_, err = fw.Write(raw)
	} else {
		err = xml.NewEncoder(fw).Encode(v)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Save writes the package to path through a temporary file in the same
// directory, so an existing file is replaced only on success.
func (d *Document) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".md2docx-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := d.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
