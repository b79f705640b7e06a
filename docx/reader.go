// Package docx reads and writes DOCX (Office Open XML) documents.
//
// The Writer builds a WordprocessingML package from headings, paragraphs,
// tables and pictures. Render maps a model.Document onto a Writer. The
// Reader parses a package back into paragraphs and tables in body order and
// is used to inspect generated files.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/tsawler/md2docx/model"
)

// ruleText is the paragraph text used for horizontal rules.
var ruleText = strings.Repeat("_", 40)

// Reader provides access to DOCX document content.
type Reader struct {
	closer    io.Closer
	zipReader *zip.Reader
	styles    *stylesXML
	rels      *relationshipsXML
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
	body      []BodyElement
}

// BodyElement is one top-level child of the document body. Exactly one of
// Paragraph or Table is set.
type BodyElement struct {
	Paragraph *ParsedParagraph
	Table     *ParsedTable
}

// ParsedParagraph holds a parsed paragraph with resolved styles.
type ParsedParagraph struct {
	Text      string
	StyleID   string
	StyleName string
	Level     int // heading level (1-9) or 0 for non-headings
	Alignment string
	// IndentLeft is the left indentation in twips.
	IndentLeft int
	Runs       []ParsedRun
	Images     []ParsedImage
}

// IsHeading reports whether the paragraph uses a heading style.
func (p *ParsedParagraph) IsHeading() bool { return p.Level > 0 }

// ParsedRun holds a parsed text run.
type ParsedRun struct {
	Text   string
	Bold   bool
	Italic bool
}

// ParsedImage describes an embedded picture.
type ParsedImage struct {
	RelID       string
	Target      string // package path, e.g. word/media/image1.png
	Description string
	Width       int64 // EMU
	Height      int64 // EMU
}

// ParsedTable holds the cell text of a table.
type ParsedTable struct {
	StyleID string
	Rows    [][]string
	// HeaderBold is true when every run in the first row is bold.
	HeaderBold bool
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenBytes parses a DOCX package held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Relationships first, images resolve through them
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Styles are optional
	_ = r.parseStyles()

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// Files lists the part names in the package.
func (r *Reader) Files() []string {
	names := make([]string, 0, len(r.zipReader.File))
	for _, f := range r.zipReader.File {
		names = append(names, f.Name)
	}
	return names
}

// Media returns the names of the parts stored under word/media/.
func (r *Reader) Media() []string {
	var names []string
	for _, f := range r.zipReader.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			names = append(names, f.Name)
		}
	}
	return names
}

// Part returns the raw content of a package part.
func (r *Reader) Part(name string) ([]byte, error) {
	return r.getFileContent(name)
}

// Body returns the top-level body elements in document order.
func (r *Reader) Body() []BodyElement {
	return r.body
}

// Paragraphs returns the top-level paragraphs in document order.
func (r *Reader) Paragraphs() []*ParsedParagraph {
	var paras []*ParsedParagraph
	for _, el := range r.body {
		if el.Paragraph != nil {
			paras = append(paras, el.Paragraph)
		}
	}
	return paras
}

// Tables returns the top-level tables in document order.
func (r *Reader) Tables() []*ParsedTable {
	var tables []*ParsedTable
	for _, el := range r.body {
		if el.Table != nil {
			tables = append(tables, el.Table)
		}
	}
	return tables
}

// Text extracts and returns all text content from the document.
func (r *Reader) Text() string {
	var result strings.Builder
	for i, el := range r.body {
		if i > 0 {
			result.WriteString("\n")
		}
		switch {
		case el.Paragraph != nil:
			result.WriteString(el.Paragraph.Text)
		case el.Table != nil:
			for j, row := range el.Table.Rows {
				if j > 0 {
					result.WriteString("\n")
				}
				result.WriteString(strings.Join(row, "\t"))
			}
		}
	}
	return result.String()
}

// Document maps the body back onto the block model. Heading styles become
// headings, list styles become bullets, drawings become resolved images
// and rule paragraphs become rules. Empty paragraphs are skipped.
func (r *Reader) Document() *model.Document {
	doc := model.NewDocument()
	doc.Metadata = r.Metadata()

	for _, el := range r.body {
		if el.Table != nil {
			if len(el.Table.Rows) == 0 {
				continue
			}
			if t, ok := model.NewTable(el.Table.Rows[0], el.Table.Rows[1:]); ok {
				doc.Append(t)
			}
			continue
		}

		p := el.Paragraph
		switch {
		case len(p.Images) > 0:
			for _, img := range p.Images {
				doc.Append(model.Image{Description: img.Description, Path: img.Target, Resolved: true})
			}
		case p.Text == "":
		case p.IsHeading():
			doc.Append(model.Heading{Level: p.Level, Text: p.Text})
		case strings.EqualFold(p.StyleID, styleListBullet):
			doc.Append(model.BulletItem{Level: 1, Text: p.Text})
		case strings.EqualFold(p.StyleID, styleListBullet2):
			doc.Append(model.BulletItem{Level: 2, Text: p.Text})
		case p.Text == ruleText:
			doc.Append(model.Rule{})
		default:
			runs := make([]model.Run, 0, len(p.Runs))
			for _, run := range p.Runs {
				runs = append(runs, model.Run{Text: run.Text, Bold: run.Bold, Italic: run.Italic})
			}
			doc.Append(model.Paragraph{Runs: runs})
		}
	}
	return doc
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Custom: make(map[string]string)}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		meta.Description = r.coreProps.Description
		if r.coreProps.Keywords != "" {
			meta.Keywords = strings.Split(r.coreProps.Keywords, ",")
			for i, kw := range meta.Keywords {
				meta.Keywords[i] = strings.TrimSpace(kw)
			}
		}
	}
	if r.appProps != nil && r.appProps.Application != "" {
		meta.Custom["Application"] = r.appProps.Application
	}
	return meta
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		// Relationships file is optional
		return nil
	}

	r.rels = &relationshipsXML{}
	return xml.Unmarshal(data, r.rels)
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return err
	}

	r.styles = &stylesXML{}
	return xml.Unmarshal(data, r.styles)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// parseDocument walks the children of <w:body> in order, decoding
// paragraphs and tables and skipping everything else.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	d := xml.NewDecoder(bytes.NewReader(data))
	inBody := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("unmarshaling document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inBody {
				inBody = t.Name.Local == "body"
				continue
			}
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return fmt.Errorf("decoding paragraph: %w", err)
				}
				r.body = append(r.body, BodyElement{Paragraph: r.processParagraph(p)})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return fmt.Errorf("decoding table: %w", err)
				}
				r.body = append(r.body, BodyElement{Table: r.processTable(tbl)})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if inBody && t.Name.Local == "body" {
				return nil
			}
		}
	}
	return nil
}

// processParagraph processes a single paragraph.
func (r *Reader) processParagraph(p paragraphXML) *ParsedParagraph {
	parsed := &ParsedParagraph{
		StyleID:   p.Properties.Style.Val,
		Alignment: p.Properties.Justification.Val,
	}
	parsed.IndentLeft, _ = strconv.Atoi(p.Properties.Indent.Left)

	var text strings.Builder
	for _, run := range p.Runs {
		for _, dr := range run.Drawing {
			if img, ok := r.processDrawing(dr); ok {
				parsed.Images = append(parsed.Images, img)
			}
		}
		runText := extractRunText(run)
		if runText == "" {
			continue
		}
		text.WriteString(runText)
		parsed.Runs = append(parsed.Runs, ParsedRun{
			Text:   runText,
			Bold:   run.Properties.Bold.on(),
			Italic: run.Properties.Italic.on(),
		})
	}
	parsed.Text = text.String()

	// Detect heading from style
	if parsed.StyleID != "" {
		parsed.Level = r.headingLevel(parsed.StyleID)
		if style := r.style(parsed.StyleID); style != nil {
			parsed.StyleName = style.Name.Val
		}
	}
	if parsed.Level == 0 && p.Properties.OutlineLvl.Val != "" {
		if level := parseOutlineLevel(p.Properties.OutlineLvl.Val); level >= 0 {
			parsed.Level = level + 1
		}
	}

	return parsed
}

// processDrawing resolves the picture reference of a drawing.
func (r *Reader) processDrawing(dr drawingXML) (ParsedImage, bool) {
	in := dr.Inline
	if in == nil {
		in = dr.Anchor
	}
	if in == nil || in.Blip == nil {
		return ParsedImage{}, false
	}
	img := ParsedImage{
		RelID:       in.Blip.Embed,
		Description: in.DocPr.Descr,
	}
	img.Width, _ = strconv.ParseInt(in.Extent.CX, 10, 64)
	img.Height, _ = strconv.ParseInt(in.Extent.CY, 10, 64)
	if rel := r.relationship(img.RelID); rel != nil && rel.TargetMode != "External" {
		img.Target = path.Join("word", rel.Target)
	}
	return img, true
}

// processTable collects the cell text of every row.
func (r *Reader) processTable(tbl tableXML) *ParsedTable {
	parsed := &ParsedTable{StyleID: tbl.Properties.Style.Val}
	for i, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			var parts []string
			for _, p := range cell.Paragraphs {
				parts = append(parts, r.processParagraph(p).Text)
			}
			cells = append(cells, strings.Join(parts, "\n"))
		}
		parsed.Rows = append(parsed.Rows, cells)

		if i == 0 {
			parsed.HeaderBold = rowBold(row)
		}
	}
	return parsed
}

// rowBold reports whether every text run in the row is bold.
func rowBold(row tableRowXML) bool {
	seen := false
	for _, cell := range row.Cells {
		for _, p := range cell.Paragraphs {
			for _, run := range p.Runs {
				if extractRunText(run) == "" {
					continue
				}
				if !run.Properties.Bold.on() {
					return false
				}
				seen = true
			}
		}
	}
	return seen
}

// extractRunText extracts text from a run element.
func extractRunText(run runXML) string {
	var parts []string

	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}

	// Handle tab characters
	for range run.Tabs {
		parts = append(parts, "\t")
	}

	// Handle breaks
	for _, br := range run.Breaks {
		if br.Type == "page" {
			parts = append(parts, "\n\n")
		} else {
			parts = append(parts, "\n")
		}
	}

	return strings.Join(parts, "")
}

func (r *Reader) relationship(id string) *relationshipXML {
	if r.rels == nil {
		return nil
	}
	for i := range r.rels.Relationships {
		if r.rels.Relationships[i].ID == id {
			return &r.rels.Relationships[i]
		}
	}
	return nil
}

func (r *Reader) style(id string) *styleDefXML {
	if r.styles == nil {
		return nil
	}
	for i := range r.styles.Styles {
		if strings.EqualFold(r.styles.Styles[i].StyleID, id) {
			return &r.styles.Styles[i]
		}
	}
	return nil
}

// headingLevel returns the heading level of a style ID, or 0.
func (r *Reader) headingLevel(styleID string) int {
	// Standard Word heading style IDs
	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 1, // Title is typically H1 equivalent
	}

	if level, ok := headingMap[strings.ToLower(styleID)]; ok {
		return level
	}

	// Check style definitions for outline level
	if style := r.style(styleID); style != nil {
		if style.PPr.OutlineLvl.Val != "" {
			// OutlineLvl is 0-based in OOXML
			if level := parseOutlineLevel(style.PPr.OutlineLvl.Val); level >= 0 {
				return level + 1
			}
		}
		if strings.Contains(strings.ToLower(style.Name.Val), "heading") {
			return 1
		}
	}

	return 0
}

// parseOutlineLevel parses an outline level string to an integer.
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 || level > 8 {
		return -1
	}
	return level
}
