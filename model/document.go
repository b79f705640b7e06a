package model

import "strings"

// Document represents a converted document: metadata plus ordered blocks
type Document struct {
	Metadata Metadata
	Blocks   []Block
}

// Metadata contains document-level information
type Metadata struct {
	Title       string
	Author      string
	Subject     string
	Description string
	Keywords    []string
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Blocks: make([]Block, 0),
	}
}

// Append adds blocks to the end of the document
func (d *Document) Append(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// BlockCount returns the total number of blocks
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// ExtractText returns all text content, one block per line
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		if tb, ok := b.(TextBlock); ok {
			sb.WriteString(strings.TrimRight(tb.GetText(), "\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ExtractTables returns all tables in document order
func (d *Document) ExtractTables() []Table {
	var tables []Table
	for _, b := range d.Blocks {
		if t, ok := b.(Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Images returns all image blocks in document order
func (d *Document) Images() []Image {
	var images []Image
	for _, b := range d.Blocks {
		if img, ok := b.(Image); ok {
			images = append(images, img)
		}
	}
	return images
}

// Stats returns per-kind block counts
func (d *Document) Stats() Stats {
	var s Stats
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case Heading:
			s.Headings++
		case Paragraph:
			s.Paragraphs++
		case Table:
			s.Tables++
		case Image:
			s.Images++
			if v.Missing() {
				s.MissingImages++
			}
		case BulletItem:
			s.Bullets++
		case Rule:
			s.Rules++
		}
	}
	return s
}

// Stats holds block counts for a document
type Stats struct {
	Headings      int
	Paragraphs    int
	Tables        int
	Images        int
	MissingImages int
	Bullets       int
	Rules         int
}

// TableOfContents returns headings organized as a document outline
func (d *Document) TableOfContents() []TOCEntry {
	var toc []TOCEntry
	for i, b := range d.Blocks {
		if h, ok := b.(Heading); ok {
			toc = append(toc, TOCEntry{
				Level: h.Level,
				Text:  h.Text,
				Index: i,
			})
		}
	}
	return toc
}

// TOCEntry represents an entry in the table of contents
type TOCEntry struct {
	Level int    // Heading level (1-3)
	Text  string // Heading text
	Index int    // Position in Document.Blocks
}
