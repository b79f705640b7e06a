package model

import "strings"

// BlockKind represents the type of a document block
type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockHeading
	BlockParagraph
	BlockTable
	BlockImage
	BlockBullet
	BlockRule
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "Heading"
	case BlockParagraph:
		return "Paragraph"
	case BlockTable:
		return "Table"
	case BlockImage:
		return "Image"
	case BlockBullet:
		return "BulletItem"
	case BlockRule:
		return "Rule"
	default:
		return "Unknown"
	}
}

// Block is the interface for all document blocks
type Block interface {
	Kind() BlockKind
}

// TextBlock is an interface for blocks containing text
type TextBlock interface {
	Block
	GetText() string
}

// Heading represents a heading
type Heading struct {
	Level int // 1-3
	Text  string
}

func (h Heading) Kind() BlockKind { return BlockHeading }
func (h Heading) GetText() string { return h.Text }

// Paragraph represents a paragraph made of styled runs
type Paragraph struct {
	Runs []Run
}

func (p Paragraph) Kind() BlockKind { return BlockParagraph }
func (p Paragraph) GetText() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Run is a contiguous inline text fragment sharing one style.
// Bold and Italic are never both set by the converter.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// Plain reports whether the run carries no styling
func (r Run) Plain() bool { return !r.Bold && !r.Italic }

// Image represents a picture reference
type Image struct {
	Description string
	// Path is the resolved filesystem path, empty when the source line
	// had no usable image syntax.
	Path string
	// Resolved is true when Path pointed to an existing file at
	// conversion time.
	Resolved bool
}

func (i Image) Kind() BlockKind { return BlockImage }
func (i Image) GetText() string { return i.Description }

// Missing reports whether the image could not be located
func (i Image) Missing() bool { return !i.Resolved }

// DefaultImageLabel prefixes the fallback text of images that cannot be shown.
const DefaultImageLabel = "이미지"

// Fallback returns the text shown in place of the picture, using label as
// the prefix. An empty label selects DefaultImageLabel.
func (i Image) Fallback(label string) string {
	if label == "" {
		label = DefaultImageLabel
	}
	return "[" + label + ": " + i.Description + "]"
}

// BulletItem represents a single bulleted list entry
type BulletItem struct {
	Level int // 1 or 2
	Text  string
}

func (b BulletItem) Kind() BlockKind { return BlockBullet }
func (b BulletItem) GetText() string { return b.Text }

// Rule represents a horizontal separator
type Rule struct{}

func (Rule) Kind() BlockKind { return BlockRule }
