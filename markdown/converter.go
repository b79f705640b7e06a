package markdown

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tsawler/md2docx/model"
)

var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// FileChecker reports whether path names an existing, embeddable file.
type FileChecker func(path string) bool

// Converter turns Markdown lines into document blocks.
// A Converter is immutable after construction and safe to reuse.
type Converter struct {
	imageDir string
	exists   FileChecker
}

// Option configures a Converter.
type Option func(*Converter)

// WithImageDir sets the directory relative image paths are resolved against.
func WithImageDir(dir string) Option {
	return func(c *Converter) { c.imageDir = dir }
}

// WithFileChecker replaces the filesystem existence check for images.
func WithFileChecker(check FileChecker) Option {
	return func(c *Converter) {
		if check != nil {
			c.exists = check
		}
	}
}

// WithFS resolves images inside fsys instead of the host filesystem.
// Image paths are joined with the image directory and looked up as
// slash-separated fs paths.
func WithFS(fsys fs.FS) Option {
	return WithFileChecker(func(path string) bool {
		info, err := fs.Stat(fsys, filepath.ToSlash(path))
		return err == nil && info.Mode().IsRegular()
	})
}

// NewConverter creates a Converter. Without options images are resolved
// against the working directory on the host filesystem.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{exists: fileExists}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert is a shortcut for NewConverter(WithImageDir(imageDir)).Convert(lines).
func Convert(lines []string, imageDir string) []model.Block {
	return NewConverter(WithImageDir(imageDir)).Convert(lines)
}

// Convert classifies every line and returns the resulting blocks in source
// order.
func (c *Converter) Convert(lines []string) []model.Block {
	blocks, _ := c.ConvertWithWarnings(lines)
	return blocks
}

// ConvertWithWarnings is like Convert but also reports the degradations
// applied along the way (missing images, dropped tables).
func (c *Converter) ConvertWithWarnings(lines []string) ([]model.Block, []Warning) {
	s := &scanner{conv: c, lines: NewLines(lines)}
	for !s.lines.Done() {
		s.step()
	}
	return s.blocks, s.warnings
}

// scanner holds the state of one conversion.
type scanner struct {
	conv     *Converter
	lines    *Lines
	blocks   []model.Block
	warnings []Warning
}

func (s *scanner) emit(b model.Block) {
	s.blocks = append(s.blocks, b)
}

func (s *scanner) warn(line int, kind WarningKind, format string, args ...any) {
	s.warnings = append(s.warnings, Warning{
		Line:    line + 1,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// step consumes the lines of exactly one rule.
func (s *scanner) step() {
	line, _ := s.lines.Peek()
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		s.lines.Skip(1)

	case headingLevel(line) > 0:
		s.lines.Skip(1)
		s.emit(model.Heading{
			Level: headingLevel(line),
			Text:  strings.TrimSpace(strings.TrimLeft(line, "# ")),
		})

	case s.atTable():
		s.table()

	case strings.HasPrefix(trimmed, "!["):
		s.image(trimmed)

	case isBullet(trimmed):
		s.bullets(trimmed)

	case strings.HasPrefix(trimmed, "---"):
		s.lines.Skip(1)
		s.emit(model.Rule{})

	default:
		s.lines.Skip(1)
		if runs := ParseInline(line); len(runs) > 0 {
			s.emit(model.Paragraph{Runs: runs})
		}
	}
}

// headingLevel returns 1-3 when line opens with that many '#' characters
// followed by a space, and 0 otherwise. The whole marker run is measured so
// "### x" is never mistaken for a level 1 heading.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 3 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func (s *scanner) atTable() bool {
	cur, _ := s.lines.Peek()
	next, ok := s.lines.PeekAt(1)
	return ok && isTableLine(cur) && isTableLine(next)
}

// table consumes a header line, one separator line and every following
// pipe-prefixed line.
func (s *scanner) table() {
	start := s.lines.Pos()
	headerLine, _ := s.lines.Next()
	s.lines.Skip(1)

	header := splitCells(headerLine)
	var rows [][]string
	for _, line := range s.lines.NextWhile(isTableLine) {
		rows = append(rows, splitCells(line))
	}

	table, ok := model.NewTable(header, rows)
	if !ok {
		s.warn(start, WarnDroppedTable, "table with %d header cells and %d rows dropped", len(header), len(rows))
		return
	}
	s.emit(table)
}

// splitCells splits a pipe-table line into trimmed cells. The fields before
// the first pipe and after the last pipe are always discarded, so text
// trailing an unclosed row is not a cell.
func splitCells(line string) []string {
	fields := strings.Split(strings.TrimSpace(line), "|")
	if len(fields) < 2 {
		return []string{}
	}
	fields = fields[1 : len(fields)-1]

	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = strings.TrimSpace(f)
	}
	return cells
}

func (s *scanner) image(trimmed string) {
	pos := s.lines.Pos()
	s.lines.Skip(1)

	m := imagePattern.FindStringSubmatch(trimmed)
	if m == nil {
		s.warn(pos, WarnBrokenImage, "unrecognized image syntax %q", trimmed)
		s.emit(model.Image{})
		return
	}

	img := model.Image{Description: m[1], Path: s.conv.resolve(m[2])}
	img.Resolved = s.conv.exists(img.Path)
	if !img.Resolved {
		s.warn(pos, WarnMissingImage, "image %q not found", img.Path)
	}
	s.emit(img)
}

func (c *Converter) resolve(path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.imageDir, path)
}

func isBullet(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

func isSubBullet(line string) bool {
	return strings.HasPrefix(line, "  - ") || strings.HasPrefix(line, "  * ")
}

// bullets consumes a level 1 item and the two-space indented items that
// directly follow it.
func (s *scanner) bullets(trimmed string) {
	s.lines.Skip(1)
	s.emit(model.BulletItem{Level: 1, Text: strings.TrimSpace(trimmed[2:])})

	for _, line := range s.lines.NextWhile(isSubBullet) {
		s.emit(model.BulletItem{Level: 2, Text: strings.TrimSpace(line[4:])})
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
