package markdown

import "strings"

// Lines is a forward-only cursor over the lines of a document.
type Lines struct {
	lines []string
	pos   int
}

// NewLines creates a cursor positioned at the first line.
func NewLines(lines []string) *Lines {
	return &Lines{lines: lines}
}

// SplitLines splits text on "\n" and drops a trailing "\r" from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Done reports whether every line has been consumed.
func (l *Lines) Done() bool {
	return l.pos >= len(l.lines)
}

// Pos returns the 0-based index of the current line.
func (l *Lines) Pos() int {
	return l.pos
}

// Peek returns the current line without consuming it.
func (l *Lines) Peek() (string, bool) {
	return l.PeekAt(0)
}

// PeekAt returns the line n positions ahead of the cursor without
// consuming anything.
func (l *Lines) PeekAt(n int) (string, bool) {
	i := l.pos + n
	if n < 0 || i >= len(l.lines) {
		return "", false
	}
	return l.lines[i], true
}

// Next consumes and returns the current line.
func (l *Lines) Next() (string, bool) {
	if l.Done() {
		return "", false
	}
	line := l.lines[l.pos]
	l.pos++
	return line, true
}

// Skip consumes up to n lines.
func (l *Lines) Skip(n int) {
	l.pos += n
	if l.pos > len(l.lines) {
		l.pos = len(l.lines)
	}
}

// NextWhile consumes lines while match returns true and returns them.
func (l *Lines) NextWhile(match func(string) bool) []string {
	var out []string
	for {
		line, ok := l.Peek()
		if !ok || !match(line) {
			return out
		}
		out = append(out, line)
		l.pos++
	}
}
