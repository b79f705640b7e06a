package markdown

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal conversion issue.
type WarningKind int

const (
	// WarnMissingImage means an image reference points to a file that does not exist.
	WarnMissingImage WarningKind = iota + 1
	// WarnBrokenImage means a line started with "![" but did not match ![alt](path).
	WarnBrokenImage
	// WarnDroppedTable means a table had no header cells or no data rows.
	WarnDroppedTable
	// WarnFrontMatter means a leading front matter block could not be parsed
	// and was kept as document text.
	WarnFrontMatter
	// WarnImageEmbed means an existing image file could not be decoded or
	// embedded and was replaced by its placeholder text.
	WarnImageEmbed
)

func (k WarningKind) String() string {
	switch k {
	case WarnMissingImage:
		return "missing-image"
	case WarnBrokenImage:
		return "broken-image"
	case WarnDroppedTable:
		return "dropped-table"
	case WarnFrontMatter:
		return "front-matter"
	case WarnImageEmbed:
		return "image-embed"
	default:
		return "unknown"
	}
}

// Warning describes a degradation applied during loading or conversion.
type Warning struct {
	Line    int // 1-based source line, 0 when not tied to a line
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// FormatWarnings joins warnings into a single multi-line string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
