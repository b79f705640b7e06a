package markdown

import (
	"regexp"

	"github.com/tsawler/md2docx/model"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)
)

// ParseInline tokenizes a paragraph line into styled runs.
//
// The text is first split on **bold** spans; each plain segment between them
// is then split on *italic* spans. Empty fragments are dropped. A run is never
// both bold and italic, and unmatched markers stay as literal text.
func ParseInline(text string) []model.Run {
	var runs []model.Run
	for _, seg := range splitMarked(boldPattern, text) {
		if seg.marked {
			runs = append(runs, model.Run{Text: seg.text, Bold: true})
			continue
		}
		for _, part := range splitMarked(italicPattern, seg.text) {
			if part.text == "" {
				continue
			}
			runs = append(runs, model.Run{Text: part.text, Italic: part.marked})
		}
	}
	return runs
}

type segment struct {
	text   string
	marked bool
}

// splitMarked splits text around matches of re, alternating unmarked text
// with the first capture group of each match. Unmarked segments may be empty.
func splitMarked(re *regexp.Regexp, text string) []segment {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []segment{{text: text}}
	}

	segments := make([]segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		segments = append(segments,
			segment{text: text[last:m[0]]},
			segment{text: text[m[2]:m[3]], marked: true},
		)
		last = m[1]
	}
	return append(segments, segment{text: text[last:]})
}
