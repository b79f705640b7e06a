package markdown

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/md2docx/model"
)

// Source is a decoded Markdown document ready for conversion.
type Source struct {
	Lines          []string
	Metadata       model.Metadata
	HasFrontMatter bool
	Warnings       []Warning
}

type loadOptions struct {
	frontMatter bool
}

// LoadOption configures Load and Parse.
type LoadOption func(*loadOptions)

// WithFrontMatter toggles parsing of a leading YAML/TOML/JSON front matter
// block. It is enabled by default.
func WithFrontMatter(enabled bool) LoadOption {
	return func(o *loadOptions) { o.frontMatter = enabled }
}

// Load reads and decodes the Markdown file at path. A read failure is
// returned as is so callers can classify it.
func Load(path string, opts ...LoadOption) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// Parse decodes raw Markdown bytes. UTF-16 input is recognized by its byte
// order mark, UTF-8 is the default, and the text is normalized to NFC.
func Parse(data []byte, opts ...LoadOption) (*Source, error) {
	o := loadOptions{frontMatter: true}
	for _, opt := range opts {
		opt(&o)
	}

	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding source: %w", err)
	}

	src := &Source{Metadata: model.Metadata{Custom: make(map[string]string)}}
	if o.frontMatter {
		text = src.extractFrontMatter(text)
	}
	src.Lines = SplitLines(string(text))
	return src, nil
}

// decode strips a byte order mark, converts UTF-16 to UTF-8 and applies NFC.
func decode(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	return norm.NFC.Bytes(out), nil
}

type frontMatter struct {
	Title       string         `yaml:"title" toml:"title" json:"title"`
	Author      string         `yaml:"author" toml:"author" json:"author"`
	Subject     string         `yaml:"subject" toml:"subject" json:"subject"`
	Description string         `yaml:"description" toml:"description" json:"description"`
	Keywords    []string       `yaml:"keywords" toml:"keywords" json:"keywords"`
	Custom      map[string]any `yaml:",inline"`
}

// extractFrontMatter parses a leading front matter block into the source
// metadata and returns the remaining body. The block counts as front matter
// only when it decodes to a mapping with at least one key; otherwise the
// text is returned unchanged so the delimiter lines convert as rules.
func (s *Source) extractFrontMatter(text []byte) []byte {
	if !hasFrontMatterDelimiter(text) {
		return text
	}

	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(text), &raw)
	if err != nil {
		if looksLikeMapping(text) {
			s.Warnings = append(s.Warnings, Warning{
				Kind:    WarnFrontMatter,
				Message: fmt.Sprintf("front matter ignored: %v", err),
			})
		}
		return text
	}
	if len(raw) == 0 || len(body) == len(text) {
		return text
	}

	var fm frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(text), &fm); err != nil {
		s.Warnings = append(s.Warnings, Warning{
			Kind:    WarnFrontMatter,
			Message: fmt.Sprintf("front matter ignored: %v", err),
		})
		return text
	}

	s.HasFrontMatter = true
	s.Metadata.Title = fm.Title
	s.Metadata.Author = fm.Author
	s.Metadata.Subject = fm.Subject
	s.Metadata.Description = fm.Description
	for _, kw := range fm.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			s.Metadata.Keywords = append(s.Metadata.Keywords, kw)
		}
	}

	for k, v := range fm.Custom {
		s.Metadata.Custom[k] = fmt.Sprint(v)
	}
	return body
}

var keyLine = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*\s*[:=]`)

// looksLikeMapping reports whether the first line after the opening
// delimiter is a key, so a decode failure is worth reporting.
func looksLikeMapping(text []byte) bool {
	_, rest, _ := bytes.Cut(text, []byte("\n"))
	line, _, _ := bytes.Cut(rest, []byte("\n"))
	return keyLine.Match(bytes.TrimSpace(line))
}

func hasFrontMatterDelimiter(text []byte) bool {
	first, _, _ := bytes.Cut(text, []byte("\n"))
	switch strings.TrimSpace(string(first)) {
	case "---", "+++", ";;;":
		return true
	}
	return false
}
