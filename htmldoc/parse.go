package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/md2docx/model"
)

// Open parses an HTML file into blocks.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads HTML and maps its structural elements onto blocks: h1-h6,
// p, table, ul/ol, img and hr. Containers such as div and figure are
// descended into, script and style are skipped.
func Parse(r io.Reader) (*model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := model.NewDocument()
	if head := findElement(root, "head"); head != nil {
		extractHead(head, &doc.Metadata)
	}
	if body := findElement(root, "body"); body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			traverse(c, doc)
		}
	}
	return doc, nil
}

// extractHead reads the title and named meta tags.
func extractHead(head *html.Node, meta *model.Metadata) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Title:
			meta.Title = getTextContent(c)
		case atom.Meta:
			content := getAttr(c, "content")
			switch strings.ToLower(getAttr(c, "name")) {
			case "author":
				meta.Author = content
			case "description":
				meta.Description = content
			case "keywords":
				for _, kw := range strings.Split(content, ",") {
					if kw = strings.TrimSpace(kw); kw != "" {
						meta.Keywords = append(meta.Keywords, kw)
					}
				}
			}
		}
	}
}

func traverse(n *html.Node, doc *model.Document) {
	if n.Type != html.ElementNode {
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		doc.Append(model.Heading{Level: int(n.Data[1] - '0'), Text: getTextContent(n)})
	case atom.P:
		if hasClass(n, "missing-image") {
			doc.Append(model.Image{Description: fallbackDescription(getTextContent(n))})
			return
		}
		if runs := inlineRuns(n, false, false, nil); len(runs) > 0 {
			doc.Append(model.Paragraph{Runs: runs})
		}
	case atom.Table:
		if t, ok := parseTable(n); ok {
			doc.Append(t)
		}
	case atom.Ul, atom.Ol:
		parseList(n, 1, doc)
	case atom.Img:
		doc.Append(model.Image{Description: getAttr(n, "alt"), Path: getAttr(n, "src"), Resolved: true})
	case atom.Hr:
		doc.Append(model.Rule{})
	default:
		if shouldSkipElement(n.Data) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c, doc)
		}
	}
}

// inlineRuns flattens the inline content of n into formatted runs.
func inlineRuns(n *html.Node, bold, italic bool, runs []model.Run) []model.Run {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if c.Data != "" {
				runs = append(runs, model.Run{Text: c.Data, Bold: bold, Italic: italic})
			}
		case html.ElementNode:
			if shouldSkipElement(c.Data) {
				continue
			}
			switch c.DataAtom {
			case atom.Strong, atom.B:
				runs = inlineRuns(c, true, italic, runs)
			case atom.Em, atom.I:
				runs = inlineRuns(c, bold, true, runs)
			case atom.Br:
				runs = append(runs, model.Run{Text: "\n", Bold: bold, Italic: italic})
			default:
				runs = inlineRuns(c, bold, italic, runs)
			}
		}
	}
	return runs
}

// fallbackDescription strips the "[label: " prefix and "]" suffix.
func fallbackDescription(s string) string {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if i := strings.Index(s, ": "); i >= 0 {
		return s[i+2:]
	}
	return s
}

// parseTable uses the first header row, or the first row when the table
// has no th cells, as the header.
func parseTable(n *html.Node) (model.Table, bool) {
	var header []string
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			case atom.Tr:
				cells, isHeader := parseRow(c)
				if header == nil && (isHeader || len(rows) == 0) {
					header = cells
				} else {
					rows = append(rows, cells)
				}
			}
		}
	}
	walk(n)
	return model.NewTable(header, rows)
}

func parseRow(tr *html.Node) ([]string, bool) {
	var cells []string
	isHeader := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Th:
			isHeader = true
			cells = append(cells, getTextContent(c))
		case atom.Td:
			cells = append(cells, getTextContent(c))
		}
	}
	return cells, isHeader
}

// parseList emits one bullet per li. Nested lists deepen the level, which
// is capped at 2.
func parseList(list *html.Node, level int, doc *model.Document) {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		if text := getDirectTextContent(li); text != "" {
			doc.Append(model.BulletItem{Level: level, Text: text})
		}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				parseList(c, min(level+1, 2), doc)
			}
		}
	}
}
