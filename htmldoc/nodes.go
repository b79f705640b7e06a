package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// shouldSkipElement returns true for elements whose content is not text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "head":
		return true
	}
	return false
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		// Skip script/style content
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

// getDirectTextContent gets text content from a node, excluding nested block elements.
func getDirectTextContent(n *html.Node) string {
	var result strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			result.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			// Include inline elements, skip block elements
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				result.WriteString(getTextContent(c))
			}
		}
	}
	return strings.TrimSpace(result.String())
}
