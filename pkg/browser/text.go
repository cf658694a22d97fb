package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// extractText turns raw page HTML into readable plain text: scripts,
// styles and other non-content elements are dropped, text nodes are
// whitespace-collapsed, and block boundaries become newlines.
func extractText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var builder strings.Builder
	textNode(doc, &builder)
	return collapseBlankLines(builder.String()), nil
}

// textNode recursively appends the readable text of n to builder.
func textNode(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode && isNoiseElement(strings.ToLower(n.Data)) {
		return
	}

	if n.Type == html.TextNode {
		text := strings.Join(strings.Fields(n.Data), " ")
		if text != "" {
			if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
				builder.WriteString(" ")
			}
			builder.WriteString(text)
		}
		return
	}

	if n.Type == html.ElementNode && breaksLine(strings.ToLower(n.Data)) {
		builder.WriteString("\n")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textNode(c, builder)
	}

	if n.Type == html.ElementNode && breaksLine(strings.ToLower(n.Data)) {
		builder.WriteString("\n")
	}
}

// isNoiseElement returns true for elements whose content is never page text.
func isNoiseElement(tagName string) bool {
	noise := map[string]bool{
		"script":   true,
		"style":    true,
		"noscript": true,
		"iframe":   true,
		"embed":    true,
		"object":   true,
		"svg":      true,
		"template": true,
	}
	return noise[tagName]
}

// breaksLine returns true for elements that start a new line of text.
func breaksLine(tagName string) bool {
	blocks := map[string]bool{
		"div": true, "p": true, "section": true, "article": true,
		"header": true, "footer": true, "nav": true, "main": true,
		"aside": true, "h1": true, "h2": true, "h3": true, "h4": true,
		"h5": true, "h6": true, "ul": true, "ol": true, "li": true,
		"table": true, "tr": true, "td": true, "th": true, "form": true,
		"fieldset": true, "blockquote": true, "pre": true, "br": true,
	}
	return blocks[tagName]
}

// collapseBlankLines trims trailing spaces and squeezes runs of blank lines.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
