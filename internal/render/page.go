package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docmap/internal/doctree"
	"golang.org/x/net/html"
)

// Page runs the full round trip for a tree: serialize to Markdown,
// convert once, reattach fragments, and assemble the final HTML
// document.
func Page(n *doctree.Node, conv Converter, opts Options) (string, error) {
	md := ToMarkdown(n, opts)
	converted, err := conv.Convert(md)
	if err != nil {
		return "", err
	}
	if err := ApplyHTML(n, converted, opts); err != nil {
		return "", err
	}
	return Assemble(n, opts.Headless), nil
}

// Assemble nests the per-unit HTML already attached to the tree into a
// div structure mirroring the tree.
func Assemble(n *doctree.Node, headless bool) string {
	var sb strings.Builder
	assembleNode(&sb, n, headless)
	return sb.String()
}

func assembleNode(sb *strings.Builder, n *doctree.Node, headless bool) {
	fmt.Fprintf(sb, "<div class=\"docmap-node docmap-%s\" id=\"%s\">\n", n.Kind, n.FullPath())
	if !headless {
		fmt.Fprintf(sb, "<div class=\"docmap-object\">%s</div>\n", n.Object.HTML)
	}
	if n.Docstring != nil {
		sb.WriteString("<div class=\"docmap-docstring\">\n")
		for _, s := range n.Docstring.Sections {
			fmt.Fprintf(sb, "<div class=\"docmap-section\">%s</div>\n", s.HTML)
		}
		sb.WriteString("</div>\n")
	}
	for _, m := range n.Members {
		assembleNode(sb, m, false)
	}
	sb.WriteString("</div>\n")
}

// Excerpt extracts plain text from an HTML fragment, truncated to max
// runes, for page listings and summaries.
func Excerpt(fragment string, max int) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.Join(strings.Fields(buf.String()), " ")
	runes := []rune(text)
	if max > 0 && len(runes) > max {
		return strings.TrimSpace(string(runes[:max])) + "…"
	}
	return text
}
