// Package display renders documentation trees as text for the CLI.
package display

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docmap/internal/doctree"
)

// FormatTree renders a documentation tree with ASCII art box-drawing
// characters, one line per node with kind and source location.
func FormatTree(n *doctree.Node) string {
	var sb strings.Builder
	maxWidth := 0
	calcMaxWidth(n, &maxWidth)

	sb.WriteString(fmt.Sprintf("%-*s  [%s]%s\n", maxWidth, n.FullPath(), n.Kind, location(n)))
	sb.WriteString(formatMembers(n.Members, "", maxWidth))
	return sb.String()
}

func formatMembers(members []*doctree.Node, indent string, maxWidth int) string {
	var sb strings.Builder
	for i, m := range members {
		isLast := i == len(members)-1
		prefix := "├──"
		if isLast {
			prefix = "└──"
		}

		name := m.Name
		pad := maxWidth - len(indent) - 4
		if pad < len(name) {
			pad = len(name)
		}
		sb.WriteString(fmt.Sprintf("%s%s %-*s  [%s]%s\n", indent, prefix, pad, name, m.Kind, location(m)))

		if len(m.Members) > 0 {
			childIndent := indent + "│   "
			if isLast {
				childIndent = indent + "    "
			}
			sb.WriteString(formatMembers(m.Members, childIndent, maxWidth))
		}
	}
	return sb.String()
}

func calcMaxWidth(n *doctree.Node, maxWidth *int) {
	if w := len(n.FullPath()); w > *maxWidth {
		*maxWidth = w
	}
	var walk func(members []*doctree.Node, depth int)
	walk = func(members []*doctree.Node, depth int) {
		for _, m := range members {
			if w := len(m.Name) + depth*4; w > *maxWidth {
				*maxWidth = w
			}
			walk(m.Members, depth+1)
		}
	}
	walk(n.Members, 1)
}

func location(n *doctree.Node) string {
	if n.SourceFile == "" {
		return ""
	}
	return fmt.Sprintf("  %s:%d", n.SourceFile, n.Line)
}
