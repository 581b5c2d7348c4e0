// Package render turns documentation trees into Markdown, hands the
// whole document to a Markdown converter in one pass, and distributes
// the converted HTML back onto the tree.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/docmap/internal/doctree"
)

// Separator is the literal token between rendered units. The Markdown
// converter must preserve it verbatim, in order and count.
const Separator = "<!-- docmap:sep -->"

// ErrDesync is returned when the converted HTML splits into a
// different number of fragments than there are units. Misassigning
// fragments would silently corrupt unrelated nodes, so this is fatal.
var ErrDesync = errors.New("render desync")

// Options control document rendering.
type Options struct {
	// HeadingLevel prefixes the root object with that many heading
	// markers. Zero leaves the root as plain text. Nested members never
	// receive a heading prefix.
	HeadingLevel int
	// Headless suppresses the root node's own heading unit, for
	// embedding a subtree into a larger page.
	Headless bool
}

// ToMarkdown serializes the tree to a single Markdown document with
// one unit per separator-delimited block, in pre-order.
func ToMarkdown(n *doctree.Node, opts Options) string {
	units := n.Units(opts.Headless)
	parts := make([]string, 0, len(units))
	for i, u := range units {
		md := u.Markdown()
		if i == 0 && !opts.Headless && opts.HeadingLevel > 0 && u == doctree.Unit(n.Object) {
			md = strings.Repeat("#", opts.HeadingLevel) + " " + md
		}
		parts = append(parts, md)
	}
	return strings.Join(parts, "\n\n"+Separator+"\n\n")
}

// ApplyHTML splits converted HTML by the separator token and attaches
// each fragment to the unit its Markdown came from. The fragment count
// must match the unit count exactly.
func ApplyHTML(n *doctree.Node, html string, opts Options) error {
	units := n.Units(opts.Headless)
	frags := strings.Split(html, Separator)
	if len(frags) != len(units) {
		return fmt.Errorf("%w: %d html fragments for %d units", ErrDesync, len(frags), len(units))
	}
	for i, u := range units {
		u.SetHTML(strings.TrimSpace(frags[i]))
	}
	return nil
}
