// Package doctree builds navigable documentation trees from resolved
// program symbols.
package doctree

import (
	"fmt"

	"github.com/dgallion1/docmap/internal/docstring"
	"github.com/dgallion1/docmap/internal/symbol"
)

// Unit is a renderable piece of a tree: it emits Markdown and receives
// the converted HTML back.
type Unit interface {
	Markdown() string
	SetHTML(html string)
}

// Object is the heading unit of a node: its name, kind and signature.
type Object struct {
	Name      string      `json:"name"`
	Prefix    string      `json:"prefix,omitempty"`
	Kind      symbol.Kind `json:"kind"`
	Signature string      `json:"signature,omitempty"`
	Type      string      `json:"type,omitempty"`
	HTML      string      `json:"html,omitempty"`
}

// Markdown renders the object as a pair of intra-page links so the
// converter produces anchors the page assembly can target.
func (o *Object) Markdown() string {
	full := o.FullPath()
	md := fmt.Sprintf("[%s](#%s)", o.Name, full)
	if o.Prefix != "" {
		md = fmt.Sprintf("[%s](#%s).", o.Prefix, o.Prefix) + md
	}
	if o.Signature != "" {
		md += "`" + o.Signature + "`"
	}
	return md
}

// SetHTML attaches converted HTML to the object.
func (o *Object) SetHTML(html string) { o.HTML = html }

// FullPath returns the dotted fully-qualified path.
func (o *Object) FullPath() string {
	if o.Prefix == "" {
		return o.Name
	}
	return o.Prefix + "." + o.Name
}

// Node is one entity in a documentation tree. Nodes are built once and
// are immutable afterward, except for HTML attached by the render
// bridge and the type annotation override applied at build time.
type Node struct {
	Entity symbol.Entity `json:"-"`

	Name        string                `json:"name"`
	Prefix      string                `json:"prefix,omitempty"`
	Kind        symbol.Kind           `json:"kind"`
	Depth       int                   `json:"depth"`
	SourceFile  string                `json:"sourcefile,omitempty"`
	Line        int                   `json:"line"`
	Signature   string                `json:"signature,omitempty"`
	Docstring   *docstring.Docstring  `json:"docstring,omitempty"`
	OriginIndex int                   `json:"origin_index"`
	Type        string                `json:"type,omitempty"`
	Members     []*Node               `json:"members,omitempty"`

	Object *Object `json:"object"`
}

// FullPath returns the dotted fully-qualified path, the tree's stable
// identifier for this node.
func (n *Node) FullPath() string {
	if n.Prefix == "" {
		return n.Name
	}
	return n.Prefix + "." + n.Name
}

// Units returns the renderable units of the tree in pre-order: the
// node's object, its docstring sections, then each member in full.
// With headless set, the root's own object unit is omitted.
func (n *Node) Units(headless bool) []Unit {
	var units []Unit
	n.appendUnits(&units, headless)
	return units
}

func (n *Node) appendUnits(units *[]Unit, skipObject bool) {
	if !skipObject {
		*units = append(*units, n.Object)
	}
	if n.Docstring != nil {
		for _, s := range n.Docstring.Sections {
			*units = append(*units, s)
		}
	}
	for _, m := range n.Members {
		m.appendUnits(units, false)
	}
}

// Walk visits the node and all descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, m := range n.Members {
		m.Walk(fn)
	}
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}
