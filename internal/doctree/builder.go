package doctree

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/docmap/internal/docstring"
	"github.com/dgallion1/docmap/internal/symbol"
)

// ErrEntityNotFound is returned when a symbol path resolves to nothing.
// The build fails as a whole; no partial tree is produced.
var ErrEntityNotFound = errors.New("entity not found")

// constructorName is the member name whose docstring may be promoted to
// its container and which is always excluded from published members.
const constructorName = "__init__"

// initBoilerplate is the generic auto-text of undocumented
// constructors; such docstrings are never promoted.
const initBoilerplate = "Initialize self"

// Unlimited disables depth limiting.
const Unlimited = -1

// Resolver turns a dotted symbol path into a live entity.
type Resolver interface {
	Resolve(name string) (symbol.Entity, error)
}

// DocSource parses an entity's documentation. A nil result means the
// entity has no docstring.
type DocSource interface {
	Parse(e symbol.Entity) *docstring.Docstring
}

// SigSource formats an entity's call signature. ok is false when the
// entity is unintrospectable or has no signature.
type SigSource interface {
	Format(e symbol.Entity) (sig string, ok bool)
}

// rawDocSource reads unparsed doc text off entities that carry it.
type rawDocSource struct{}

func (rawDocSource) Parse(e symbol.Entity) *docstring.Docstring {
	d, ok := e.(interface{ RawDoc() (string, bool) })
	if !ok {
		return nil
	}
	raw, ok := d.RawDoc()
	if !ok {
		return nil
	}
	return docstring.Parse(raw)
}

// rawSigSource reads preformatted signatures off entities that carry
// them.
type rawSigSource struct{}

func (rawSigSource) Format(e symbol.Entity) (string, bool) {
	s, ok := e.(interface{ RawSignature() (string, bool) })
	if !ok {
		return "", false
	}
	return s.RawSignature()
}

// Builder constructs documentation trees. Builds are serialized by a
// single lock; the builder is not reentrant-safe against concurrent
// identical builds without it.
type Builder struct {
	Docs DocSource
	Sigs SigSource

	mu       sync.Mutex
	resolver Resolver
	cache    *Cache
	log      *slog.Logger
}

// NewBuilder creates a builder over the given resolver. A nil cache
// gets a default-capacity cache; a nil logger falls back to the
// default logger.
func NewBuilder(resolver Resolver, cache *Cache, log *slog.Logger) *Builder {
	if cache == nil {
		cache = NewCache(0)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Builder{
		Docs:     rawDocSource{},
		Sigs:     rawSigSource{},
		resolver: resolver,
		cache:    cache,
		log:      log,
	}
}

// Cache returns the builder's tree cache.
func (b *Builder) Cache() *Cache { return b.cache }

// Build resolves a dotted symbol path and constructs its tree. maxDepth
// limits member recursion; Unlimited (-1) disables the limit.
func (b *Builder) Build(name string, maxDepth int) (*Node, error) {
	e, err := b.resolver.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	if e == nil {
		return nil, fmt.Errorf("resolve %q: %w", name, ErrEntityNotFound)
	}
	return b.BuildEntity(e, maxDepth), nil
}

// BuildEntity constructs the tree for an already-resolved entity.
func (b *Builder) BuildEntity(e symbol.Entity, maxDepth int) *Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.get(e, 0, 0, maxDepth)
}

// get returns the memoized node for (entity, origin index, remaining
// depth budget), building it on a miss.
func (b *Builder) get(e symbol.Entity, origin, depth, maxDepth int) *Node {
	remaining := maxDepth
	if maxDepth != Unlimited {
		remaining = maxDepth - depth
		// Nodes built during the promotion lookahead sit past the cutoff
		// and have their members stripped; a negative budget is also the
		// Unlimited key, so they bypass the cache entirely.
		if remaining < 0 {
			return b.build(e, origin, depth, maxDepth)
		}
	}
	key := cacheKey{entity: e, origin: origin, budget: remaining}
	if n, ok := b.cache.Get(key); ok {
		return n
	}
	n := b.build(e, origin, depth, maxDepth)
	b.cache.Put(key, n)
	return n
}

func (b *Builder) build(e symbol.Entity, origin, depth, maxDepth int) *Node {
	kind := symbol.Classify(e)
	name, prefix := splitName(e, kind)

	n := &Node{
		Entity:      e,
		Name:        name,
		Prefix:      prefix,
		Kind:        kind,
		Depth:       depth,
		SourceFile:  e.SourceFile(),
		Line:        e.Line(),
		OriginIndex: origin,
	}

	if sig, ok := b.Sigs.Format(e); ok {
		n.Signature = sig
	} else if e.IsCallable() {
		b.log.Debug("signature unavailable", "symbol", n.FullPath())
	}
	n.Docstring = b.Docs.Parse(e)

	// Members are resolved one level past the depth cutoff so that the
	// constructor docstring is still available for promotion; the extra
	// level is discarded below.
	var members []*Node
	if maxDepth == Unlimited || depth <= maxDepth {
		members = b.members(e, depth, maxDepth)
	}
	members = b.merge(n, members)
	if maxDepth != Unlimited && depth >= maxDepth {
		members = nil
	}
	n.Members = members

	if n.Docstring != nil && n.Docstring.Type != "" {
		n.Type = n.Docstring.Type
	}

	n.Object = &Object{
		Name:      n.Name,
		Prefix:    n.Prefix,
		Kind:      n.Kind,
		Signature: n.Signature,
		Type:      n.Type,
	}
	return n
}

// members enumerates, filters, builds and orders the child nodes of an
// entity. Modules and properties yield no members.
func (b *Builder) members(e symbol.Entity, depth, maxDepth int) []*Node {
	if e.IsModule() || e.IsProperty() {
		return nil
	}

	ancestors := e.AncestorFiles()
	var nodes []*Node
	for _, m := range e.Members() {
		idx, ok := memberOrigin(m.Name, m.Entity, ancestors)
		if !ok {
			continue
		}
		child := b.get(m.Entity, idx, depth+1, maxDepth)
		if child.Docstring == nil {
			continue
		}
		nodes = append(nodes, child)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].OriginIndex != nodes[j].OriginIndex {
			return nodes[i].OriginIndex > nodes[j].OriginIndex
		}
		return nodes[i].Line < nodes[j].Line
	})
	return nodes
}

// memberOrigin decides whether a named attribute is a documented
// member and, if so, at which rank of the ancestor resolution order it
// was defined. Properties are dereferenced to their getter for every
// check.
func memberOrigin(name string, e symbol.Entity, ancestors []string) (int, bool) {
	if e == nil {
		return 0, false
	}
	if e.IsProperty() {
		if e = e.Getter(); e == nil {
			return 0, false
		}
	}
	if name == "__func__" || name == "__self__" {
		return 0, false
	}
	if strings.HasPrefix(name, "_") {
		if !strings.HasPrefix(name, "__") || !strings.HasSuffix(name, "__") {
			return 0, false
		}
	}
	if symbol.Classify(e) == symbol.KindNone {
		return 0, false
	}
	file := e.SourceFile()
	if file == "" {
		return 0, false
	}
	if len(ancestors) == 0 {
		return 0, true
	}
	for i, f := range ancestors {
		if f == file {
			return i, true
		}
	}
	return 0, false
}

// merge applies constructor-docstring promotion and removes the
// constructor from the published members.
func (b *Builder) merge(n *Node, members []*Node) []*Node {
	if (n.Kind == symbol.KindClass || n.Kind == symbol.KindDataclass) && n.Docstring == nil {
		for _, m := range members {
			if m.Name != constructorName || m.Docstring == nil {
				continue
			}
			if strings.HasPrefix(m.Docstring.Sections[0].Markdown(), initBoilerplate) {
				continue
			}
			n.Docstring = m.Docstring
		}
	}

	kept := members[:0]
	for _, m := range members {
		if m.Name != constructorName {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// splitName computes a node's local name and dotted prefix from the
// entity's declared qualified path and module. Module-kind entities use
// their full module path as the name.
func splitName(e symbol.Entity, kind symbol.Kind) (name, prefix string) {
	if kind == symbol.KindModule || kind == symbol.KindPackage {
		return e.ModulePath(), ""
	}
	q := e.QualifiedName()
	mod := e.ModulePath()
	if i := strings.LastIndex(q, "."); i >= 0 {
		name = q[i+1:]
		prefix = q[:i]
		if mod != "" {
			prefix = mod + "." + prefix
		}
		return name, prefix
	}
	return q, mod
}
