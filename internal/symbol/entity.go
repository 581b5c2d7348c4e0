// Package symbol models resolved program symbols and classifies them
// into documentation kinds.
package symbol

// SelfParam is the conventional name of an instance-bound callable's
// first parameter. Adapters report instance methods under this name.
const SelfParam = "self"

// Named pairs an attribute name with the entity it resolves to.
type Named struct {
	Name   string
	Entity Entity
}

// Entity is an opaque handle to a resolved program symbol. Identity is
// interface-value identity, so adapters must hand out pointer
// implementations and return the same pointer for the same symbol.
type Entity interface {
	// QualifiedName is the dotted path of the symbol within its module,
	// or "" if the symbol has none (builtins, anonymous values).
	QualifiedName() string
	// ModulePath is the path of the defining module, or "" if unknown.
	ModulePath() string
	// SourceFile is the defining file, or "" if unavailable.
	SourceFile() string
	// Line is the starting line in SourceFile, or -1 if unavailable.
	Line() int

	IsModule() bool
	IsClass() bool
	// IsRecord reports whether the entity is a structured-record type
	// with a fixed, declared field list.
	IsRecord() bool
	IsCallable() bool
	IsGenerator() bool
	// BoundToClass reports whether the entity is a callable whose
	// receiver is the class itself rather than an instance.
	BoundToClass() bool

	IsProperty() bool
	// Getter returns the accessor a property dereferences to, or nil.
	Getter() Entity
	// Setter returns the property's setter, or nil if read-only.
	Setter() Entity

	// FirstParam returns the name of the first declared parameter. ok is
	// false when the signature cannot be introspected at all; an empty
	// name with ok=true means the callable takes no parameters.
	FirstParam() (name string, ok bool)

	// Members enumerates the named attributes of the entity.
	Members() []Named
	// AncestorFiles returns the source files of the entity's ancestor
	// resolution order, the entity's own file first. Nil for entities
	// without an inheritance context.
	AncestorFiles() []string
}

// Info is a concrete Entity assembled field by field. The static
// inspect adapter produces *Info values; tests build them directly.
type Info struct {
	Name      string
	Qualified string
	Module    string
	File      string
	LineNum   int

	ModuleEntity    bool
	ClassEntity     bool
	RecordEntity    bool
	CallableEntity  bool
	GeneratorEntity bool
	ClassBound      bool
	PropertyEntity  bool

	Get *Info
	Set *Info

	// Param is the first declared parameter name. NoSignature marks a
	// callable whose signature cannot be introspected.
	Param       string
	NoSignature bool

	// Doc and Sig feed the default docstring and signature sources.
	Doc string
	Sig string

	Children  []Named
	Ancestors []string
}

func (i *Info) QualifiedName() string { return i.Qualified }
func (i *Info) ModulePath() string    { return i.Module }
func (i *Info) SourceFile() string    { return i.File }

func (i *Info) Line() int {
	if i.LineNum == 0 && i.File == "" {
		return -1
	}
	return i.LineNum
}

func (i *Info) IsModule() bool     { return i.ModuleEntity }
func (i *Info) IsClass() bool      { return i.ClassEntity }
func (i *Info) IsRecord() bool     { return i.RecordEntity }
func (i *Info) IsCallable() bool   { return i.CallableEntity }
func (i *Info) IsGenerator() bool  { return i.GeneratorEntity }
func (i *Info) BoundToClass() bool { return i.ClassBound }
func (i *Info) IsProperty() bool   { return i.PropertyEntity }

func (i *Info) Getter() Entity {
	if i.Get == nil {
		return nil
	}
	return i.Get
}

func (i *Info) Setter() Entity {
	if i.Set == nil {
		return nil
	}
	return i.Set
}

func (i *Info) FirstParam() (string, bool) {
	if i.NoSignature {
		return "", false
	}
	return i.Param, true
}

func (i *Info) Members() []Named        { return i.Children }
func (i *Info) AncestorFiles() []string { return i.Ancestors }

// RawDoc exposes the unparsed doc text for the default docstring source.
func (i *Info) RawDoc() (string, bool) { return i.Doc, i.Doc != "" }

// RawSignature exposes the formatted signature for the default
// signature source.
func (i *Info) RawSignature() (string, bool) { return i.Sig, i.Sig != "" }
