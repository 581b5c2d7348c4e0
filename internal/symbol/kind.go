package symbol

import "strings"

// Kind classifies an entity for documentation purposes.
type Kind string

const (
	KindModule            Kind = "module"
	KindPackage           Kind = "package"
	KindClass             Kind = "class"
	KindDataclass         Kind = "dataclass"
	KindFunction          Kind = "function"
	KindMethod            Kind = "method"
	KindStaticmethod      Kind = "staticmethod"
	KindClassmethod       Kind = "classmethod"
	KindGenerator         Kind = "generator"
	KindReadonlyProperty  Kind = "readonly_property"
	KindReadwriteProperty Kind = "readwrite_property"

	// KindNone marks entities that cannot be documented, such as native
	// callables without an extractable signature.
	KindNone Kind = ""
)

// PackageMarkerFile distinguishes a package root from a plain module: a
// module whose source file is the package doc file is a package.
const PackageMarkerFile = "doc.go"

// Classify maps an entity to its documentation kind. It is total and
// never fails; unclassifiable entities map to KindNone.
//
// The ordering is significant: records and class-bound callables are
// also classes, so those checks run first.
func Classify(e Entity) Kind {
	if e == nil {
		return KindNone
	}
	if e.IsProperty() {
		if e.Setter() != nil {
			return KindReadwriteProperty
		}
		return KindReadonlyProperty
	}
	if e.IsRecord() && e.QualifiedName() != "" {
		return KindDataclass
	}
	if e.BoundToClass() {
		return KindClassmethod
	}
	if e.IsClass() {
		return KindClass
	}
	if e.IsGenerator() {
		return KindGenerator
	}
	if e.IsCallable() {
		first, ok := e.FirstParam()
		if !ok {
			return KindNone
		}
		if first == SelfParam {
			return KindMethod
		}
		if strings.Contains(e.QualifiedName(), ".") {
			return KindStaticmethod
		}
		return KindFunction
	}
	if e.IsModule() {
		if strings.HasSuffix(e.SourceFile(), PackageMarkerFile) {
			return KindPackage
		}
		return KindModule
	}
	return KindNone
}
