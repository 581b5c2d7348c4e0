// Package inspect is the static introspection adapter: it loads Go
// packages ahead of time and exposes their declarations as symbol
// entities, so the tree builder never reflects on live code.
package inspect

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/symbol"
)

// Loader indexes the declarations of a loaded project and resolves
// dotted symbol paths to entities. Entities are created once at load
// time, so repeated resolutions return identical handles.
type Loader struct {
	fset  *token.FileSet
	index map[string]*symbol.Info
	log   *slog.Logger
}

// Load parses and type-checks all packages under dir.
func Load(dir string, log *slog.Logger) (*Loader, error) {
	if log == nil {
		log = slog.Default()
	}
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir:  dir,
		Fset: fset,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	errCount := 0
	for _, pkg := range pkgs {
		errCount += len(pkg.Errors)
	}
	if errCount > 0 {
		// Partially broken packages may still be usable.
		log.Warn("package load errors", "count", errCount)
	}

	l := &Loader{
		fset:  fset,
		index: make(map[string]*symbol.Info),
		log:   log,
	}
	for _, pkg := range pkgs {
		if len(pkg.Syntax) > 0 {
			l.indexPackage(pkg)
		}
	}
	return l, nil
}

// Resolve implements doctree.Resolver. Exact paths win; otherwise the
// shortest unambiguous suffix form ("widgets.Widget") is accepted.
func (l *Loader) Resolve(name string) (symbol.Entity, error) {
	if e, ok := l.index[name]; ok {
		return e, nil
	}
	var matches []string
	for k := range l.index {
		if strings.HasSuffix(k, "/"+name) {
			matches = append(matches, k)
		}
	}
	if len(matches) == 0 {
		return nil, doctree.ErrEntityNotFound
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		l.log.Debug("ambiguous symbol path", "name", name, "matches", len(matches))
	}
	return l.index[matches[0]], nil
}

// Symbols lists all indexed symbol paths, sorted.
func (l *Loader) Symbols() []string {
	paths := make([]string, 0, len(l.index))
	for k := range l.index {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

func (l *Loader) indexPackage(pkg *packages.Package) {
	pkgInfo := &symbol.Info{
		Name:         pkg.Name,
		Module:       pkg.PkgPath,
		ModuleEntity: true,
	}

	types := make(map[string]*symbol.Info)
	embeds := make(map[string][]string)

	// First pass: package doc, types, and plain functions.
	for _, file := range pkg.Syntax {
		pos := l.fset.Position(file.Package)
		if pkgInfo.File == "" || file.Doc != nil {
			pkgInfo.File = pos.Filename
			pkgInfo.LineNum = pos.Line
		}
		if file.Doc != nil {
			pkgInfo.Doc = file.Doc.Text()
		}

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				ti, embedded := l.typeEntity(pkg, ts, gd)
				if ti == nil {
					continue
				}
				types[ts.Name.Name] = ti
				embeds[ts.Name.Name] = embedded
			}
		}
	}

	// Second pass: functions and methods, attached to their receivers.
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if fd.Recv != nil {
				recv := receiverName(fd.Recv)
				ti, ok := types[recv]
				if !ok {
					continue
				}
				mi := l.funcEntity(pkg, fd, recv)
				ti.Children = append(ti.Children, symbol.Named{Name: fd.Name.Name, Entity: mi})
				l.index[pkg.PkgPath+"."+recv+"."+fd.Name.Name] = mi
				continue
			}
			fi := l.funcEntity(pkg, fd, "")
			pkgInfo.Children = append(pkgInfo.Children, symbol.Named{Name: fd.Name.Name, Entity: fi})
			l.index[pkg.PkgPath+"."+fd.Name.Name] = fi
		}
	}

	// Third pass: ancestor resolution order and promoted members from
	// embedded same-package types, plus the record/class split.
	typeNames := make([]string, 0, len(types))
	for name := range types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		ti := types[name]
		ti.Ancestors = []string{ti.File}
		for _, embedded := range embeds[name] {
			base, ok := types[embedded]
			if !ok {
				continue
			}
			ti.Ancestors = append(ti.Ancestors, base.File)
			for _, m := range base.Children {
				if !hasMember(ti.Children, m.Name) {
					ti.Children = append(ti.Children, m)
				}
			}
		}
		if ti.RecordEntity && len(ti.Children) > 0 {
			// A struct that grows methods documents as a class.
			ti.RecordEntity = false
		}
		pkgInfo.Children = append(pkgInfo.Children, symbol.Named{Name: name, Entity: ti})
		l.index[pkg.PkgPath+"."+name] = ti
	}

	l.index[pkg.PkgPath] = pkgInfo
}

// typeEntity builds the entity for a struct or interface declaration
// and returns the names of same-package embedded types.
func (l *Loader) typeEntity(pkg *packages.Package, ts *ast.TypeSpec, gd *ast.GenDecl) (*symbol.Info, []string) {
	pos := l.fset.Position(ts.Pos())
	doc := ts.Doc
	if doc == nil {
		doc = gd.Doc
	}

	ti := &symbol.Info{
		Name:        ts.Name.Name,
		Qualified:   ts.Name.Name,
		Module:      pkg.PkgPath,
		File:        pos.Filename,
		LineNum:     pos.Line,
		ClassEntity: true,
	}
	if doc != nil {
		ti.Doc = doc.Text()
	}

	var embedded []string
	switch t := ts.Type.(type) {
	case *ast.StructType:
		// Plain field structs document as records until methods attach.
		ti.RecordEntity = true
		for _, field := range t.Fields.List {
			if len(field.Names) == 0 {
				if name := embeddedName(field.Type); name != "" {
					embedded = append(embedded, name)
				}
			}
		}
	case *ast.InterfaceType:
		// Interfaces document as classes.
	default:
		return nil, nil
	}
	return ti, embedded
}

// funcEntity builds the entity for a function or method declaration.
func (l *Loader) funcEntity(pkg *packages.Package, fd *ast.FuncDecl, recv string) *symbol.Info {
	pos := l.fset.Position(fd.Pos())
	fi := &symbol.Info{
		Name:           fd.Name.Name,
		Qualified:      fd.Name.Name,
		Module:         pkg.PkgPath,
		File:           pos.Filename,
		LineNum:        pos.Line,
		CallableEntity: true,
	}
	if recv != "" {
		fi.Qualified = recv + "." + fd.Name.Name
		// Instance-bound callables are reported under the conventional
		// receiver name so they classify as methods.
		fi.Param = symbol.SelfParam
	} else if fd.Type.Params != nil && len(fd.Type.Params.List) > 0 {
		params := fd.Type.Params.List[0]
		if len(params.Names) > 0 {
			fi.Param = params.Names[0].Name
		}
	}
	if fd.Doc != nil {
		fi.Doc = fd.Doc.Text()
	}
	fi.GeneratorEntity = yieldsSequence(fd.Type)

	if obj := pkg.TypesInfo.Defs[fd.Name]; obj != nil {
		fi.Sig = ShortSignature(obj.Type().String())
	}
	return fi
}

// yieldsSequence reports whether a function produces a stream of
// values: its first result is a channel or an iter.Seq/iter.Seq2.
func yieldsSequence(ft *ast.FuncType) bool {
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return false
	}
	switch rt := ft.Results.List[0].Type.(type) {
	case *ast.ChanType:
		return true
	case *ast.IndexExpr:
		return isIterSeq(rt.X)
	case *ast.IndexListExpr:
		return isIterSeq(rt.X)
	}
	return false
}

func isIterSeq(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return x.Name == "iter" && strings.HasPrefix(sel.Sel.Name, "Seq")
}

// receiverName extracts the bare receiver type name of a method.
func receiverName(recv *ast.FieldList) string {
	if len(recv.List) == 0 {
		return ""
	}
	t := recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if idx, ok := t.(*ast.IndexExpr); ok {
		t = idx.X
	}
	if idx, ok := t.(*ast.IndexListExpr); ok {
		t = idx.X
	}
	if id, ok := t.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

// embeddedName extracts the type name of an embedded field, ignoring
// cross-package embeds.
func embeddedName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func hasMember(members []symbol.Named, name string) bool {
	for _, m := range members {
		if m.Name == name {
			return true
		}
	}
	return false
}
