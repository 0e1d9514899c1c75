package analyzer

import (
	"go/ast"
	"go/types"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"
)

type constructor struct {
	Name   string
	Source string
}

// analyzeComposition records, for every class, the other classes its
// constructor appears to use. A class without a readable constructor gets an
// empty entry. The types of non-embedded struct fields are kept apart in
// References. Embedded types are inheritance and never reported in either.
func (a *GoAnalyzer) analyzeComposition(pkg *packages.Package) {
	constructors := a.findConstructors(pkg)
	names := a.ClassNames()

	for _, name := range names {
		deps := make(map[string]bool)
		if ctor, ok := constructors[name]; ok {
			a.Nodes[name].Constructor = ctor.Name
			for _, other := range names {
				if other != name && constructorMentions(ctor.Source, other) {
					deps[other] = true
				}
			}
		}
		a.Composition[name] = a.dependencyList(name, deps)

		refs := make(map[string]bool)
		a.fieldReferences(a.Classes[name], refs)
		a.References[name] = a.dependencyList(name, refs)
	}
}

// dependencyList sorts deps, dropping the class itself and its direct bases.
func (a *GoAnalyzer) dependencyList(name string, deps map[string]bool) []string {
	delete(deps, name)
	for _, base := range a.Inheritance[name] {
		delete(deps, base)
	}
	list := make([]string, 0, len(deps))
	for dep := range deps {
		list = append(list, dep)
	}
	sort.Strings(list)
	return list
}

// Dependencies returns the sorted union of a class's constructor composition
// and field references.
func (a *GoAnalyzer) Dependencies(name string) []string {
	set := make(map[string]bool)
	for _, dep := range a.Composition[name] {
		set[dep] = true
	}
	for _, dep := range a.References[name] {
		set[dep] = true
	}
	list := make([]string, 0, len(set))
	for dep := range set {
		list = append(list, dep)
	}
	sort.Strings(list)
	return list
}

// constructorMentions reports whether a constructor's source text appears to
// reference another class. The match is purely textual: a field selector or
// keyed field named after the class, or a composite literal or NewX call.
func constructorMentions(source, other string) bool {
	field := lowerFirst(other)
	return strings.Contains(source, "."+field) ||
		strings.Contains(source, field+":") ||
		strings.Contains(source, other+"{") ||
		strings.Contains(source, "New"+other+"(")
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// findConstructors maps class names to the source of their NewX (or newX)
// function. Classes whose constructor source cannot be read are omitted.
func (a *GoAnalyzer) findConstructors(pkg *packages.Package) map[string]constructor {
	found := make(map[string]constructor)
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil {
				continue
			}
			class, ok := a.constructedClass(fn.Name.Name)
			if !ok {
				continue
			}
			if prev, seen := found[class]; seen && ast.IsExported(prev.Name) {
				continue
			}
			source, ok := a.sourceOf(fn)
			if !ok {
				a.logger.Debug("constructor source unavailable", "class", class, "func", fn.Name.Name)
				continue
			}
			found[class] = constructor{Name: fn.Name.Name, Source: source}
		}
	}
	return found
}

func (a *GoAnalyzer) constructedClass(funcName string) (string, bool) {
	for _, prefix := range []string{"New", "new"} {
		name, ok := strings.CutPrefix(funcName, prefix)
		if !ok || name == "" {
			continue
		}
		if _, known := a.Classes[name]; known {
			return name, true
		}
	}
	return "", false
}

// sourceOf returns the literal text of a function declaration, doc comment
// excluded.
func (a *GoAnalyzer) sourceOf(fn *ast.FuncDecl) (string, bool) {
	startPos := a.FileSet.Position(fn.Pos())
	endPos := a.FileSet.Position(fn.End())

	content, ok := a.contents[startPos.Filename]
	if !ok {
		data, err := os.ReadFile(startPos.Filename)
		if err != nil {
			return "", false
		}
		content = data
		a.contents[startPos.Filename] = content
	}

	startOffset := startPos.Offset
	endOffset := endPos.Offset
	if startOffset < 0 || endOffset > len(content) || startOffset > endOffset {
		return "", false
	}
	return string(content[startOffset:endOffset]), true
}

// fieldReferences adds the package classes named by a struct's field types.
func (a *GoAnalyzer) fieldReferences(obj *types.TypeName, deps map[string]bool) {
	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() {
			continue
		}
		a.collectRefs(f.Type(), deps)
	}
}

func (a *GoAnalyzer) collectRefs(t types.Type, deps map[string]bool) {
	switch t := types.Unalias(t).(type) {
	case *types.Pointer:
		a.collectRefs(t.Elem(), deps)
	case *types.Slice:
		a.collectRefs(t.Elem(), deps)
	case *types.Array:
		a.collectRefs(t.Elem(), deps)
	case *types.Map:
		a.collectRefs(t.Key(), deps)
		a.collectRefs(t.Elem(), deps)
	case *types.Chan:
		a.collectRefs(t.Elem(), deps)
	case *types.Named:
		obj := t.Origin().Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == a.PackagePath {
			if _, known := a.Classes[obj.Name()]; known {
				deps[obj.Name()] = true
			}
		}
		args := t.TypeArgs()
		for i := 0; i < args.Len(); i++ {
			a.collectRefs(args.At(i), deps)
		}
	}
}
