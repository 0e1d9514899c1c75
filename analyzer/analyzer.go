// Package analyzer loads a Go package and extracts its named struct and
// interface types together with the embedding, composition and
// implementation relationships between them.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/don7panic/codewiki-go-diagram/models"
)

var (
	// ErrPackageNotFound is returned when a load pattern does not resolve to a package.
	ErrPackageNotFound = errors.New("package not found")

	// ErrAmbiguousPattern is returned when a load pattern resolves to more than one package.
	ErrAmbiguousPattern = errors.New("pattern matches more than one package")
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

type GoAnalyzer struct {
	RepoPath    string
	PackagePath string
	PackageName string
	FileSet     *token.FileSet

	// Classes maps a type name to its type object.
	Classes map[string]*types.TypeName
	Nodes   map[string]*models.ClassInfo

	// Inheritance holds direct embedded types only; classes without any are absent.
	Inheritance map[string][]string
	// Composition holds the classes each constructor mentions; every class
	// has an entry.
	Composition map[string][]string
	// References holds the classes named by non-embedded struct field types.
	References  map[string][]string
	Implements  map[string][]string

	logger   *slog.Logger
	contents map[string][]byte
}

func NewGoAnalyzer(repoPath string) (*GoAnalyzer, error) {
	if repoPath == "" {
		repoPath = "."
	}
	info, err := os.Stat(repoPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", repoPath)
	}

	a := &GoAnalyzer{
		RepoPath: repoPath,
		logger:   slog.Default().With("component", "analyzer"),
	}
	a.reset()
	return a, nil
}

// SetLogger replaces the analyzer's logger.
func (a *GoAnalyzer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger.With("component", "analyzer")
	}
}

func (a *GoAnalyzer) reset() {
	a.PackagePath = ""
	a.PackageName = ""
	a.FileSet = nil
	a.Classes = make(map[string]*types.TypeName)
	a.Nodes = make(map[string]*models.ClassInfo)
	a.Inheritance = make(map[string][]string)
	a.Composition = make(map[string][]string)
	a.References = make(map[string][]string)
	a.Implements = make(map[string][]string)
	a.contents = make(map[string][]byte)
}

// Analyze loads the package named by pattern and rebuilds every relationship
// map from scratch.
func (a *GoAnalyzer) Analyze(ctx context.Context, pattern string) error {
	a.reset()

	pkg, err := a.load(ctx, pattern)
	if err != nil {
		return err
	}

	a.PackagePath = pkg.PkgPath
	a.PackageName = pkg.Name
	a.FileSet = pkg.Fset

	// First pass: collect classes
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					a.visitTypeSpec(pkg, ts, gd.Doc)
				}
			}
		}
	}

	// Second pass: relationships
	a.analyzeInheritance()
	a.analyzeComposition(pkg)
	a.analyzeImplements()

	a.logger.Debug("package analyzed",
		"package", a.PackagePath,
		"classes", len(a.Classes),
		"inheritance", len(a.Inheritance),
		"implements", len(a.Implements))
	return nil
}

func (a *GoAnalyzer) load(ctx context.Context, pattern string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     a.RepoPath,
		Mode:    loadMode,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPackageNotFound, pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("%w: %s matched %d packages", ErrAmbiguousPattern, pattern, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Syntax) == 0 || pkg.Types == nil || pkg.TypesInfo == nil {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s: %s", ErrPackageNotFound, pattern, pkg.Errors[0].Msg)
		}
		return nil, fmt.Errorf("%w: %s: no Go files", ErrPackageNotFound, pattern)
	}
	for _, e := range pkg.Errors {
		a.logger.Warn("package loaded with errors", "package", pkg.PkgPath, "error", e.Error())
	}
	return pkg, nil
}

func (a *GoAnalyzer) visitTypeSpec(pkg *packages.Package, ts *ast.TypeSpec, genDeclDoc *ast.CommentGroup) {
	if ts.Assign.IsValid() {
		return // aliases are not classes
	}
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || obj == nil {
		return
	}
	kind := classKind(obj.Type())
	if kind == "" {
		return
	}

	startPos := a.FileSet.Position(ts.Pos())
	endPos := a.FileSet.Position(ts.End())
	relativePath, err := filepath.Rel(a.absRepoPath(), startPos.Filename)
	if err != nil {
		relativePath = startPos.Filename
	}

	// Effective Doc
	doc := ts.Doc
	if doc == nil {
		doc = genDeclDoc
	}

	node := &models.ClassInfo{
		Name:         ts.Name.Name,
		Kind:         kind,
		Package:      a.PackagePath,
		FilePath:     startPos.Filename,
		RelativePath: filepath.ToSlash(relativePath),
		StartLine:    startPos.Line,
		EndLine:      endPos.Line,
		Fields:       fieldList(ts.Type),
		DependsOn:    []string{},
	}
	if doc != nil {
		node.HasDocstring = true
		node.Docstring = doc.Text()
	}

	a.Classes[ts.Name.Name] = obj
	a.Nodes[ts.Name.Name] = node
}

func (a *GoAnalyzer) absRepoPath() string {
	abs, err := filepath.Abs(a.RepoPath)
	if err != nil {
		return a.RepoPath
	}
	return abs
}

func classKind(t types.Type) string {
	switch t.Underlying().(type) {
	case *types.Struct:
		return "struct"
	case *types.Interface:
		return "interface"
	default:
		return ""
	}
}

func (a *GoAnalyzer) analyzeInheritance() {
	for name, obj := range a.Classes {
		if bases := a.directBases(obj); len(bases) > 0 {
			a.Inheritance[name] = bases
		}
	}
}

// directBases returns the embedded types of a struct or interface in
// declaration order. The empty interface and comparable are never reported.
func (a *GoAnalyzer) directBases(obj *types.TypeName) []string {
	var bases []string
	switch u := obj.Type().Underlying().(type) {
	case *types.Struct:
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if !f.Embedded() {
				continue
			}
			if name, ok := a.qualifiedName(f.Type()); ok {
				bases = append(bases, name)
			}
		}
	case *types.Interface:
		for i := 0; i < u.NumEmbeddeds(); i++ {
			name, ok := a.qualifiedName(u.EmbeddedType(i))
			if ok && name != "any" && name != "comparable" {
				bases = append(bases, name)
			}
		}
	}
	return bases
}

// qualifiedName names a (possibly pointer to) named type: bare for types of
// the analyzed package and predeclared types, pkg.Name otherwise.
func (a *GoAnalyzer) qualifiedName(t types.Type) (string, bool) {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	named, ok := t.(*types.Named)
	if !ok {
		return "", false
	}
	obj := named.Origin().Obj()
	switch {
	case obj.Pkg() == nil, obj.Pkg().Path() == a.PackagePath:
		return obj.Name(), true
	default:
		return obj.Pkg().Name() + "." + obj.Name(), true
	}
}

func (a *GoAnalyzer) analyzeImplements() {
	names := a.ClassNames()
	for _, iname := range names {
		iobj := a.Classes[iname]
		iface, ok := iobj.Type().Underlying().(*types.Interface)
		if !ok || iface.NumMethods() == 0 || !iface.IsMethodSet() || isGeneric(iobj) {
			continue
		}
		for _, sname := range names {
			sobj := a.Classes[sname]
			if _, ok := sobj.Type().Underlying().(*types.Struct); !ok || isGeneric(sobj) {
				continue
			}
			if types.Implements(sobj.Type(), iface) || types.Implements(types.NewPointer(sobj.Type()), iface) {
				a.Implements[sname] = append(a.Implements[sname], iname)
			}
		}
	}
}

func isGeneric(obj *types.TypeName) bool {
	named, ok := obj.Type().(*types.Named)
	return ok && named.TypeParams().Len() > 0
}

// ClassNames returns the names of all discovered classes in sorted order.
func (a *GoAnalyzer) ClassNames() []string {
	names := make([]string, 0, len(a.Classes))
	for name := range a.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result flattens the analysis into a deterministic, serializable form.
func (a *GoAnalyzer) Result() models.AnalysisResult {
	result := models.AnalysisResult{
		Package:       a.PackagePath,
		Classes:       []models.ClassInfo{},
		Relationships: []models.Relationship{},
	}

	for _, name := range a.ClassNames() {
		info := *a.Nodes[name]
		info.BaseClasses = a.Inheritance[name]
		info.Implements = a.Implements[name]
		info.DependsOn = a.Dependencies(name)
		result.Classes = append(result.Classes, info)

		for _, base := range info.BaseClasses {
			result.Relationships = append(result.Relationships, models.Relationship{
				Source:           name,
				Target:           base,
				RelationshipType: models.Inherits,
			})
		}
		for _, dep := range info.DependsOn {
			result.Relationships = append(result.Relationships, models.Relationship{
				Source:           name,
				Target:           dep,
				RelationshipType: models.Uses,
				Label:            "uses",
			})
		}
		for _, iface := range info.Implements {
			result.Relationships = append(result.Relationships, models.Relationship{
				Source:           name,
				Target:           iface,
				RelationshipType: models.Implements,
			})
		}
	}
	return result
}

func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeToString(t.Elt)
		}
		return "[...]" + typeToString(t.Elt)
	case *ast.MapType:
		return "map[" + typeToString(t.Key) + "]" + typeToString(t.Value)
	case *ast.ChanType:
		return "chan " + typeToString(t.Value)
	case *ast.FuncType:
		return "func"
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.StructType:
		return "struct{}"
	case *ast.IndexExpr: // Generic[T]
		return typeToString(t.X) + "[" + typeToString(t.Index) + "]"
	case *ast.IndexListExpr: // Generic[T, U]
		indices := ""
		for i, idx := range t.Indices {
			if i > 0 {
				indices += ", "
			}
			indices += typeToString(idx)
		}
		return typeToString(t.X) + "[" + indices + "]"
	default:
		return ""
	}
}

// fieldList renders struct fields as "name Type" (embedded fields as "Type")
// and interface members as method names or embedded types.
func fieldList(expr ast.Expr) []string {
	var list *ast.FieldList
	switch t := expr.(type) {
	case *ast.StructType:
		list = t.Fields
	case *ast.InterfaceType:
		list = t.Methods
	}
	if list == nil {
		return nil
	}

	var out []string
	for _, field := range list.List {
		if len(field.Names) == 0 {
			out = append(out, typeToString(field.Type))
			continue
		}
		_, isMethod := field.Type.(*ast.FuncType)
		for _, name := range field.Names {
			if isMethod {
				out = append(out, name.Name+"()")
			} else {
				out = append(out, name.Name+" "+typeToString(field.Type))
			}
		}
	}
	return out
}
