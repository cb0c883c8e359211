package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Analyzer loads Go packages and indexes the doc comments of their
// declarations.
type Analyzer struct {
	dir   string
	index *DocIndex
}

// NewAnalyzer creates a new Analyzer resolving patterns from the current
// directory.
func NewAnalyzer() *Analyzer {
	return &Analyzer{index: NewDocIndex()}
}

// SetDir sets the directory package patterns are resolved from.
func (a *Analyzer) SetDir(dir string) {
	a.dir = dir
}

// LoadPackages loads the specified packages and adds their declarations to
// the index. Patterns are standard Go package patterns (e.g., "./store",
// "docnote/store").
func (a *Analyzer) LoadPackages(patterns ...string) (*DocIndex, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.index, nil
}

// Index returns the current doc index.
func (a *Analyzer) Index() *DocIndex {
	return a.index
}

// processPackage indexes the declarations of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	if _, ok := a.index.Packages[pkg.PkgPath]; !ok {
		a.index.Packages[pkg.PkgPath] = &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}
	}

	for _, file := range pkg.Syntax {
		IndexFile(a.index, pkg.Fset, pkg.PkgPath, file)
	}
}

// IndexFile adds the declarations of one parsed file to x.
func IndexFile(x *DocIndex, fset *token.FileSet, pkgPath string, file *ast.File) {
	v := &visitor{index: x, fset: fset, pkgPath: pkgPath}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			v.genDecl(d)
		case *ast.FuncDecl:
			v.funcDecl(d)
		}
	}
}

type visitor struct {
	index   *DocIndex
	fset    *token.FileSet
	pkgPath string
}

func (v *visitor) add(kind DeclKind, owner string, name *ast.Ident, doc *ast.CommentGroup) {
	if name == nil || name.Name == "_" {
		return
	}

	v.index.Add(&Decl{
		ID:       DeclID{PkgPath: v.pkgPath, Owner: owner, Name: name.Name},
		Kind:     kind,
		Doc:      commentText(doc),
		Pos:      v.fset.Position(name.Pos()),
		Exported: name.IsExported(),
	})
}

// genDecl indexes type, const and var specs. A spec uses its own doc, or
// the doc of the declaration when it is the only spec.
func (v *visitor) genDecl(gd *ast.GenDecl) {
	for _, spec := range gd.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			v.add(DeclType, "", s.Name, specDoc(gd, s.Doc))
			if st, ok := s.Type.(*ast.StructType); ok {
				v.fields(s.Name.Name, st)
			}
		case *ast.ValueSpec:
			kind := DeclVar
			if gd.Tok == token.CONST {
				kind = DeclConst
			}

			doc := specDoc(gd, s.Doc)
			for _, name := range s.Names {
				v.add(kind, "", name, doc)
			}
		}
	}
}

func specDoc(gd *ast.GenDecl, doc *ast.CommentGroup) *ast.CommentGroup {
	if doc != nil {
		return doc
	}

	if len(gd.Specs) == 1 {
		return gd.Doc
	}

	return nil
}

// fields indexes struct fields. A trailing line comment stands in for a
// missing doc comment.
func (v *visitor) fields(owner string, st *ast.StructType) {
	if st.Fields == nil {
		return
	}

	for _, f := range st.Fields.List {
		doc := f.Doc
		if doc == nil {
			doc = f.Comment
		}

		if len(f.Names) == 0 {
			v.add(DeclField, owner, embeddedName(f.Type), doc)
			continue
		}

		for _, name := range f.Names {
			v.add(DeclField, owner, name, doc)
		}
	}
}

func (v *visitor) funcDecl(fd *ast.FuncDecl) {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		v.add(DeclFunc, "", fd.Name, fd.Doc)
		return
	}

	recv := baseTypeName(fd.Recv.List[0].Type)
	if recv == nil {
		return
	}

	v.add(DeclMethod, recv.Name, fd.Name, fd.Doc)
}

// baseTypeName strips pointers, parentheses and type arguments from a
// receiver type expression.
func baseTypeName(expr ast.Expr) *ast.Ident {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		default:
			return nil
		}
	}
}

// embeddedName returns the field name of an embedded type.
func embeddedName(expr ast.Expr) *ast.Ident {
	if sel, ok := expr.(*ast.SelectorExpr); ok {
		return sel.Sel
	}

	if star, ok := expr.(*ast.StarExpr); ok {
		return embeddedName(star.X)
	}

	return baseTypeName(expr)
}

// commentText returns the raw comment text, markers included.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}

	lines := make([]string, len(cg.List))
	for i, c := range cg.List {
		lines[i] = c.Text
	}

	return strings.Join(lines, "\n")
}
