package analyze

import (
	"go/token"
	"slices"
	"strings"

	"docnote/internal/common"
)

// DeclID uniquely identifies a documented declaration.
type DeclID struct {
	PkgPath string // e.g., "docnote/store"
	Owner   string // receiver or struct type for methods and fields, empty otherwise
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the DeclID.
func (d DeclID) String() string {
	name := d.Name
	if d.Owner != "" {
		name = d.Owner + "." + d.Name
	}

	if d.PkgPath == "" {
		return name
	}

	return d.PkgPath + "." + name
}

// DeclKind represents the kind of a declaration.
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclType             // type declaration
	DeclFunc             // package-level function
	DeclMethod           // method, Owner is the receiver base type
	DeclField            // struct field, Owner is the struct type
	DeclConst            // constant
	DeclVar              // package-level variable
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclType:
		return "type"
	case DeclFunc:
		return "func"
	case DeclMethod:
		return "method"
	case DeclField:
		return "field"
	case DeclConst:
		return "const"
	case DeclVar:
		return "var"
	default:
		return common.UnknownStr
	}
}

// Decl is a declaration together with its raw doc comment text.
type Decl struct {
	ID       DeclID
	Kind     DeclKind
	Doc      string         // comment text including the "//" or "/* */" markers, lines joined by "\n"
	Pos      token.Position // position of the declared name
	Exported bool
}

// HasDoc reports whether the declaration carries a doc comment.
func (d *Decl) HasDoc() bool {
	return strings.TrimSpace(d.Doc) != ""
}

// DocIndex holds the documented declarations of loaded packages.
type DocIndex struct {
	// Decls maps DeclID to Decl for every declaration.
	Decls map[DeclID]*Decl
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewDocIndex creates a new empty DocIndex.
func NewDocIndex() *DocIndex {
	return &DocIndex{
		Decls:    make(map[DeclID]*Decl),
		Packages: make(map[string]*PackageInfo),
	}
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Decls []DeclID // Declarations in source order
}

// Add records d, replacing a previous declaration with the same ID.
func (x *DocIndex) Add(d *Decl) {
	pkg, ok := x.Packages[d.ID.PkgPath]
	if !ok {
		pkg = &PackageInfo{Path: d.ID.PkgPath, Name: common.PkgAlias(d.ID.PkgPath)}
		x.Packages[d.ID.PkgPath] = pkg
	}

	if _, exists := x.Decls[d.ID]; !exists {
		pkg.Decls = append(pkg.Decls, d.ID)
	}

	x.Decls[d.ID] = d
}

// Get returns the declaration with the given ID and kind, or nil if not found.
func (x *DocIndex) Get(id DeclID, kind DeclKind) *Decl {
	d := x.Decls[id]
	if d == nil || d.Kind != kind {
		return nil
	}

	return d
}

// Type returns the type declaration pkg.name.
func (x *DocIndex) Type(pkg, name string) *Decl {
	return x.Get(DeclID{PkgPath: pkg, Name: name}, DeclType)
}

// Func returns the function declaration pkg.name.
func (x *DocIndex) Func(pkg, name string) *Decl {
	return x.Get(DeclID{PkgPath: pkg, Name: name}, DeclFunc)
}

// Method returns the method recv.name of package pkg. recv is the receiver
// base type name without pointer or type parameters.
func (x *DocIndex) Method(pkg, recv, name string) *Decl {
	return x.Get(DeclID{PkgPath: pkg, Owner: recv, Name: name}, DeclMethod)
}

// Field returns the field typ.name of package pkg.
func (x *DocIndex) Field(pkg, typ, name string) *Decl {
	return x.Get(DeclID{PkgPath: pkg, Owner: typ, Name: name}, DeclField)
}

// Const returns the constant pkg.name.
func (x *DocIndex) Const(pkg, name string) *Decl {
	return x.Get(DeclID{PkgPath: pkg, Name: name}, DeclConst)
}

// Var returns the variable pkg.name.
func (x *DocIndex) Var(pkg, name string) *Decl {
	return x.Get(DeclID{PkgPath: pkg, Name: name}, DeclVar)
}

// All returns every declaration ordered by package path, then source order.
func (x *DocIndex) All() []*Decl {
	paths := make([]string, 0, len(x.Packages))
	for p := range x.Packages {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	var out []*Decl
	for _, p := range paths {
		for _, id := range x.Packages[p].Decls {
			out = append(out, x.Decls[id])
		}
	}

	return out
}
