package analyze

import (
	"fmt"
	"path/filepath"
)

// DeclStringer renders declarations for reports.
type DeclStringer struct {
	// Base, when set, makes file positions relative to it.
	Base string
}

// NewDeclStringer creates a new DeclStringer.
func NewDeclStringer() *DeclStringer {
	return &DeclStringer{}
}

// ShortName returns the package-local name of a declaration.
// Examples:
//   - "Order" for a type
//   - "Order.Items" for a field
//   - "Order.Total" for a method
func (s *DeclStringer) ShortName(id DeclID) string {
	if id.Owner == "" {
		return id.Name
	}

	return id.Owner + "." + id.Name
}

// DeclString returns a Go-like signature head of a declaration.
func (s *DeclStringer) DeclString(d *Decl) string {
	if d == nil {
		return "<nil>"
	}

	switch d.Kind {
	case DeclType:
		return "type " + d.ID.Name
	case DeclFunc:
		return "func " + d.ID.Name
	case DeclMethod:
		return fmt.Sprintf("func (%s) %s", d.ID.Owner, d.ID.Name)
	case DeclField:
		return "field " + s.ShortName(d.ID)
	case DeclConst:
		return "const " + d.ID.Name
	case DeclVar:
		return "var " + d.ID.Name
	default:
		return s.ShortName(d.ID)
	}
}

// Location returns "file:line" of a declaration.
func (s *DeclStringer) Location(d *Decl) string {
	if d == nil || !d.Pos.IsValid() {
		return "-"
	}

	file := d.Pos.Filename
	if s.Base != "" {
		if rel, err := filepath.Rel(s.Base, file); err == nil {
			file = rel
		}
	}

	return fmt.Sprintf("%s:%d", file, d.Pos.Line)
}
