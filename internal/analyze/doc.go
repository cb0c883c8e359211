// Package analyze provides package loading and doc comment extraction.
//
// It uses golang.org/x/tools/go/packages to parse Go packages and
// indexes every type, function, method, struct field, constant and
// variable together with its raw doc comment.
//
// Key types:
//   - DeclID: package import path + owner + name
//   - Decl: declaration kind, raw doc text and position
//   - DocIndex: lookups by kind (Type, Func, Method, Field, Const, Var)
package analyze
