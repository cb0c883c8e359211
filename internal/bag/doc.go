// Package bag provides the ordered annotation map produced by the parser
// and the Bag container consumers query.
//
// Names are flat strings; a dotted name such as "val.max" is only treated
// as hierarchical by UseNamespace:
//
//	b.UseNamespace("val").Get("max")
//	b.UseNamespace("path.").UseNamespace("to.")  // same as UseNamespace("path.to.")
//
// Transforms copy, so a derived bag can be mutated freely without
// affecting its source.
package bag
