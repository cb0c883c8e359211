// Package value defines the typed values produced by annotation parsing.
//
// A Value is a tagged union over the kinds an annotation can carry:
//
//   - KindNull, KindBool, KindInt, KindFloat, KindString: scalar literals
//   - KindJSON: an ordered JSON tree (see Node)
//   - KindConstructed: a Go value built by a registered constructor
//   - KindList: the slot form used when an annotation name repeats
//
// Consumers switch on Kind; the zero Value is null.
package value
