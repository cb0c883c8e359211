// Package registry resolves raw annotation value tokens into typed values.
//
// A Registry maps type tags to Type implementations. A value whose text
// starts with a registered tag followed by whitespace is handed to that
// type ("@value integer 45"); everything else goes through the dynamic
// rules (literals, quoted strings, numbers, JSON, construction calls).
//
// # Built-in tags
//
//	string   text kept as-is
//	integer  signed decimal integer
//	float    signed decimal float (".45" and "45." are accepted)
//	json     any JSON value
//	->       concrete construction from a JSON prototype
//
// Unknown tags are not errors: "@value footype text" is the string
// "footype text". Malformed input for a known tag fails with *ParseError.
//
// # Constructors
//
// Constructors are registered by type identifier and are reached in three
// ways:
//
//	@geo.Point -> [1, 2]
//	@geo.Point -> {"__construct": [1, 2], "Label": ["origin"]}
//	@geo.Point(1, 2) Label("origin")
//	@shape geo.Point(1, 2)
//
// Arguments are JSON values. A Constructor that also implements Setter
// receives the post-construction calls.
package registry
