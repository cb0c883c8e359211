// Package parser extracts annotations from documentation comments.
//
// A doc comment is sanitized first: block comment delimiters, leading
// asterisks and Go "//" prefixes are removed line by line. Everything above
// the first line that starts with "@" is free-form description and is
// ignored. The rest is split into markers:
//
//	@name value text
//	@flag                     // implicit true
//	@value integer 45         // strong-typed, see registry
//	@value first @value second
//
// A value runs until the next "@" that follows whitespace, so values may span
// several lines and keep their inner line breaks. An "@" inside a word, as in
// an e-mail address, is part of the value.
package parser
