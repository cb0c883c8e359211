package parser

import (
	"strings"

	"docnote/internal/bag"
	"docnote/internal/registry"
)

// Sigil introduces an annotation name.
const Sigil = '@'

// Parser converts raw doc comment text into an annotation map.
type Parser struct {
	reg *registry.Registry
}

// New creates a Parser resolving values through reg. A nil registry means
// the built-in tags only.
func New(reg *registry.Registry) *Parser {
	if reg == nil {
		reg = registry.New()
	}

	return &Parser{reg: reg}
}

// Registry returns the registry used to resolve values.
func (p *Parser) Registry() *registry.Registry {
	return p.reg
}

// Parse extracts the annotations of one doc comment. Repeated names become
// lists in source order. The first malformed strict-typed value aborts the
// parse with a *registry.ParseError.
func (p *Parser) Parse(raw string) (*bag.Map, error) {
	m := bag.NewMap()

	for _, e := range scan(tagsSection(sanitize(raw))) {
		v, err := p.reg.Resolve(e.value, e.name)
		if err != nil {
			return nil, err
		}

		m.Append(e.name, v)
	}

	return m, nil
}

// entry is one "@name value" occurrence before resolution.
type entry struct {
	name  string
	value string
}

// scan splits the tags section into entries. A marker is the sigil at the
// start of the section or after whitespace, immediately followed by a name.
// A value runs until the next whitespace-preceded sigil, so it may span
// lines. A sigil that does not start a name ends the previous value and its
// own text is discarded.
func scan(s string) []entry {
	var out []entry

	pos := 0
	for {
		at := nextMarker(s, pos)
		if at < 0 {
			return out
		}

		end := at + 2
		for end < len(s) && isNameChar(s[end]) {
			end++
		}

		valEnd := valueEnd(s, end)
		out = append(out, entry{
			name:  s[at+1 : end],
			value: strings.TrimSpace(s[end:valEnd]),
		})
		pos = valEnd
	}
}

func nextMarker(s string, from int) int {
	for i := from; i+1 < len(s); i++ {
		if s[i] == Sigil && (i == 0 || isSpace(s[i-1])) && isNameStart(s[i+1]) {
			return i
		}
	}

	return -1
}

func valueEnd(s string, from int) int {
	for i := from; i+1 < len(s); i++ {
		if isSpace(s[i]) && s[i+1] == Sigil {
			return i
		}
	}

	return len(s)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isNameStart(c byte) bool {
	return c == '_' || c == '-' || c == '\\' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '.' || (c >= '0' && c <= '9')
}
