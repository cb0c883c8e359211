// Package lint checks the annotations of indexed declarations and reports
// problems as diagnostics.
package lint

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"docnote/internal/analyze"
	"docnote/internal/diagnostic"
	"docnote/internal/match"
	"docnote/internal/reader"
	"docnote/internal/registry"
	"docnote/internal/value"
)

// Diagnostic codes.
const (
	CodeInvalidValue = "invalid-value"
	CodeParseFailed  = "parse-failed"
	CodeUnknownTag   = "unknown-tag"
	CodeSummary      = "summary"
)

// Checker validates annotations read through a Reader.
type Checker struct {
	reader   *reader.Reader
	stringer *analyze.DeclStringer
	minScore float64
}

// NewChecker creates a Checker. base, when set, makes reported file
// positions relative to it.
func NewChecker(r *reader.Reader, base string) *Checker {
	return &Checker{
		reader:   r,
		stringer: &analyze.DeclStringer{Base: base},
		minScore: match.DefaultMinScore,
	}
}

// Check validates every documented declaration of x.
func (c *Checker) Check(x *analyze.DocIndex) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	checked := 0
	for _, d := range x.All() {
		if !d.HasDoc() {
			continue
		}

		checked++
		diags.Merge(c.CheckDecl(d))
	}

	diags.AddInfo(CodeSummary, fmt.Sprintf("checked %d documented declarations", checked), "", "")

	return diags
}

// CheckDecl validates the annotations of one declaration. A malformed
// strict-typed value is an error. A string value whose first word closely
// resembles a registered type tag is a warning.
func (c *Checker) CheckDecl(d *analyze.Decl) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	base := diagnostic.Diagnostic{
		Decl:     c.stringer.DeclString(d),
		Location: c.stringer.Location(d),
	}

	b, err := c.reader.Annotations(d.Doc)
	if err != nil {
		diag := base
		diag.Severity = diagnostic.DiagnosticError

		var pe *registry.ParseError
		if errors.As(err, &pe) {
			diag.Code = CodeInvalidValue
			diag.Annotation = pe.Name
			diag.Message = fmt.Sprintf("invalid %s value %q: %s", pe.Tag, pe.Token, pe.Msg)
		} else {
			diag.Code = CodeParseFailed
			diag.Message = err.Error()
		}

		diags.Add(diag)

		return diags
	}

	tags := c.reader.Parser().Registry().Tags()
	for name, v := range b.All() {
		for _, item := range items(v) {
			word, ok := leadingWord(item)
			if !ok {
				continue
			}

			if _, known := c.reader.Parser().Registry().Lookup(word); known {
				continue
			}

			suggestions := match.Suggest(word, tags, c.minScore, 3)
			if len(suggestions) == 0 {
				continue
			}

			diag := base
			diag.Severity = diagnostic.DiagnosticWarning
			diag.Code = CodeUnknownTag
			diag.Annotation = name
			diag.Message = fmt.Sprintf("%q is not a registered type tag, the value is kept as text", word)
			diag.Suggestions = suggestions
			diags.Add(diag)
		}
	}

	return diags
}

func items(v value.Value) []value.Value {
	if list, ok := v.AsList(); ok {
		return list
	}

	return []value.Value{v}
}

// leadingWord returns the first word of a string value that has more text
// after it, the position a type tag would take.
func leadingWord(v value.Value) (string, bool) {
	s, ok := v.AsString()
	if !ok {
		return "", false
	}

	i := strings.IndexFunc(s, unicode.IsSpace)
	if i <= 0 || strings.TrimSpace(s[i:]) == "" {
		return "", false
	}

	return s[:i], true
}
