package registry

import (
	"encoding/json"
	"regexp"
	"strconv"

	"docnote/internal/value"
)

// Built-in type tags.
const (
	TagString   = "string"
	TagInteger  = "integer"
	TagFloat    = "float"
	TagJSON     = "json"
	TagConcrete = "->"
)

var (
	intPattern   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	floatPattern = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// Type turns the raw text following a type tag into a value. name is the
// annotation the value belongs to.
type Type interface {
	Parse(raw, name string) (value.Value, error)
}

// TypeFunc adapts a function to the Type interface.
type TypeFunc func(raw, name string) (value.Value, error)

// Parse calls f(raw, name).
func (f TypeFunc) Parse(raw, name string) (value.Value, error) {
	return f(raw, name)
}

// StringType keeps the raw text as a string.
type StringType struct{}

// Parse implements Type.
func (StringType) Parse(raw, _ string) (value.Value, error) {
	return value.String(raw), nil
}

// IntegerType accepts signed decimal integers.
type IntegerType struct{}

// Parse implements Type.
func (IntegerType) Parse(raw, name string) (value.Value, error) {
	if !intPattern.MatchString(raw) {
		return value.Value{}, parseErr(name, TagInteger, raw, "raw value must be integer", nil)
	}

	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return value.Value{}, parseErr(name, TagInteger, raw, "integer out of range", err)
	}

	return value.Int(i), nil
}

// FloatType accepts signed decimal floats, including a leading or trailing
// decimal point.
type FloatType struct{}

// Parse implements Type.
func (FloatType) Parse(raw, name string) (value.Value, error) {
	if !floatPattern.MatchString(raw) {
		return value.Value{}, parseErr(name, TagFloat, raw, "raw value must be float", nil)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return value.Value{}, parseErr(name, TagFloat, raw, "float out of range", err)
	}

	return value.Float(f), nil
}

// JSONType accepts any JSON value. Scalars decode to scalar values.
type JSONType struct{}

// Parse implements Type.
func (JSONType) Parse(raw, name string) (value.Value, error) {
	n, err := value.ParseJSON(raw)
	if err != nil {
		return value.Value{}, parseErr(name, TagJSON, raw, "raw value must be a valid JSON string", err)
	}

	return value.FromNode(n), nil
}

// dynamic applies the untagged resolution rules to a trimmed, non-empty token.
func (r *Registry) dynamic(raw, name string) (value.Value, error) {
	switch raw {
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}

	if quoted(raw, '"') {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return value.String(s), nil
		}
	}

	if quoted(raw, '\'') {
		return value.String(raw[1 : len(raw)-1]), nil
	}

	if intPattern.MatchString(raw) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return value.Int(i), nil
		}
	}

	if floatPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return value.Float(f), nil
		}
	}

	if raw[0] == '[' || raw[0] == '{' {
		if n, err := value.ParseJSON(raw); err == nil {
			return value.JSON(n), nil
		}
	}

	if v, ok, err := r.dynamicConstruction(raw, name); ok {
		return v, err
	}

	return value.String(raw), nil
}

func quoted(s string, q byte) bool {
	return len(s) >= 2 && s[0] == q && s[len(s)-1] == q
}
