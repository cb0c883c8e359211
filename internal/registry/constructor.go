package registry

import (
	"errors"
	"fmt"
	"strings"

	"docnote/internal/value"
)

// constructKey names the constructor arguments in a concrete prototype object.
const constructKey = "__construct"

// Constructor builds a Go value from positional arguments.
type Constructor interface {
	Construct(args []value.Value) (any, error)
}

// Setter is implemented by constructors that accept post-construction calls.
type Setter interface {
	Set(target any, method string, args []value.Value) error
}

// ConstructorFunc adapts a function to the Constructor interface.
type ConstructorFunc func(args []value.Value) (any, error)

// Construct calls f(args).
func (f ConstructorFunc) Construct(args []value.Value) (any, error) {
	return f(args)
}

// Builder pairs a construction function with named setters.
type Builder struct {
	New     func(args []value.Value) (any, error)
	Setters map[string]func(target any, args []value.Value) error
}

// Construct implements Constructor.
func (b Builder) Construct(args []value.Value) (any, error) {
	if b.New == nil {
		return nil, errors.New("builder has no construction function")
	}

	return b.New(args)
}

// Set implements Setter.
func (b Builder) Set(target any, method string, args []value.Value) error {
	fn, ok := b.Setters[method]
	if !ok {
		return fmt.Errorf("unknown setter %q", method)
	}

	return fn(target, args)
}

// call is one post-construction setter invocation.
type call struct {
	method string
	args   []value.Value
}

// build constructs id and applies the setter calls in order.
func (r *Registry) build(name, id, token string, args []value.Value, calls []call) (value.Value, error) {
	ctor, ok := r.ctors[id]
	if !ok {
		return value.Value{}, parseErr(name, id, token, "no constructor registered for "+id, nil)
	}

	obj, err := ctor.Construct(args)
	if err != nil {
		return value.Value{}, parseErr(name, id, token, "construction failed", err)
	}

	if len(calls) == 0 {
		return value.Constructed(id, obj), nil
	}

	setter, ok := ctor.(Setter)
	if !ok {
		return value.Value{}, parseErr(name, id, token, id+" does not accept setter calls", nil)
	}

	for _, c := range calls {
		if err := setter.Set(obj, c.method, c.args); err != nil {
			return value.Value{}, parseErr(name, id, token, "setter "+c.method+" failed", err)
		}
	}

	return value.Constructed(id, obj), nil
}

// concreteType handles "@Type -> prototype" where the annotation name is the
// constructor identifier.
type concreteType struct {
	reg *Registry
}

// Parse implements Type.
func (t *concreteType) Parse(raw, name string) (value.Value, error) {
	if _, ok := t.reg.ctors[name]; !ok {
		return value.Value{}, parseErr(name, TagConcrete, raw,
			"concrete annotation expects "+name+" to be a registered constructor", nil)
	}

	proto, err := value.ParseJSON(raw)
	if err != nil {
		return value.Value{}, parseErr(name, TagConcrete, raw, "prototype must be valid JSON", err)
	}

	switch proto.Kind {
	case value.NodeArray:
		return t.reg.build(name, name, raw, nodeArgs(proto), nil)
	case value.NodeObject:
		var args []value.Value
		var calls []call
		for _, f := range proto.Fields {
			if f.Value.Kind != value.NodeArray {
				return value.Value{}, parseErr(name, TagConcrete, raw,
					"only arrays should be used to configure concrete annotation method calls", nil)
			}

			if f.Key == constructKey {
				args = nodeArgs(f.Value)
				continue
			}

			calls = append(calls, call{method: f.Key, args: nodeArgs(f.Value)})
		}

		return t.reg.build(name, name, raw, args, calls)
	default:
		return value.Value{}, parseErr(name, TagConcrete, raw, "prototype must be a JSON object or array", nil)
	}
}

func nodeArgs(n *value.Node) []value.Value {
	args := make([]value.Value, len(n.Elems))
	for i, e := range n.Elems {
		args[i] = value.FromNode(e)
	}

	return args
}

// dynamicConstruction recognizes the call syntax. ok is false when raw is
// not a call on a registered constructor, in which case the caller falls
// back to a string.
//
//	(1, 2) Label("x")          on an annotation named after a constructor
//	geo.Point(1, 2).Label("x") anywhere
func (r *Registry) dynamicConstruction(raw, name string) (value.Value, bool, error) {
	id, rest := name, raw
	if raw[0] != '(' {
		ident, tail, found := strings.Cut(raw, "(")
		if !found || !isIdent(ident, true) {
			return value.Value{}, false, nil
		}

		id, rest = ident, "("+tail
	}

	if _, ok := r.ctors[id]; !ok {
		return value.Value{}, false, nil
	}

	args, calls, err := parseCalls(rest)
	if err != nil {
		return value.Value{}, true, parseErr(name, id, raw, "malformed construction", err)
	}

	v, err := r.build(name, id, raw, args, calls)

	return v, true, err
}

// parseCalls parses "(args) Setter(args) .Setter(args)...".
func parseCalls(s string) ([]value.Value, []call, error) {
	inner, rest, err := scanParens(s)
	if err != nil {
		return nil, nil, err
	}

	args, err := parseArgs(inner)
	if err != nil {
		return nil, nil, err
	}

	var calls []call
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		rest = strings.TrimPrefix(rest, ".")
		if rest == "" {
			return args, calls, nil
		}

		method, tail, found := strings.Cut(rest, "(")
		if !found || !isIdent(method, false) {
			return nil, nil, fmt.Errorf("unexpected text %q after construction", rest)
		}

		inner, rest, err = scanParens("(" + tail)
		if err != nil {
			return nil, nil, err
		}

		margs, err := parseArgs(inner)
		if err != nil {
			return nil, nil, err
		}

		calls = append(calls, call{method: method, args: margs})
	}
}

// scanParens splits "(inner)rest" honoring nesting and JSON string literals.
func scanParens(s string) (string, string, error) {
	if s == "" || s[0] != '(' {
		return "", "", errors.New("expected '('")
	}

	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				if c != ')' {
					return "", "", errors.New("mismatched brackets")
				}

				return s[1:i], s[i+1:], nil
			}
		}
	}

	return "", "", errors.New("unterminated argument list")
}

func parseArgs(inner string) ([]value.Value, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}

	n, err := value.ParseJSON("[" + inner + "]")
	if err != nil {
		return nil, fmt.Errorf("arguments must be JSON values: %w", err)
	}

	return nodeArgs(n), nil
}

// isIdent reports whether s is an identifier. Qualified identifiers may
// contain '.', '/' and '\' separators.
func isIdent(s string, qualified bool) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		case qualified && i > 0 && (c == '.' || c == '/' || c == '\\'):
		default:
			return false
		}
	}

	return true
}
