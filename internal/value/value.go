package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"docnote/internal/common"
)

// Kind represents the kind of a Value.
type Kind int

const (
	KindNull        Kind = iota
	KindBool                // true / false
	KindInt                 // signed 64-bit integer
	KindFloat               // 64-bit float
	KindString              // bare or quoted string
	KindJSON                // JSON array or object tree
	KindConstructed         // value built by a registered constructor
	KindList                // repeated annotation slot
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindJSON:
		return "json"
	case KindConstructed:
		return "constructed"
	case KindList:
		return "list"
	default:
		return common.UnknownStr
	}
}

// Value is a typed annotation value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string // string payload, or the type identifier of a constructed value
	node *Node
	obj  any
	list []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// JSON wraps a JSON tree and takes ownership of n. A nil node is null.
func JSON(n *Node) Value {
	if n == nil {
		return Null()
	}

	return Value{kind: KindJSON, node: n}
}

// Constructed wraps obj, built for the type identifier id.
func Constructed(id string, obj any) Value {
	return Value{kind: KindConstructed, s: id, obj: obj}
}

// List returns a list slot holding a copy of items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value{}, items...)}
}

// FromNode converts a decoded JSON node: scalars become scalar values and
// arrays or objects stay JSON trees.
func FromNode(n *Node) Value {
	if n == nil {
		return Null()
	}

	switch n.Kind {
	case NodeBool:
		return Bool(n.Bool)
	case NodeNumber:
		if i, err := n.Number.Int64(); err == nil {
			return Int(i)
		}

		f, _ := n.Number.Float64()
		return Float(f)
	case NodeString:
		return String(n.Str)
	case NodeArray, NodeObject:
		return JSON(n)
	default:
		return Null()
	}
}

// Of converts a plain Go value. Values of unrecognized types become
// constructed values keyed by their Go type name.
func Of(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case []Value:
		return List(t...)
	case *Node:
		return FromNode(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	default:
		return Constructed(reflect.TypeOf(v).String(), v)
	}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float payload.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsJSON returns a copy of the JSON tree. Changing it leaves v untouched.
func (v Value) AsJSON() (*Node, bool) {
	if v.kind != KindJSON {
		return nil, false
	}

	return v.node.Clone(), true
}

// AsConstructed returns the type identifier and the built object.
func (v Value) AsConstructed() (string, any, bool) {
	if v.kind != KindConstructed {
		return "", nil, false
	}

	return v.s, v.obj, true
}

// AsList returns a copy of the list items.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}

	return append([]Value{}, v.list...), true
}

// Len returns the number of items of a list, and 1 for any other kind.
func (v Value) Len() int {
	if v.kind == KindList {
		return len(v.list)
	}

	return 1
}

// Append returns a list with item appended. A non-list value is promoted to
// a one-element list first.
func (v Value) Append(item Value) Value {
	if v.kind != KindList {
		return List(v, item)
	}

	out := make([]Value, len(v.list), len(v.list)+1)
	copy(out, v.list)

	return Value{kind: KindList, list: append(out, item)}
}

// Interface converts v to a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindJSON:
		return v.node.Interface()
	case KindConstructed:
		return v.obj
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}

		return out
	default:
		return nil
	}
}

// Equal reports whether v and o are structurally equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindJSON:
		return v.node.Equal(o.node)
	case KindConstructed:
		return v.s == o.s && reflect.DeepEqual(v.obj, o.obj)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// MarshalJSON encodes v the way it is exposed to consumers: scalars natively,
// JSON trees in field order, constructed values through encoding/json.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindJSON:
		return v.node.MarshalJSON()
	case KindConstructed:
		b, err := json.Marshal(v.obj)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", v.s, err)
		}

		return b, nil
	case KindList:
		return json.Marshal(v.list)
	default:
		return nil, fmt.Errorf("cannot encode value of kind %s", v.kind)
	}
}

// String returns a compact display form of v.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindJSON:
		b, err := v.node.MarshalJSON()
		if err != nil {
			return "<invalid json>"
		}

		return string(b)
	case KindConstructed:
		b, err := json.Marshal(v.obj)
		if err != nil {
			return v.s + "{?}"
		}

		return v.s + string(b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}
