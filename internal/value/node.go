package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"docnote/internal/common"
)

// NodeKind represents the kind of a JSON tree node.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeBool
	NodeNumber
	NodeString
	NodeArray
	NodeObject
)

// String returns a human-readable representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case NodeNull:
		return "null"
	case NodeBool:
		return "bool"
	case NodeNumber:
		return "number"
	case NodeString:
		return "string"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	default:
		return common.UnknownStr
	}
}

// Node is one node of a decoded JSON document. Object fields keep their
// source order.
type Node struct {
	Kind   NodeKind
	Bool   bool
	Number json.Number
	Str    string
	Elems  []*Node
	Fields []Field
}

// Field is a single key/value pair of an object node.
type Field struct {
	Key   string
	Value *Node
}

// ParseJSON decodes exactly one JSON value from data.
func ParseJSON(data string) (*Node, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	n, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}

	return n, nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, unexpectedEOF(err)
	}

	switch t := tok.(type) {
	case nil:
		return &Node{Kind: NodeNull}, nil
	case bool:
		return &Node{Kind: NodeBool, Bool: t}, nil
	case json.Number:
		return &Node{Kind: NodeNumber, Number: t}, nil
	case string:
		return &Node{Kind: NodeString, Str: t}, nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
	}

	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: NodeArray, Elems: []*Node{}}
	for dec.More() {
		elem, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}

		n.Elems = append(n.Elems, elem)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, unexpectedEOF(err)
	}

	return n, nil
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: NodeObject, Fields: []Field{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}

		val, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}

		n.set(key, val)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, unexpectedEOF(err)
	}

	return n, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}

// set replaces an existing field in place or appends a new one.
func (n *Node) set(key string, val *Node) {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			n.Fields[i].Value = val
			return
		}
	}

	n.Fields = append(n.Fields, Field{Key: key, Value: val})
}

// Get returns the value of an object field.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != NodeObject {
		return nil, false
	}

	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Clone returns a deep copy of the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{Kind: n.Kind, Bool: n.Bool, Number: n.Number, Str: n.Str}

	if n.Elems != nil {
		c.Elems = make([]*Node, len(n.Elems))
		for i, e := range n.Elems {
			c.Elems[i] = e.Clone()
		}
	}

	if n.Fields != nil {
		c.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			c.Fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
		}
	}

	return c
}

// Len returns the number of elements of an array or fields of an object.
func (n *Node) Len() int {
	switch n.Kind {
	case NodeArray:
		return len(n.Elems)
	case NodeObject:
		return len(n.Fields)
	default:
		return 0
	}
}

// Interface converts the node to plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case NodeBool:
		return n.Bool
	case NodeNumber:
		if i, err := n.Number.Int64(); err == nil {
			return i
		}

		f, _ := n.Number.Float64()
		return f
	case NodeString:
		return n.Str
	case NodeArray:
		out := make([]any, len(n.Elems))
		for i, e := range n.Elems {
			out[i] = e.Interface()
		}

		return out
	case NodeObject:
		out := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			out[f.Key] = f.Value.Interface()
		}

		return out
	default:
		return nil
	}
}

// Equal reports whether two trees are structurally equal. Numbers compare by
// numeric value and object fields compare regardless of order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Kind != o.Kind {
		return false
	}

	switch n.Kind {
	case NodeNull:
		return true
	case NodeBool:
		return n.Bool == o.Bool
	case NodeNumber:
		return numberEqual(n.Number, o.Number)
	case NodeString:
		return n.Str == o.Str
	case NodeArray:
		if len(n.Elems) != len(o.Elems) {
			return false
		}

		for i := range n.Elems {
			if !n.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}

		return true
	case NodeObject:
		if len(n.Fields) != len(o.Fields) {
			return false
		}

		for _, f := range n.Fields {
			ov, ok := o.Get(f.Key)
			if !ok || !f.Value.Equal(ov) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func numberEqual(a, b json.Number) bool {
	if a == b {
		return true
	}

	ai, aerr := a.Int64()
	bi, berr := b.Int64()
	if aerr == nil && berr == nil {
		return ai == bi
	}

	af, aerr := a.Float64()
	bf, berr := b.Float64()

	return aerr == nil && berr == nil && af == bf
}

// MarshalJSON encodes the tree, keeping object field order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case NodeNull:
		buf.WriteString("null")
	case NodeBool:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case NodeNumber:
		buf.WriteString(n.Number.String())
	case NodeString:
		b, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}

		buf.Write(b)
	case NodeArray:
		buf.WriteByte('[')
		for i, e := range n.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := e.encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case NodeObject:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}

			k, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}

			buf.Write(k)
			buf.WriteByte(':')

			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode JSON node of kind %s", n.Kind)
	}

	return nil
}
