package bag

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"docnote/internal/value"
)

// Map is an insertion-ordered mapping from annotation name to its value
// slot. A slot holds a single value, or a KindList value once the name
// has been seen more than once.
type Map struct {
	keys   []string
	values map[string]value.Value
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]value.Value)}
}

// Len returns the number of names.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get returns the slot stored under name.
func (m *Map) Get(name string) (value.Value, bool) {
	if m == nil {
		return value.Value{}, false
	}

	v, ok := m.values[name]

	return v, ok
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Set stores v under name, replacing any previous slot. New names are
// appended to the iteration order; existing names keep their position.
func (m *Map) Set(name string, v value.Value) {
	if m.values == nil {
		m.values = make(map[string]value.Value)
	}

	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}

	m.values[name] = v
}

// Append adds an occurrence of name. The first occurrence is stored as-is,
// the second promotes the slot to a list and later ones extend it.
func (m *Map) Append(name string, v value.Value) {
	prev, ok := m.Get(name)
	if !ok {
		m.Set(name, v)
		return
	}

	m.values[name] = prev.Append(v)
}

// Delete removes name.
func (m *Map) Delete(name string) {
	if _, ok := m.values[name]; !ok {
		return
	}

	delete(m.values, name)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == name })
}

// Keys returns the names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, value.Value] {
	return func(yield func(string, value.Value) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of m. Values are immutable, so copying the slots is
// enough to make the copy independent.
func (m *Map) Clone() *Map {
	c := NewMap()
	if m == nil {
		return c
	}

	c.keys = slices.Clone(m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}

	return c
}

// Equal reports whether both maps hold the same names, in the same order,
// with equal values.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}

	for i, k := range m.Keys() {
		if o.keys[i] != k || !m.values[k].Equal(o.values[k]) {
			return false
		}
	}

	return true
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
