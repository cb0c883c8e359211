package bag

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"docnote/internal/value"
)

// Separator delimits namespace segments in annotation names.
const Separator = "."

// Bag wraps the annotations of one declaration. Grep, UseNamespace and Union
// return new bags; Set and Unset mutate the bag in place. A bag never shares
// its map with another bag.
type Bag struct {
	m *Map
}

// New creates a bag holding a copy of m.
func New(m *Map) *Bag {
	return &Bag{m: m.Clone()}
}

// Empty creates a bag without annotations.
func Empty() *Bag {
	return &Bag{m: NewMap()}
}

// Get returns the value stored under name as-is, or null when absent.
func (b *Bag) Get(name string) value.Value {
	v, _ := b.m.Get(name)
	return v
}

// GetOr returns the value stored under name, or def when absent.
func (b *Bag) GetOr(name string, def value.Value) value.Value {
	if v, ok := b.m.Get(name); ok {
		return v
	}

	return def
}

// Lookup returns the value stored under name and whether it is present.
func (b *Bag) Lookup(name string) (value.Value, bool) {
	return b.m.Get(name)
}

// GetAsArray always returns a list: the stored list itself, a scalar
// wrapped in a one-element list, or an empty list when name is absent.
func (b *Bag) GetAsArray(name string) []value.Value {
	v, ok := b.m.Get(name)
	if !ok {
		return []value.Value{}
	}

	if items, ok := v.AsList(); ok {
		return items
	}

	return []value.Value{v}
}

// Has reports whether name is present.
func (b *Bag) Has(name string) bool {
	return b.m.Has(name)
}

// Set stores v under name.
func (b *Bag) Set(name string, v value.Value) {
	b.m.Set(name, v)
}

// Unset removes name.
func (b *Bag) Unset(name string) {
	b.m.Delete(name)
}

// Len returns the number of annotation names.
func (b *Bag) Len() int {
	return b.m.Len()
}

// Names returns the annotation names in insertion order.
func (b *Bag) Names() []string {
	return b.m.Keys()
}

// ToMap returns a snapshot of the annotations in insertion order.
func (b *Bag) ToMap() *Map {
	return b.m.Clone()
}

// All iterates over the annotations in insertion order. Every call starts a
// fresh iteration.
func (b *Bag) All() iter.Seq2[string, value.Value] {
	return b.m.All()
}

// Grep returns a bag with the annotations whose names match pattern.
func (b *Bag) Grep(pattern string) (*Bag, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid grep pattern %q: %w", pattern, err)
	}

	return b.GrepRegexp(re), nil
}

// GrepRegexp returns a bag with the annotations whose names match re.
func (b *Bag) GrepRegexp(re *regexp.Regexp) *Bag {
	out := Empty()
	for k, v := range b.m.All() {
		if re.MatchString(k) {
			out.m.Set(k, v)
		}
	}

	return out
}

// UseNamespace returns a bag with the annotations under prefix, with the
// prefix stripped from their names. A missing trailing separator is added,
// so "a.b" and "a.b." are equivalent. An empty prefix selects everything.
func (b *Bag) UseNamespace(prefix string) *Bag {
	if prefix == "" {
		return New(b.m)
	}

	if !strings.HasSuffix(prefix, Separator) {
		prefix += Separator
	}

	out := Empty()
	for k, v := range b.m.All() {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			out.m.Set(rest, v)
		}
	}

	return out
}

// Union returns a bag with the annotations of both bags. On a name
// collision the value of b wins. Neither operand is modified. A nil other
// is an empty bag.
func (b *Bag) Union(other *Bag) *Bag {
	out := New(b.m)
	if other == nil {
		return out
	}

	for k, v := range other.m.All() {
		if !out.m.Has(k) {
			out.m.Set(k, v)
		}
	}

	return out
}

// Equal reports whether both bags hold structurally equal annotations.
func (b *Bag) Equal(other *Bag) bool {
	return b.m.Equal(other.m)
}

// MarshalJSON encodes the bag exactly like its ToMap snapshot.
func (b *Bag) MarshalJSON() ([]byte, error) {
	return b.m.MarshalJSON()
}

// MarshalYAML encodes the bag exactly like its ToMap snapshot.
func (b *Bag) MarshalYAML() (interface{}, error) {
	return b.m.MarshalYAML()
}

// GetAs returns the plain Go value stored under name when it has type T.
// No conversion is performed.
func GetAs[T any](b *Bag, name string) (T, bool) {
	var zero T

	v, ok := b.m.Get(name)
	if !ok {
		return zero, false
	}

	t, ok := v.Interface().(T)
	if !ok {
		return zero, false
	}

	return t, true
}
