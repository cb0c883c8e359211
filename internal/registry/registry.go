package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"docnote/internal/value"
)

// Registry is the dispatch table from type tags and constructor identifiers
// to value-building strategies. It is not safe for concurrent mutation.
type Registry struct {
	types map[string]Type
	ctors map[string]Constructor
}

// New creates a Registry with the built-in tags installed.
func New() *Registry {
	r := newEmpty()
	r.types[TagString] = StringType{}
	r.types[TagInteger] = IntegerType{}
	r.types[TagFloat] = FloatType{}
	r.types[TagJSON] = JSONType{}
	r.types[TagConcrete] = &concreteType{reg: r}

	return r
}

// newEmpty creates a Registry without any tags.
func newEmpty() *Registry {
	return &Registry{
		types: make(map[string]Type),
		ctors: make(map[string]Constructor),
	}
}

// Register installs t under tag, replacing any previous handler.
func (r *Registry) Register(tag string, t Type) error {
	if tag == "" || strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return fmt.Errorf("invalid type tag %q", tag)
	}

	if t == nil {
		return errors.New("type must not be nil")
	}

	r.types[tag] = t

	return nil
}

// Unregister removes tag. Values using it resolve through the dynamic rules.
func (r *Registry) Unregister(tag string) {
	delete(r.types, tag)
}

// Alias makes alias resolve like the already registered tag.
func (r *Registry) Alias(alias, tag string) error {
	t, ok := r.types[tag]
	if !ok {
		return fmt.Errorf("cannot alias %q: tag %q is not registered", alias, tag)
	}

	return r.Register(alias, t)
}

// Lookup returns the handler registered for tag.
func (r *Registry) Lookup(tag string) (Type, bool) {
	t, ok := r.types[tag]
	return t, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	return slices.Sorted(maps.Keys(r.types))
}

// RegisterConstructor installs c for the type identifier id.
func (r *Registry) RegisterConstructor(id string, c Constructor) error {
	if !isIdent(id, true) {
		return fmt.Errorf("invalid constructor identifier %q", id)
	}

	if c == nil {
		return errors.New("constructor must not be nil")
	}

	r.ctors[id] = c

	return nil
}

// UnregisterConstructor removes the constructor for id.
func (r *Registry) UnregisterConstructor(id string) {
	delete(r.ctors, id)
}

// Constructors returns the registered constructor identifiers in sorted order.
func (r *Registry) Constructors() []string {
	return slices.Sorted(maps.Keys(r.ctors))
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		types: maps.Clone(r.types),
		ctors: maps.Clone(r.ctors),
	}

	for tag, t := range c.types {
		if _, ok := t.(*concreteType); ok {
			c.types[tag] = &concreteType{reg: c}
		}
	}

	return c
}

// Resolve turns a raw value token of the annotation name into a typed value.
// An empty token is an implicit true.
func (r *Registry) Resolve(raw, name string) (value.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return value.Bool(true), nil
	}

	if i := strings.IndexFunc(raw, unicode.IsSpace); i > 0 {
		if t, ok := r.types[raw[:i]]; ok {
			return t.Parse(strings.TrimSpace(raw[i:]), name)
		}
	}

	return r.dynamic(raw, name)
}
