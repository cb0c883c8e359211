// Package reader ties the parser, the cache and the doc index together and
// hands out annotation bags per declaration.
package reader

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docnote/internal/analyze"
	"docnote/internal/bag"
	"docnote/internal/cache"
	"docnote/internal/logging"
	"docnote/internal/parser"
)

// ErrUnknownDecl is returned when a requested declaration is not indexed.
var ErrUnknownDecl = errors.New("unknown declaration")

// Reader reads annotations of raw doc text and of indexed declarations.
type Reader struct {
	parser *parser.Parser
	store  cache.Store
	cached *cache.Gateway
	log    *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithCache routes parsing through s.
func WithCache(s cache.Store) Option {
	return func(r *Reader) {
		r.store = s
	}
}

// WithLogger sets the logger used by the reader and its cache gateway.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		r.log = l
	}
}

// New creates a Reader over p. A nil parser means the built-in tags only.
func New(p *parser.Parser, opts ...Option) *Reader {
	if p == nil {
		p = parser.New(nil)
	}

	r := &Reader{parser: p}
	for _, opt := range opts {
		opt(r)
	}

	r.log = logging.OrNop(r.log)
	r.SetCache(r.store)

	return r
}

// NewFromDefaults creates a Reader with the built-in tags and an in-memory
// cache.
func NewFromDefaults() *Reader {
	return New(parser.New(nil), WithCache(cache.NewMemoryStore()))
}

// Parser returns the underlying parser.
func (r *Reader) Parser() *parser.Parser {
	return r.parser
}

// SetCache replaces the cache store. A nil store disables caching.
func (r *Reader) SetCache(s cache.Store) {
	r.cached = nil

	if s != nil {
		r.cached = cache.NewGateway(r.parser, s, cache.WithLogger(r.log))
	}
}

// Cache returns the cache store, or nil when caching is disabled.
func (r *Reader) Cache() cache.Store {
	if r.cached == nil {
		return nil
	}

	return r.cached.Store()
}

// Annotations parses raw doc text into a bag.
func (r *Reader) Annotations(raw string) (*bag.Bag, error) {
	var (
		m   *bag.Map
		err error
	)

	if r.cached != nil {
		m, err = r.cached.Parse(raw)
	} else {
		m, err = r.parser.Parse(raw)
	}

	if err != nil {
		return nil, err
	}

	return bag.New(m), nil
}

// DeclAnnotations parses the doc comment of d.
func (r *Reader) DeclAnnotations(d *analyze.Decl) (*bag.Bag, error) {
	b, err := r.Annotations(d.Doc)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", d.Kind, d.ID, err)
	}

	r.log.Debug("read annotations",
		zap.Stringer("decl", d.ID),
		zap.Stringer("kind", d.Kind),
		zap.Int("count", b.Len()))

	return b, nil
}

func (r *Reader) lookup(d *analyze.Decl, kind analyze.DeclKind, id analyze.DeclID) (*bag.Bag, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownDecl, kind, id)
	}

	return r.DeclAnnotations(d)
}

// TypeAnnotations returns the annotations of type pkg.name.
func (r *Reader) TypeAnnotations(x *analyze.DocIndex, pkg, name string) (*bag.Bag, error) {
	return r.lookup(x.Type(pkg, name), analyze.DeclType, analyze.DeclID{PkgPath: pkg, Name: name})
}

// FuncAnnotations returns the annotations of function pkg.name.
func (r *Reader) FuncAnnotations(x *analyze.DocIndex, pkg, name string) (*bag.Bag, error) {
	return r.lookup(x.Func(pkg, name), analyze.DeclFunc, analyze.DeclID{PkgPath: pkg, Name: name})
}

// MethodAnnotations returns the annotations of method recv.name.
func (r *Reader) MethodAnnotations(x *analyze.DocIndex, pkg, recv, name string) (*bag.Bag, error) {
	return r.lookup(x.Method(pkg, recv, name), analyze.DeclMethod, analyze.DeclID{PkgPath: pkg, Owner: recv, Name: name})
}

// FieldAnnotations returns the annotations of struct field typ.name.
func (r *Reader) FieldAnnotations(x *analyze.DocIndex, pkg, typ, name string) (*bag.Bag, error) {
	return r.lookup(x.Field(pkg, typ, name), analyze.DeclField, analyze.DeclID{PkgPath: pkg, Owner: typ, Name: name})
}

// ConstAnnotations returns the annotations of constant pkg.name.
func (r *Reader) ConstAnnotations(x *analyze.DocIndex, pkg, name string) (*bag.Bag, error) {
	return r.lookup(x.Const(pkg, name), analyze.DeclConst, analyze.DeclID{PkgPath: pkg, Name: name})
}

// VarAnnotations returns the annotations of variable pkg.name.
func (r *Reader) VarAnnotations(x *analyze.DocIndex, pkg, name string) (*bag.Bag, error) {
	return r.lookup(x.Var(pkg, name), analyze.DeclVar, analyze.DeclID{PkgPath: pkg, Name: name})
}
