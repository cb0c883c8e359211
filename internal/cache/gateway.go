package cache

import (
	"fmt"

	"go.uber.org/zap"

	"docnote/internal/bag"
)

// Parser is the parsing capability a Gateway memoizes.
type Parser interface {
	Parse(raw string) (*bag.Map, error)
}

// Gateway parses through a Store: each distinct text is parsed once until
// the store is cleared.
type Gateway struct {
	parser Parser
	store  Store
	log    *zap.Logger
}

// NewGateway creates a Gateway in front of p backed by s.
func NewGateway(p Parser, s Store, opts ...Option) *Gateway {
	o := buildOptions(opts)

	return &Gateway{parser: p, store: s, log: o.log}
}

// Store returns the backing store.
func (g *Gateway) Store() Store {
	return g.store
}

// Parse returns the cached map of raw, parsing and storing it on a miss.
// Parse errors are returned and nothing is stored. A failed store write is
// logged and the freshly parsed map is returned anyway.
func (g *Gateway) Parse(raw string) (*bag.Map, error) {
	key := g.store.Key(raw)

	m, ok, err := g.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("cache read %s: %w", key, err)
	}

	if ok {
		g.log.Debug("cache hit", zap.String("key", key))
		return m, nil
	}

	g.log.Debug("cache miss", zap.String("key", key))

	m, err = g.parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	if err := g.store.Set(key, m); err != nil {
		g.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}

	return m, nil
}

// Clear empties the store.
func (g *Gateway) Clear() error {
	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}

	return nil
}
