package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"docnote/internal/bag"
	"docnote/internal/logging"
)

// KeyPrefix namespaces every key produced by ContentKey.
const KeyPrefix = "docnote:"

// Store is the storage contract used by a Gateway. Get and Set copy maps
// across the boundary, so callers never share a map with the store.
type Store interface {
	// Key derives the lookup key of raw text.
	Key(raw string) string
	// Get returns the map stored under key. ok is false on a miss.
	Get(key string) (m *bag.Map, ok bool, err error)
	// Set stores m under key unless the key is already present.
	Set(key string, m *bag.Map) error
	// Clear removes every key under KeyPrefix and nothing else.
	Clear() error
}

// ContentKey returns KeyPrefix followed by the hex SHA-256 digest of raw.
func ContentKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// ConfigurationError reports a store that cannot be used with the given
// setup. It is returned by constructors, never by store operations.
type ConfigurationError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cache path is not a writable/readable directory: %s", e.Path)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Option configures a Gateway or a store.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	o.log = logging.OrNop(o.log)

	return o
}
