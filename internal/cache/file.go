package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"docnote/internal/bag"
)

const fileExt = ".msgpack"

var fileNamer = strings.NewReplacer(":", "_", "/", "_", "\\", "_")

// FileStore keeps one msgpack file per key in a directory. Maps holding
// constructed values cannot be encoded; they are kept in memory for the
// lifetime of the store instead.
type FileStore struct {
	dir string
	log *zap.Logger

	mu       sync.Mutex
	volatile map[string]*bag.Map
}

// NewFileStore creates a store in dir. The directory must exist and be both
// readable and writable, otherwise a *ConfigurationError is returned.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := probeDir(dir); err != nil {
		return nil, &ConfigurationError{Path: dir, Err: err}
	}

	o := buildOptions(opts)

	return &FileStore{
		dir:      dir,
		log:      o.log,
		volatile: make(map[string]*bag.Map),
	}, nil
}

func probeDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if _, err := os.ReadDir(dir); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}

	return os.Remove(name)
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Key implements Store.
func (s *FileStore) Key(raw string) string {
	return ContentKey(raw)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, fileNamer.Replace(key)+fileExt)
}

// Get implements Store.
func (s *FileStore) Get(key string) (*bag.Map, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.volatile[key]; ok {
		return m.Clone(), true, nil
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	m, err := decodeMap(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", s.path(key), err)
	}

	return m, true, nil
}

// Set implements Store. The record is written to a temporary file and then
// linked into place, so a key is written at most once and readers never see
// a partial record. A map that cannot be encoded goes to memory only when
// no record for key exists on disk.
func (s *FileStore) Set(key string, m *bag.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.volatile[key]; ok {
		return nil
	}

	data, err := encodeMap(m)
	if errors.Is(err, errNotPortable) {
		if _, statErr := os.Stat(s.path(key)); statErr == nil {
			return nil
		}

		s.log.Warn("annotation map kept in memory only", zap.String("key", key), zap.Error(err))
		s.volatile[key] = m.Clone()

		return nil
	}

	if err != nil {
		return err
	}

	return s.writeOnce(s.path(key), data)
}

func (s *FileStore) writeOnce(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Link(tmp.Name(), path); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}

	return nil
}

// Clear implements Store. Only files written for KeyPrefix keys are removed.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.volatile)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	prefix := fileNamer.Replace(KeyPrefix)

	var errs []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
