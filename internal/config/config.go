// Package config loads the docnote configuration from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"docnote/internal/cache"
	"docnote/internal/logging"
	"docnote/internal/registry"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendShared = "shared"
	BackendFile   = "file"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// DefaultFiles are searched, in order, when no configuration file is given.
var DefaultFiles = []string{"docnote.yaml", "docnote.yml", "docnote.toml"}

// Config is the docnote configuration.
type Config struct {
	Cache  CacheConfig  `yaml:"cache" toml:"cache"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Output OutputConfig `yaml:"output" toml:"output"`
	// Aliases maps an extra type tag to the tag it behaves like.
	Aliases map[string]string `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
}

// CacheConfig selects the cache store.
type CacheConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	Dir     string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// OutputConfig configures command output.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads a configuration file. The format follows the extension:
// .yaml and .yml for YAML, .toml for TOML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
}

// Discover loads the first of DefaultFiles found in dir, or returns the
// defaults when none exists.
func Discover(dir string) (*Config, string, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			c, err := LoadFile(path)
			return c, path, err
		}
	}

	return Default(), "", nil
}

// ParseYAML parses YAML data into a Config.
func ParseYAML(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// ParseTOML parses TOML data into a Config.
func ParseTOML(data []byte) (*Config, error) {
	var c Config

	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	backends := []string{BackendNone, BackendMemory, BackendShared, BackendFile}
	if !slices.Contains(backends, c.Cache.Backend) {
		errs = append(errs, fmt.Errorf("cache.backend: must be one of %v, got %q", backends, c.Cache.Backend))
	}

	if c.Cache.Backend == BackendFile && c.Cache.Dir == "" {
		errs = append(errs, errors.New("cache.dir: required for the file backend"))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	formats := []string{FormatJSON, FormatYAML, FormatTable}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: must be one of %v, got %q", formats, c.Output.Format))
	}

	builtin := registry.New()
	for _, alias := range sortedKeys(c.Aliases) {
		target := c.Aliases[alias]
		if _, ok := builtin.Lookup(target); !ok {
			errs = append(errs, fmt.Errorf("aliases.%s: unknown tag %q", alias, target))
		}
	}

	return errors.Join(errs...)
}

// Registry returns a registry with the built-in tags and the configured
// aliases.
func (c *Config) Registry() (*registry.Registry, error) {
	reg := registry.New()

	for _, alias := range sortedKeys(c.Aliases) {
		if err := reg.Alias(alias, c.Aliases[alias]); err != nil {
			return nil, fmt.Errorf("aliases.%s: %w", alias, err)
		}
	}

	return reg, nil
}

// NewStore opens the configured cache store. The none backend yields a nil
// store.
func (c *Config) NewStore(log *zap.Logger) (cache.Store, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return cache.NewMemoryStore(), nil
	case BackendShared:
		return cache.NewSharedStore(nil), nil
	case BackendFile:
		s, err := cache.NewFileStore(c.Cache.Dir, cache.WithLogger(log))
		if err != nil {
			return nil, err
		}

		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
