package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docnote/internal/cache"
	"docnote/internal/registry"
	"docnote/internal/value"
)

func TestParseYAML(t *testing.T) {
	c, err := ParseYAML([]byte(`
cache:
  backend: file
  dir: /tmp/docnote
log:
  level: debug
output:
  format: yaml
aliases:
  int: integer
  str: string
`))
	require.NoError(t, err)

	assert.Equal(t, BackendFile, c.Cache.Backend)
	assert.Equal(t, "/tmp/docnote", c.Cache.Dir)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, FormatYAML, c.Output.Format)
	assert.Equal(t, map[string]string{"int": "integer", "str": "string"}, c.Aliases)
	assert.NoError(t, c.Validate())
}

func TestParseTOML(t *testing.T) {
	c, err := ParseTOML([]byte(`
[cache]
backend = "shared"

[output]
format = "table"

[aliases]
number = "float"
`))
	require.NoError(t, err)

	assert.Equal(t, BackendShared, c.Cache.Backend)
	assert.Equal(t, "info", c.Log.Level, "defaults apply to missing sections")
	assert.Equal(t, FormatTable, c.Output.Format)
	assert.Equal(t, "float", c.Aliases["number"])
	assert.NoError(t, c.Validate())
}

func TestParseTOML_UnknownKey(t *testing.T) {
	_, err := ParseTOML([]byte("[cache]\nbackend = \"memory\"\nsize = 3\n"))
	assert.ErrorContains(t, err, "cache.size")
}

func TestParse_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("cache: [oops"))
	assert.Error(t, err)

	_, err = ParseTOML([]byte("[cache"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, BackendMemory, c.Cache.Backend)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, FormatJSON, c.Output.Format)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   []string
	}{
		{
			name:   "unknown backend",
			modify: func(c *Config) { c.Cache.Backend = "redis" },
			want:   []string{"cache.backend"},
		},
		{
			name:   "file backend without dir",
			modify: func(c *Config) { c.Cache.Backend = BackendFile },
			want:   []string{"cache.dir"},
		},
		{
			name:   "bad level and format",
			modify: func(c *Config) { c.Log.Level = "loud"; c.Output.Format = "xml" },
			want:   []string{"log.level", "output.format"},
		},
		{
			name:   "alias to unknown tag",
			modify: func(c *Config) { c.Aliases = map[string]string{"i": "int64"} },
			want:   []string{"aliases.i"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)

			err := c.Validate()
			require.Error(t, err)

			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "docnote.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("output:\n  format: table\n"), 0o644))

	c, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, FormatTable, c.Output.Format)

	tomlPath := filepath.Join(dir, "docnote.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[log]\nlevel = \"warn\"\n"), 0o644))

	c, err = LoadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level)

	_, err = LoadFile(filepath.Join(dir, "docnote.ini"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	c, path, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), c)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "docnote.toml"), []byte("[cache]\nbackend = \"none\"\n"), 0o644))

	c, path, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docnote.toml"), path)
	assert.Equal(t, BackendNone, c.Cache.Backend)
}

func TestRegistry(t *testing.T) {
	c := Default()
	c.Aliases = map[string]string{"int": registry.TagInteger}

	reg, err := c.Registry()
	require.NoError(t, err)

	v, err := reg.Resolve("int 42", "n")
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), v)

	c.Aliases = map[string]string{"x": "nope"}
	_, err = c.Registry()
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	c := Default()

	s, err := c.NewStore(nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStore{}, s)

	c.Cache.Backend = BackendShared
	s, err = c.NewStore(nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.SharedStore{}, s)

	c.Cache.Backend = BackendNone
	s, err = c.NewStore(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	c.Cache.Backend = BackendFile
	c.Cache.Dir = t.TempDir()
	s, err = c.NewStore(nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.FileStore{}, s)

	c.Cache.Dir = filepath.Join(c.Cache.Dir, "missing")
	_, err = c.NewStore(nil)

	var ce *cache.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}
