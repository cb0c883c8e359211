package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docnote/internal/registry"
)

const storeDir = "../../store"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "")

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

const productDoc = `/**
 * Product is for sale.
 *
 * @table products
 * @cache.ttl integer 300
 * @cache.tags ["catalog", "public"]
 */`

func TestParse_JSON(t *testing.T) {
	out, err := run(t, productDoc, "parse", "-o", "json")
	require.NoError(t, err)

	assert.JSONEq(t, `{"table":"products","cache.ttl":300,"cache.tags":["catalog","public"]}`, out)
}

func TestParse_NamespaceYAML(t *testing.T) {
	out, err := run(t, productDoc, "parse", "-o", "yaml", "--namespace", "cache")
	require.NoError(t, err)

	assert.Equal(t, "ttl: 300\ntags: [catalog, public]\n", out)
}

func TestParse_Table(t *testing.T) {
	out, err := run(t, productDoc, "parse", "-o", "table", "--grep", `^table$`)
	require.NoError(t, err)

	assert.Contains(t, out, "@table")
	assert.Contains(t, out, "products")
	assert.NotContains(t, out, "cache.ttl")
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("// @enabled\n// @limit integer 3\n"), 0o600))

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)

	assert.JSONEq(t, `{"enabled":true,"limit":3}`, out)
}

func TestParse_StrictError(t *testing.T) {
	_, err := run(t, "// @limit integer ten", "parse")
	require.Error(t, err)

	var pe *registry.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "limit", pe.Name)
	assert.Equal(t, "integer", pe.Tag)
}

func TestParse_InvalidGrep(t *testing.T) {
	_, err := run(t, productDoc, "parse", "--grep", "(")
	assert.ErrorContains(t, err, "invalid --grep pattern")
}

func TestTags(t *testing.T) {
	out, err := run(t, "", "tags")
	require.NoError(t, err)

	for _, tag := range []string{"integer", "float", "string", "json"} {
		assert.Contains(t, out, tag)
	}
}

func TestTags_Aliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docnote.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  int: integer\n"), 0o600))

	out, err := run(t, "", "--config", path, "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "alias of integer")

	out, err = run(t, "// @limit int 7", "--config", path, "parse")
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":7}`, out)
}

func TestConfig_Overrides(t *testing.T) {
	out, err := run(t, "", "--cache", "none", "-o", "yaml", "config")
	require.NoError(t, err)

	assert.Contains(t, out, "backend: none")
	assert.Contains(t, out, "format: yaml")
}

func TestConfig_Invalid(t *testing.T) {
	_, err := run(t, "", "--cache", "bogus", "tags")
	assert.ErrorContains(t, err, "cache.backend")
}

func TestCacheClear(t *testing.T) {
	out, err := run(t, "", "--cache", "none", "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "cache is disabled\n", out)

	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "docnote.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n"), 0o600))

	_, err = run(t, productDoc, "--config", path, "parse")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out, err = run(t, "", "--config", path, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "file cache cleared\n", out)

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDump_Store(t *testing.T) {
	out, err := run(t, "", "-C", storeDir, "dump", "--grep", `^table$`, ".")
	require.NoError(t, err)

	var entries []struct {
		Decl        string         `json:"decl"`
		Kind        string         `json:"kind"`
		Location    string         `json:"location"`
		Annotations map[string]any `json:"annotations"`
		Error       string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))

	byDecl := make(map[string]int)
	for i, e := range entries {
		byDecl[e.Decl] = i
	}

	require.Contains(t, byDecl, "type Product")
	product := entries[byDecl["type Product"]]
	assert.Equal(t, "type", product.Kind)
	assert.Equal(t, map[string]any{"table": "products"}, product.Annotations)
	assert.True(t, strings.HasPrefix(product.Location, "types.go:"))

	require.Contains(t, byDecl, "type Customer")
	assert.Equal(t, map[string]any{"table": "customers"}, entries[byDecl["type Customer"]].Annotations)

	require.Contains(t, byDecl, "type Broken")
	assert.Contains(t, entries[byDecl["type Broken"]].Error, "raw value must be integer")

	assert.NotContains(t, byDecl, "type OrderItem")
}

func TestList_Store(t *testing.T) {
	out, err := run(t, "", "-C", storeDir, "list", "--kind", "field", ".")
	require.NoError(t, err)

	assert.Contains(t, out, "field Product.ID")
	assert.Contains(t, out, "@column @primary")
	assert.Contains(t, out, "field audit.UpdatedAt")
	assert.NotContains(t, out, "type Product")
}

func TestCheck_Store(t *testing.T) {
	out, err := run(t, "", "-C", storeDir, "check", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s)")

	assert.Contains(t, out, "[type Broken] @limit: [invalid-value]")
	assert.Contains(t, out, "[type Misspelled] @limit: [unknown-tag]")
	assert.Contains(t, out, "did you mean integer?")
	assert.Contains(t, out, "checked")

	quiet, err := run(t, "", "-C", storeDir, "check", "-q", ".")
	require.Error(t, err)
	assert.NotContains(t, quiet, "checked")
}
