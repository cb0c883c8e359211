package bag

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"docnote/internal/value"
)

type constructInjection struct {
	Foo string `json:"foo"`
	Bar string `json:"bar"`
}

var valueComparer = cmp.Comparer(func(a, b value.Value) bool { return a.Equal(b) })

// entries flattens a map for cmp-based comparisons.
func entries(m *Map) [][2]any {
	var out [][2]any
	for k, v := range m.All() {
		out = append(out, [2]any{k, v})
	}

	return out
}

func mapOf(pairs ...any) *Map {
	m := NewMap()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), value.Of(pairs[i+1]))
	}

	return m
}

func fixtureBag() *Bag {
	return New(mapOf(
		"get", true,
		"post", false,
		"put", false,
		"default", nil,
		"val.max", 16,
		"val.min", 6,
		"val.regex", `/[A-z0-9\_\-]+/`,
		"config.container", `Some\Collection`,
		"config.export", []value.Value{value.String("json"), value.String("csv")},
		"fixtures.AnnotationConstructInjection", value.Constructed("fixtures.AnnotationConstructInjection",
			&constructInjection{Foo: "foo", Bar: "bar"}),
	))
}

func TestBag_Get(t *testing.T) {
	b := fixtureBag()

	assert.Equal(t, value.Bool(false), b.Get("post"))
	assert.Equal(t, value.Bool(false), b.GetOr("post", value.Bool(true)))
	assert.True(t, b.Get("undefined").IsNull())
	assert.Equal(t, value.Bool(false), b.GetOr("undefined", value.Bool(false)))
	assert.Equal(t, value.List(), b.GetOr("undefined", value.List()))

	id, obj, ok := b.Get("fixtures.AnnotationConstructInjection").AsConstructed()
	require.True(t, ok)
	assert.Equal(t, "fixtures.AnnotationConstructInjection", id)
	assert.IsType(t, &constructInjection{}, obj)

	v, ok := b.Lookup("default")
	assert.True(t, ok)
	assert.True(t, v.IsNull())
}

func TestBag_GetAsArray(t *testing.T) {
	b := fixtureBag()

	assert.Equal(t, []value.Value{value.Bool(false)}, b.GetAsArray("put"))
	assert.Equal(t, []value.Value{value.String("json"), value.String("csv")}, b.GetAsArray("config.export"))
	assert.Equal(t, []value.Value{value.Null()}, b.GetAsArray("default"))

	missing := b.GetAsArray("foo")
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestBag_IndexedAccess(t *testing.T) {
	b := Empty()
	assert.Equal(t, 0, b.Len())

	b.Set("fruit", value.String("orange"))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, value.String("orange"), b.Get("fruit"))
	assert.True(t, b.Has("fruit"))
	assert.False(t, b.Has("cheese"))

	b.Unset("fruit")
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Get("fruit").IsNull())
}

func TestBag_Grep(t *testing.T) {
	b := fixtureBag()

	mustGrep := func(b *Bag, pattern string) *Bag {
		t.Helper()
		out, err := b.Grep(pattern)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, 3, mustGrep(b, "val").Len())
	assert.Equal(t, 2, mustGrep(b, "config").Len())
	assert.Equal(t, 0, mustGrep(b, "^$").Len())

	assert.True(t, mapOf("val.max", 16).Equal(mustGrep(b, "max$").ToMap()))
	assert.True(t, mapOf("config.export", []value.Value{value.String("json"), value.String("csv")}).
		Equal(mustGrep(b, "export$").ToMap()))
	assert.Equal(t, 1, mustGrep(b, `^fixtures\.`).Len())

	// chained grep is the intersection of both matches
	chained := mustGrep(mustGrep(b, `^(val|config)\.`), `m`)
	assert.Equal(t, []string{"val.max", "val.min"}, chained.Names())

	_, err := b.Grep("(")
	assert.Error(t, err)

	assert.Equal(t, 10, b.Len(), "grep must not modify the source bag")
}

func TestBag_UseNamespace(t *testing.T) {
	b := fixtureBag()

	v := b.UseNamespace("fixtures.").Get("AnnotationConstructInjection")
	assert.Equal(t, value.KindConstructed, v.Kind())
	assert.True(t, v.Equal(b.UseNamespace("fixtures").Get("AnnotationConstructInjection")))

	b = New(mapOf(
		"path.to.the.treasure", "cheers!",
		"path.to.the.cake", "the cake is a lie",
		"another.path.to.cake", "foo",
		"path.to.the.cake.another.path.to.the.cake", "the real cake",
	))

	want := mapOf(
		"treasure", "cheers!",
		"cake", "the cake is a lie",
		"cake.another.path.to.the.cake", "the real cake",
	)

	got := b.UseNamespace("path.to.the.").ToMap()
	if diff := cmp.Diff(entries(want), entries(got), valueComparer); diff != "" {
		t.Errorf("UseNamespace mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, b.UseNamespace("path.to.the").Equal(b.UseNamespace("path.to.the.")))

	chained := b.UseNamespace("path.").UseNamespace("to.").ToMap()
	assert.True(t, mapOf(
		"the.treasure", "cheers!",
		"the.cake", "the cake is a lie",
		"the.cake.another.path.to.the.cake", "the real cake",
	).Equal(chained))

	assert.True(t, b.UseNamespace("path.").UseNamespace("to.").UseNamespace("the.").Equal(b.UseNamespace("path.to.the.")))
	assert.True(t, b.UseNamespace("path").UseNamespace("to").UseNamespace("the").Equal(b.UseNamespace("path.to.the")))

	assert.Equal(t, 0, b.UseNamespace("nowhere").Len())
	assert.True(t, b.UseNamespace("").Equal(b))
	assert.Equal(t, 4, b.Len(), "namespacing must not modify the source bag")
}

func TestBag_Union(t *testing.T) {
	a := New(mapOf("alpha", "a"))
	other := New(mapOf("alpha", "x", "delta", "d", "epsilon", "e"))

	u := a.Union(other)

	assert.Equal(t, 3, u.Len())
	assert.Equal(t, value.String("a"), u.Get("alpha"))
	assert.Equal(t, value.String("d"), u.Get("delta"))
	assert.Equal(t, value.String("e"), u.Get("epsilon"))
	assert.NotSame(t, a, u)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, value.String("x"), other.Get("alpha"))

	u.Set("zeta", value.Int(1))
	assert.False(t, a.Has("zeta"), "union result must not alias its operands")
}

func TestBag_UnionNil(t *testing.T) {
	a := New(mapOf("alpha", "a"))

	u := a.Union(nil)
	assert.True(t, a.Equal(u))
	assert.NotSame(t, a, u)
}

func TestBag_Iteration(t *testing.T) {
	b := fixtureBag()

	var first []string
	for name, v := range b.All() {
		assert.True(t, v.Equal(b.Get(name)))
		first = append(first, name)
	}

	var second []string
	for name := range b.All() {
		second = append(second, name)
	}

	assert.Equal(t, first, second, "iteration must restart")
	assert.Equal(t, b.Names(), first)
}

func TestBag_Count(t *testing.T) {
	b := fixtureBag()
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, 10, b.ToMap().Len())
}

func TestBag_JSON(t *testing.T) {
	b := fixtureBag()

	fromBag, err := json.Marshal(b)
	require.NoError(t, err)

	fromMap, err := json.Marshal(b.ToMap())
	require.NoError(t, err)

	assert.Equal(t, string(fromMap), string(fromBag))
	assert.Contains(t, string(fromBag), `"config.export":["json","csv"]`)
	assert.Contains(t, string(fromBag), `"fixtures.AnnotationConstructInjection":{"foo":"foo","bar":"bar"}`)
}

func TestBag_YAML(t *testing.T) {
	n, err := value.ParseJSON(`{"x": [1, 2]}`)
	require.NoError(t, err)

	b := New(mapOf("b", 1, "a", value.JSON(n), "c", []value.Value{value.String("x"), value.Bool(true)}))

	out, err := yaml.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, "b: 1\na:\n    x: [1, 2]\nc:\n    - x\n    - true\n", string(out))
}

func TestBag_Ownership(t *testing.T) {
	m := mapOf("a", 1)
	b := New(m)

	m.Set("b", value.Int(2))
	assert.False(t, b.Has("b"))

	snap := b.ToMap()
	snap.Set("c", value.Int(3))
	assert.False(t, b.Has("c"))
}

func TestBag_OwnershipOfJSON(t *testing.T) {
	n, err := value.ParseJSON(`{"a": "b", "list": [1, 2]}`)
	require.NoError(t, err)

	m := NewMap()
	m.Set("x", value.JSON(n))
	src := New(m)

	derived := src.UseNamespace("")
	tree, ok := derived.Get("x").AsJSON()
	require.True(t, ok)
	tree.Fields[0].Value.Str = "changed"
	tree.Fields[1].Value.Elems = nil

	snap, _ := src.ToMap().Get("x")
	tree, _ = snap.AsJSON()
	assert.Equal(t, "b", tree.Fields[0].Value.Str)
	assert.Len(t, tree.Fields[1].Value.Elems, 2)

	out, err := json.Marshal(src)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":{"a":"b","list":[1,2]}}`, string(out))
}

func TestGetAs(t *testing.T) {
	b := fixtureBag()

	maxVal, ok := GetAs[int64](b, "val.max")
	require.True(t, ok)
	assert.Equal(t, int64(16), maxVal)

	_, ok = GetAs[string](b, "val.max")
	assert.False(t, ok)

	inj, ok := GetAs[*constructInjection](b, "fixtures.AnnotationConstructInjection")
	require.True(t, ok)
	assert.Equal(t, "foo", inj.Foo)
}

func TestMap_Append(t *testing.T) {
	m := NewMap()
	m.Append("value", value.String("foo"))
	assert.Equal(t, value.String("foo"), m.values["value"])

	m.Append("value", value.String("bar"))
	m.Append("value", value.String("baz"))
	m.Append("other", value.Bool(true))

	v, _ := m.Get("value")
	assert.True(t, value.List(value.String("foo"), value.String("bar"), value.String("baz")).Equal(v))
	assert.Equal(t, []string{"value", "other"}, m.Keys())
}
