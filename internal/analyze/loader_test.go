package analyze

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storePkg = "docnote/store"

func loadStore(t *testing.T) *DocIndex {
	t.Helper()

	index, err := NewAnalyzer().LoadPackages(storePkg)
	require.NoError(t, err)
	require.NotNil(t, index)

	return index
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	index := loadStore(t)

	require.Contains(t, index.Packages, storePkg)
	assert.Equal(t, "store", index.Packages[storePkg].Name)

	assert.NotNil(t, index.Type(storePkg, "Order"))
	assert.NotNil(t, index.Type(storePkg, "Product"))
	assert.Nil(t, index.Type(storePkg, "Missing"))
	assert.Nil(t, index.Func(storePkg, "Order"), "lookups are kind-specific")
}

func TestAnalyzer_TypeDoc(t *testing.T) {
	index := loadStore(t)

	product := index.Type(storePkg, "Product")
	require.NotNil(t, product)
	assert.Equal(t, DeclType, product.Kind)
	assert.True(t, product.Exported)
	assert.Contains(t, product.Doc, "// @table products")
	assert.Contains(t, product.Doc, "\n// @index sku\n")
	assert.Equal(t, "types.go", filepath.Base(product.Pos.Filename))

	customer := index.Type(storePkg, "Customer")
	require.NotNil(t, customer)
	assert.Contains(t, customer.Doc, "/**")
	assert.Contains(t, customer.Doc, " * @table customers")
}

func TestAnalyzer_Fields(t *testing.T) {
	index := loadStore(t)

	id := index.Field(storePkg, "Product", "ID")
	require.NotNil(t, id)
	assert.Equal(t, "// @column id\n// @primary", id.Doc)

	// trailing line comments stand in for a missing doc
	name := index.Field(storePkg, "Product", "Name")
	require.NotNil(t, name)
	assert.Equal(t, "// @column name", name.Doc)

	price := index.Field(storePkg, "Product", "PriceCents")
	require.NotNil(t, price)
	assert.False(t, price.HasDoc())

	embedded := index.Field(storePkg, "Order", "audit")
	require.NotNil(t, embedded)
	assert.False(t, embedded.Exported)

	updated := index.Field(storePkg, "audit", "UpdatedAt")
	require.NotNil(t, updated)
	assert.Equal(t, "// @readonly", updated.Doc)
}

func TestAnalyzer_FuncsAndMethods(t *testing.T) {
	index := loadStore(t)

	total := index.Method(storePkg, "Order", "Total")
	require.NotNil(t, total)
	assert.Equal(t, DeclMethod, total.Kind)
	assert.Contains(t, total.Doc, "@cost float 0.5")

	ctor := index.Func(storePkg, "NewOrder")
	require.NotNil(t, ctor)
	assert.Contains(t, ctor.Doc, "@constructor")
}

func TestAnalyzer_ConstAndVar(t *testing.T) {
	index := loadStore(t)

	pending := index.Const(storePkg, "StatusPending")
	require.NotNil(t, pending)
	assert.Equal(t, `// @label "Pending payment"`, pending.Doc)

	// grouped specs without their own doc get nothing from the group
	shipped := index.Const(storePkg, "StatusShipped")
	require.NotNil(t, shipped)
	assert.Empty(t, shipped.Doc)

	maxItems := index.Const(storePkg, "MaxItems")
	require.NotNil(t, maxItems)
	assert.Contains(t, maxItems.Doc, "@config.key orders.max_items")

	currency := index.Var(storePkg, "DefaultCurrency")
	require.NotNil(t, currency)
	assert.Contains(t, currency.Doc, "@value string EUR")
}

func TestAnalyzer_BadPattern(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("docnote/does/not/exist")
	assert.Error(t, err)
}

func TestIndexFile(t *testing.T) {
	src := `package demo

// Box holds things.
// @kind container
type Box[T any] struct {
	Items []T // @json items
}

// Put adds an item.
// @mutates
func (b *Box[T]) Put(v T) { b.Items = append(b.Items, v) }

var (
	// @flag
	a, b int
	_ = 1
)

type (
	// @first
	First int
	Second int
)
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "demo.go", src, parser.ParseComments)
	require.NoError(t, err)

	x := NewDocIndex()
	IndexFile(x, fset, "example.com/demo", file)

	tests := []struct {
		decl *Decl
		want string
	}{
		{decl: x.Type("example.com/demo", "Box"), want: "// Box holds things.\n// @kind container"},
		{decl: x.Field("example.com/demo", "Box", "Items"), want: "// @json items"},
		{decl: x.Method("example.com/demo", "Box", "Put"), want: "// Put adds an item.\n// @mutates"},
		{decl: x.Var("example.com/demo", "a"), want: "// @flag"},
		{decl: x.Var("example.com/demo", "b"), want: "// @flag"},
		{decl: x.Type("example.com/demo", "First"), want: "// @first"},
		{decl: x.Type("example.com/demo", "Second"), want: ""},
	}

	for _, tt := range tests {
		require.NotNil(t, tt.decl)
		assert.Equal(t, tt.want, tt.decl.Doc, tt.decl.ID.String())
	}

	assert.Nil(t, x.Var("example.com/demo", "_"))
	assert.Len(t, x.Decls, 7)

	all := x.All()
	require.Len(t, all, 7)
	assert.Equal(t, "Box", all[0].ID.Name)
	assert.Equal(t, "Items", all[1].ID.Name)
}
