package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagopls1/lang-kql/kqlparser"
)

var testSchema = map[string][]string{
	"users":  {"id", "name", "email"},
	"orders": {"id", "total"},
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestAtKeywordPrefix(t *testing.T) {
	src := []byte("sel")
	res := At(src, 3, kqlparser.MySQL, Options{Keywords: true})
	assert.Equal(t, 0, res.From)
	assert.Equal(t, 3, res.To)
	require.NotEmpty(t, res.Items)
	assert.Contains(t, labels(res.Items), "select")
	for _, it := range res.Items {
		assert.True(t, len(it.Label) >= 3 && it.Label[:3] == "sel", "item: %s", it.Label)
	}
}

func TestAtCaseInsensitivePrefix(t *testing.T) {
	src := []byte("SEL")
	res := At(src, 3, kqlparser.MySQL, Options{Keywords: true})
	assert.Contains(t, labels(res.Items), "select")
}

func TestAtTypePrefix(t *testing.T) {
	src := []byte("varch")
	res := At(src, 5, kqlparser.MySQL, Options{Keywords: true})
	require.NotEmpty(t, res.Items)
	assert.Equal(t, Item{Label: "varchar", Kind: ItemType}, res.Items[0])
}

func TestAtEmptyPrefixProposesTables(t *testing.T) {
	src := []byte("select * from ")
	res := At(src, len(src), nil, Options{Tables: []string{"users", "orders"}})
	assert.Equal(t, len(src), res.From)
	assert.Equal(t, len(src), res.To)
	assert.Equal(t, []string{"orders", "users"}, labels(res.Items))
	for _, it := range res.Items {
		assert.Equal(t, ItemTable, it.Kind)
	}
}

func TestAtSchemaKeysAreTables(t *testing.T) {
	src := []byte("from u")
	res := At(src, len(src), nil, Options{Schema: testSchema})
	assert.Equal(t, []string{"users"}, labels(res.Items))
	assert.Equal(t, ItemTable, res.Items[0].Kind)
}

func TestAtTablesDeduped(t *testing.T) {
	src := []byte("from users")
	res := At(src, len(src), nil, Options{Schema: testSchema, Tables: []string{"users"}})
	assert.Equal(t, []string{"users"}, labels(res.Items))
}

func TestAtColumnsAfterDot(t *testing.T) {
	src := []byte("select users.")
	res := At(src, len(src), nil, Options{Schema: testSchema})
	assert.Equal(t, len(src), res.From)
	assert.Equal(t, []string{"email", "id", "name"}, labels(res.Items))
	for _, it := range res.Items {
		assert.Equal(t, ItemColumn, it.Kind)
	}
}

func TestAtColumnPrefixAfterDot(t *testing.T) {
	src := []byte("select users.na from users")
	res := At(src, 15, nil, Options{Schema: testSchema})
	assert.Equal(t, 13, res.From)
	assert.Equal(t, 15, res.To)
	assert.Equal(t, []string{"name"}, labels(res.Items))
}

func TestAtSchemaQualifiedPath(t *testing.T) {
	src := []byte("db.users.")
	res := At(src, len(src), nil, Options{Schema: testSchema})
	assert.Equal(t, []string{"email", "id", "name"}, labels(res.Items))
}

func TestAtQuotedTableAfterDot(t *testing.T) {
	src := []byte(`"users".`)
	res := At(src, len(src), nil, Options{Schema: testSchema})
	assert.Equal(t, []string{"email", "id", "name"}, labels(res.Items))
}

func TestAtUnknownTableAfterDot(t *testing.T) {
	src := []byte("zzz.")
	res := At(src, len(src), nil, Options{Schema: testSchema, Keywords: true})
	assert.Empty(t, res.Items)
}

func TestAtDefaultTableColumns(t *testing.T) {
	src := []byte("where n")
	res := At(src, len(src), nil, Options{Schema: testSchema, DefaultTable: "users"})
	assert.Equal(t, []string{"name"}, labels(res.Items))
	assert.Equal(t, 6, res.From)
	assert.Equal(t, 7, res.To)
}

func TestAtQuotedIdentifierPrefix(t *testing.T) {
	src := []byte(`"us`)
	res := At(src, 3, nil, Options{Tables: []string{"users"}})
	assert.Equal(t, 0, res.From)
	assert.Equal(t, 3, res.To)
	assert.Equal(t, []string{"users"}, labels(res.Items))
}

func TestAtInsideString(t *testing.T) {
	src := []byte("select 'ab")
	res := At(src, 9, nil, Options{Keywords: true, Tables: []string{"users"}})
	assert.Empty(t, res.Items)
	assert.Equal(t, 9, res.From)
	assert.Equal(t, 9, res.To)
}

func TestAtInsideComment(t *testing.T) {
	src := []byte("-- com")
	res := At(src, 4, nil, Options{Keywords: true})
	assert.Empty(t, res.Items)
}

func TestAtVariables(t *testing.T) {
	src := []byte("set @@ver")
	opts := Options{Variables: []string{"@@version", "@@global.sql_mode"}}
	res := At(src, len(src), kqlparser.MySQL, opts)
	assert.Equal(t, 4, res.From)
	assert.Equal(t, len(src), res.To)
	assert.Equal(t, []string{"@@version"}, labels(res.Items))
	assert.Equal(t, ItemVariable, res.Items[0].Kind)
}

func TestAtPosClamped(t *testing.T) {
	src := []byte("ab")
	res := At(src, 99, nil, Options{Tables: []string{"abc"}})
	assert.Equal(t, 0, res.From)
	assert.Equal(t, 2, res.To)
	assert.Equal(t, []string{"abc"}, labels(res.Items))

	res = At(src, -5, nil, Options{Tables: []string{"abc"}})
	assert.Equal(t, 0, res.From)
	assert.Equal(t, 0, res.To)
}

func TestAtEmptySource(t *testing.T) {
	res := At(nil, 0, nil, Options{Tables: []string{"users"}})
	assert.Equal(t, []string{"users"}, labels(res.Items))
}

func TestItemKindString(t *testing.T) {
	assert.Equal(t, "keyword", ItemKeyword.String())
	assert.Equal(t, "column", ItemColumn.String())
	assert.Equal(t, "variable", ItemVariable.String())
	assert.Equal(t, "unknown", ItemKind(99).String())
}
