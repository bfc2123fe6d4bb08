// Package complete proposes completions for a cursor position in KQL
// source. Proposals come from the dialect vocabulary, host-supplied
// table and variable names, and schema columns after a dotted path.
package complete

import (
	"sort"
	"strings"

	"github.com/thiagopls1/lang-kql/kqlparser"
)

// ItemKind identifies what a completion item refers to.
type ItemKind int

const (
	ItemKeyword ItemKind = iota
	ItemType
	ItemBuiltin
	ItemTable
	ItemColumn
	ItemVariable
)

var itemNames = map[ItemKind]string{
	ItemKeyword:  "keyword",
	ItemType:     "type",
	ItemBuiltin:  "builtin",
	ItemTable:    "table",
	ItemColumn:   "column",
	ItemVariable: "variable",
}

func (k ItemKind) String() string {
	if name, ok := itemNames[k]; ok {
		return name
	}
	return "unknown"
}

// Item is a single completion proposal.
type Item struct {
	Label string
	Kind  ItemKind
}

// Options supplies the context the engine completes against. The zero
// value proposes nothing.
type Options struct {
	// Schema maps table names to their column names.
	Schema map[string][]string

	// Tables lists completable table names. Schema keys are proposed
	// as tables too.
	Tables []string

	// DefaultTable names the table whose columns complete without a
	// dotted path.
	DefaultTable string

	// Keywords proposes the dialect vocabulary.
	Keywords bool

	// Variables lists completable special variables, marker characters
	// included.
	Variables []string
}

// Result is the outcome of a completion request. From and To delimit
// the span the items replace; with no current word both sit at the
// request position.
type Result struct {
	From, To int
	Items    []Item
}

// At proposes completions for the cursor at pos. A nil dialect selects
// StandardKQL; pos is clamped to the source bounds. Inside strings and
// comments the result is empty.
func At(src []byte, pos int, d *kqlparser.Dialect, opts Options) Result {
	if d == nil {
		d = kqlparser.StandardKQL
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	tokens := kqlparser.Tokenize(src, d)

	from, to := pos, pos
	prefix := ""
	if cur, ok := tokenTouching(tokens, pos); ok {
		switch {
		case cur.Kind == kqlparser.TokenString || cur.Kind.IsTrivia():
			if pos < cur.To {
				return Result{From: pos, To: pos}
			}
		case cur.Kind == kqlparser.TokenSpecialVar:
			return variableItems(src, cur, pos, opts)
		case cur.Kind == kqlparser.TokenQuotedIdentifier:
			prefix = quotedPrefix(src, cur, pos)
			from, to = cur.From, cur.To
		case isWordKind(cur.Kind):
			prefix = string(src[cur.From:pos])
			from, to = cur.From, cur.To
		}
	}

	if table, dotted := dottedPath(src, tokens, from, d); dotted {
		return Result{From: from, To: to, Items: match(prefix, columnItems(opts.Schema, table))}
	}

	var pool []Item
	if opts.Keywords {
		for word, tag := range d.Words() {
			pool = append(pool, Item{Label: word, Kind: wordItemKind(tag)})
		}
	}
	for _, t := range tableNames(opts) {
		pool = append(pool, Item{Label: t, Kind: ItemTable})
	}
	pool = append(pool, columnItems(opts.Schema, opts.DefaultTable)...)
	return Result{From: from, To: to, Items: match(prefix, pool)}
}

// tokenTouching returns the token whose span contains or ends at pos.
func tokenTouching(tokens []kqlparser.Token, pos int) (kqlparser.Token, bool) {
	for _, t := range tokens {
		if t.From < pos && pos <= t.To {
			return t, true
		}
	}
	return kqlparser.Token{}, false
}

func isWordKind(k kqlparser.TokenKind) bool {
	switch k {
	case kqlparser.TokenIdentifier, kqlparser.TokenKeyword, kqlparser.TokenTypeName,
		kqlparser.TokenBuiltin, kqlparser.TokenBool, kqlparser.TokenNull:
		return true
	}
	return false
}

// dottedPath reports whether a dotted name chain ends immediately
// before offset and returns its last name for schema lookup. For
// sch.tbl. only the name next to the final dot matters.
func dottedPath(src []byte, tokens []kqlparser.Token, before int, d *kqlparser.Dialect) (string, bool) {
	i := lastSignificant(tokens, before)
	if i < 0 || tokens[i].Kind != kqlparser.TokenDot {
		return "", false
	}
	j := prevSignificant(tokens, i)
	if j < 0 || !tokens[j].Kind.IsName() {
		return "", false
	}
	return nameText(src, tokens[j], d), true
}

// lastSignificant returns the index of the last non-trivia token ending
// at or before offset, or -1.
func lastSignificant(tokens []kqlparser.Token, offset int) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].To <= offset && !tokens[i].Kind.IsTrivia() {
			return i
		}
	}
	return -1
}

func prevSignificant(tokens []kqlparser.Token, i int) int {
	for i--; i >= 0; i-- {
		if !tokens[i].Kind.IsTrivia() {
			return i
		}
	}
	return -1
}

func nameText(src []byte, tok kqlparser.Token, d *kqlparser.Dialect) string {
	if tok.Kind == kqlparser.TokenQuotedIdentifier {
		if s, err := kqlparser.DecodeString(src, tok, d); err == nil {
			return s
		}
	}
	return tok.Text(src)
}

// quotedPrefix extracts the typed part of a quoted identifier, without
// the surrounding quote characters.
func quotedPrefix(src []byte, cur kqlparser.Token, pos int) string {
	open := src[cur.From]
	closer := open
	if open == '[' {
		closer = ']'
	}
	body := src[cur.From+1 : pos]
	if len(body) > 0 && body[len(body)-1] == closer {
		body = body[:len(body)-1]
	}
	return string(body)
}

func variableItems(src []byte, cur kqlparser.Token, pos int, opts Options) Result {
	prefix := string(src[cur.From:pos])
	var pool []Item
	for _, v := range opts.Variables {
		pool = append(pool, Item{Label: v, Kind: ItemVariable})
	}
	return Result{From: cur.From, To: cur.To, Items: match(prefix, pool)}
}

func columnItems(schema map[string][]string, table string) []Item {
	if table == "" {
		return nil
	}
	for name, cols := range schema {
		if strings.EqualFold(name, table) {
			items := make([]Item, 0, len(cols))
			for _, c := range cols {
				items = append(items, Item{Label: c, Kind: ItemColumn})
			}
			return items
		}
	}
	return nil
}

func tableNames(opts Options) []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range opts.Tables {
		if !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	for t := range opts.Schema {
		if !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	return names
}

func wordItemKind(tag kqlparser.WordTag) ItemKind {
	switch tag {
	case kqlparser.WordType:
		return ItemType
	case kqlparser.WordBuiltin:
		return ItemBuiltin
	default:
		return ItemKeyword
	}
}

// match filters pool case-insensitively by prefix and orders the result
// by label for deterministic output. Duplicates collapse.
func match(prefix string, pool []Item) []Item {
	prefix = strings.ToLower(prefix)
	var items []Item
	for _, it := range pool {
		if strings.HasPrefix(strings.ToLower(it.Label), prefix) {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Label != items[j].Label {
			return items[i].Label < items[j].Label
		}
		return items[i].Kind < items[j].Kind
	})
	var out []Item
	for i, it := range items {
		if i > 0 && it == items[i-1] {
			continue
		}
		out = append(out, it)
	}
	return out
}
