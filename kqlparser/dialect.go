package kqlparser

import "strings"

// WordTag classifies a word according to the active dialect.
type WordTag int

const (
	WordNone    WordTag = iota // plain identifier
	WordKeyword                // reserved word
	WordType                   // type name
	WordBuiltin                // builtin function or object
)

// TokenKind returns the token kind a word with this tag lexes as.
func (t WordTag) TokenKind() TokenKind {
	switch t {
	case WordKeyword:
		return TokenKeyword
	case WordType:
		return TokenTypeName
	case WordBuiltin:
		return TokenBuiltin
	default:
		return TokenIdentifier
	}
}

// DialectSpec is the declarative configuration record a Dialect is
// defined from. The zero value describes the standard language: no
// vocabulary, default character sets, every feature toggle off.
type DialectSpec struct {
	// Keywords, Types and Builtin are space-separated word lists.
	// Matching against them is case-insensitive.
	Keywords string
	Types    string
	Builtin  string

	// Comment syntax.
	HashComments     bool // # starts a line comment
	SlashComments    bool // // starts a line comment
	SpaceAfterDashes bool // -- starts a comment only when followed by a blank

	// String literal syntax.
	BackslashEscapes          bool // backslash escapes inside quoted literals
	DoubleDollarQuotedStrings bool // $$...$$ string literals
	DoubleQuotedStrings       bool // "..." is a string, not a quoted identifier
	CharSetCasts              bool // N'...' and _charset'...' prefixes
	PLKQLQuotingMechanism     bool // q'[...]' custom-delimited literals

	// Bit and byte literal syntax.
	UnquotedBitLiterals bool // 0b01 literals
	TreatBitsAsBytes    bool // b'...' reads as an arbitrary byte literal

	// Character sets. An empty string selects the default.
	OperatorChars    string // default "*+-%<>!=&|~^/"
	SpecialVar       string // default "?"
	IdentifierQuotes string // default `"`
}

const (
	defaultOperatorChars    = "*+-%<>!=&|~^/"
	defaultSpecialVar       = "?"
	defaultIdentifierQuotes = `"`
)

// Dialect is a compiled DialectSpec ready for tokenizing. A Dialect is
// immutable after Define and safe for concurrent use by any number of
// lexers and parsers.
type Dialect struct {
	spec             DialectSpec
	words            map[string]WordTag
	operatorChars    string
	specialVarChars  string
	identifierQuotes string
}

// Define compiles spec into a Dialect. Define is total: every spec,
// including the zero value, yields a usable dialect.
func Define(spec DialectSpec) *Dialect {
	d := &Dialect{
		spec:             spec,
		words:            make(map[string]WordTag),
		operatorChars:    defaultOperatorChars,
		specialVarChars:  defaultSpecialVar,
		identifierQuotes: defaultIdentifierQuotes,
	}
	if spec.OperatorChars != "" {
		d.operatorChars = spec.OperatorChars
	}
	if spec.SpecialVar != "" {
		d.specialVarChars = spec.SpecialVar
	}
	if spec.IdentifierQuotes != "" {
		d.identifierQuotes = spec.IdentifierQuotes
	}
	addWords(d.words, spec.Keywords, WordKeyword)
	addWords(d.words, spec.Types, WordType)
	addWords(d.words, spec.Builtin, WordBuiltin)
	return d
}

func addWords(words map[string]WordTag, list string, tag WordTag) {
	for _, w := range strings.Fields(list) {
		words[strings.ToLower(w)] = tag
	}
}

// Spec returns the configuration the dialect was defined with.
func (d *Dialect) Spec() DialectSpec { return d.spec }

// ClassifyWord reports how the dialect classifies word. Matching is
// case-insensitive; WordNone means the word is a plain identifier.
func (d *Dialect) ClassifyWord(word string) WordTag {
	return d.words[strings.ToLower(word)]
}

// Words returns a copy of the dialect's word table keyed by the
// lower-cased word.
func (d *Dialect) Words() map[string]WordTag {
	out := make(map[string]WordTag, len(d.words))
	for w, tag := range d.words {
		out[w] = tag
	}
	return out
}

// wordTag looks up an already lower-cased word.
func (d *Dialect) wordTag(lower string) WordTag {
	return d.words[lower]
}

func (d *Dialect) isOperatorChar(ch byte) bool {
	return strings.IndexByte(d.operatorChars, ch) >= 0
}

func (d *Dialect) isSpecialVarChar(ch byte) bool {
	return strings.IndexByte(d.specialVarChars, ch) >= 0
}

func (d *Dialect) isIdentifierQuote(ch byte) bool {
	return strings.IndexByte(d.identifierQuotes, ch) >= 0
}
