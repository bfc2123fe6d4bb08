package kqlparser

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenWhitespace       // runs of blank characters
	TokenLineComment      // -- ..., # ..., // ... up to end of line
	TokenBlockComment     // /* ... */
	TokenString           // '...', "...", $$...$$, N'...', q'[...]'
	TokenNumber           // 42, 3.14, .5, 1e10
	TokenBits             // b'0101', 0b0101
	TokenBytes            // x'CAFE', b'...' in byte-literal dialects
	TokenBool             // true, false
	TokenNull             // null
	TokenIdentifier       // word not claimed by the dialect
	TokenQuotedIdentifier // "name", `name`, [name]
	TokenSpecialVar       // ?, @name, $1, @@global
	TokenKeyword          // word listed as a keyword by the dialect
	TokenTypeName         // word listed as a type by the dialect
	TokenBuiltin          // word listed as a builtin by the dialect
	TokenOperator         // run of operator characters
	TokenPunctuation      // character matched by no other rule
	TokenParenL           // (
	TokenParenR           // )
	TokenBraceL           // {
	TokenBraceR           // }
	TokenBracketL         // [
	TokenBracketR         // ]
	TokenSemi             // ;
	TokenDot              // .
)

var tokenNames = map[TokenKind]string{
	TokenEOF:              "EOF",
	TokenWhitespace:       "whitespace",
	TokenLineComment:      "line comment",
	TokenBlockComment:     "block comment",
	TokenString:           "string",
	TokenNumber:           "number",
	TokenBits:             "bits",
	TokenBytes:            "bytes",
	TokenBool:             "bool",
	TokenNull:             "null",
	TokenIdentifier:       "identifier",
	TokenQuotedIdentifier: "quoted identifier",
	TokenSpecialVar:       "special variable",
	TokenKeyword:          "keyword",
	TokenTypeName:         "type",
	TokenBuiltin:          "builtin",
	TokenOperator:         "operator",
	TokenPunctuation:      "punctuation",
	TokenParenL:           "'('",
	TokenParenR:           "')'",
	TokenBraceL:           "'{'",
	TokenBraceR:           "'}'",
	TokenBracketL:         "'['",
	TokenBracketR:         "']'",
	TokenSemi:             "';'",
	TokenDot:              "'.'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsTrivia reports whether the kind carries no structural meaning
// (whitespace and comments).
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenLineComment || k == TokenBlockComment
}

// IsName reports whether the kind can act as a name part of a composite
// identifier.
func (k TokenKind) IsName() bool {
	return k == TokenIdentifier || k == TokenQuotedIdentifier || k == TokenSpecialVar
}

// Token is a single lexical unit produced by the Lexer. Tokens are pure
// spans: From and To are byte offsets into the source buffer, To
// exclusive. A token stream covers its source without gaps or overlaps.
type Token struct {
	Kind     TokenKind
	From, To int
}

// Text returns the source text the token spans.
func (t Token) Text(src []byte) string {
	return string(src[t.From:t.To])
}
