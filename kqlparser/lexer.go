package kqlparser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes KQL source text into a stream of span tokens.
//
// The lexer never fails: a character matched by no rule becomes a
// one-byte punctuation token and unterminated literals run to the end of
// the source, so the stream always covers every byte of the input.
type Lexer struct {
	src     []byte
	pos     int // current byte offset
	dialect *Dialect
	peeked  *Token
}

// NewLexer creates a Lexer over src. A nil dialect selects StandardKQL.
func NewLexer(src []byte, dialect *Dialect) *Lexer {
	if dialect == nil {
		dialect = StandardKQL
	}
	return &Lexer{src: src, dialect: dialect}
}

// Tokenize scans src to completion. The returned tokens cover every byte
// of src in order, without gaps or overlaps. The EOF sentinel is not
// included.
func Tokenize(src []byte, dialect *Dialect) []Token {
	lex := NewLexer(src, dialect)
	var tokens []Token
	for {
		tok := lex.Next()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	if l.peeked == nil {
		tok := l.scan()
		l.peeked = &tok
	}
	return *l.peeked
}

// Next returns the next token and advances the lexer. At the end of the
// source it returns a zero-width TokenEOF token.
func (l *Lexer) Next() Token {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok
	}
	return l.scan()
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{Kind: kind, From: start, To: l.pos}
}

// scan reads one token. Rules are tried in a fixed order; dialect
// options select which rules are active, never the order itself.
func (l *Lexer) scan() Token {
	if l.atEnd() {
		return Token{Kind: TokenEOF, From: l.pos, To: l.pos}
	}

	start := l.pos
	ch := l.peek()

	if ch >= utf8.RuneSelf {
		r, _ := utf8.DecodeRune(l.src[l.pos:])
		if unicode.IsSpace(r) {
			return l.scanWhitespace(start)
		}
		return l.scanWord(start)
	}

	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return l.scanWhitespace(start)

	case '-':
		if l.peekAt(1) == '-' && l.dashCommentStarts() {
			return l.scanLineComment(start)
		}

	case '#':
		if l.dialect.spec.HashComments {
			return l.scanLineComment(start)
		}

	case '/':
		if l.peekAt(1) == '/' && l.dialect.spec.SlashComments {
			return l.scanLineComment(start)
		}
		if l.peekAt(1) == '*' {
			return l.scanBlockComment(start)
		}

	case '\'':
		l.advance()
		return l.scanLiteralTail(start, '\'', l.dialect.spec.BackslashEscapes, TokenString)

	case '"':
		if l.dialect.spec.DoubleQuotedStrings {
			l.advance()
			return l.scanLiteralTail(start, '"', l.dialect.spec.BackslashEscapes, TokenString)
		}

	case '$':
		if l.peekAt(1) == '$' && l.dialect.spec.DoubleDollarQuotedStrings {
			return l.scanDoubleDollar(start)
		}

	case 'e', 'E':
		if l.peekAt(1) == '\'' {
			l.advance()
			l.advance()
			return l.scanLiteralTail(start, '\'', true, TokenString)
		}

	case 'n', 'N':
		if l.peekAt(1) == '\'' && l.dialect.spec.CharSetCasts {
			l.advance()
			l.advance()
			return l.scanLiteralTail(start, '\'', l.dialect.spec.BackslashEscapes, TokenString)
		}

	case '_':
		if l.dialect.spec.CharSetCasts {
			if n := l.charSetCastLength(); n > 0 {
				l.pos += n
				return l.scanLiteralTail(start, '\'', l.dialect.spec.BackslashEscapes, TokenString)
			}
		}

	case 'q', 'Q':
		if l.peekAt(1) == '\'' && l.dialect.spec.PLKQLQuotingMechanism {
			return l.scanCustomQuoted(start)
		}

	case 'b', 'B':
		if quote := l.peekAt(1); quote == '\'' || quote == '"' {
			if l.dialect.spec.TreatBitsAsBytes {
				l.advance()
				l.advance()
				return l.scanLiteralTail(start, quote, l.dialect.spec.BackslashEscapes, TokenBytes)
			}
			return l.scanQuotedBits(start, quote)
		}

	case 'x', 'X':
		if quote := l.peekAt(1); quote == '\'' || quote == '"' {
			l.advance()
			l.advance()
			return l.scanLiteralTail(start, quote, false, TokenBytes)
		}

	case '0':
		if b := l.peekAt(1); (b == 'b' || b == 'B') && l.dialect.spec.UnquotedBitLiterals {
			return l.scanUnquotedBits(start)
		}

	case '.':
		if isDigit(l.peekAt(1)) {
			return l.scanNumber(start)
		}
		l.advance()
		return l.token(TokenDot, start)
	}

	// The character opened no dialect-specific form. The remaining rules
	// cover numbers, quoted identifiers, variables, punctuation,
	// operators and words, in that order.
	switch {
	case isDigit(ch):
		return l.scanNumber(start)
	case l.dialect.isIdentifierQuote(ch):
		l.advance()
		return l.scanLiteralTail(start, closingQuoteFor(ch), false, TokenQuotedIdentifier)
	case l.dialect.isSpecialVarChar(ch):
		return l.scanSpecialVar(start)
	}

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenParenL, start)
	case ')':
		l.advance()
		return l.token(TokenParenR, start)
	case '{':
		l.advance()
		return l.token(TokenBraceL, start)
	case '}':
		l.advance()
		return l.token(TokenBraceR, start)
	case '[':
		l.advance()
		return l.token(TokenBracketL, start)
	case ']':
		l.advance()
		return l.token(TokenBracketR, start)
	case ';':
		l.advance()
		return l.token(TokenSemi, start)
	}

	if l.dialect.isOperatorChar(ch) {
		for !l.atEnd() && l.dialect.isOperatorChar(l.peek()) {
			l.advance()
		}
		return l.token(TokenOperator, start)
	}

	if isWordByte(ch) {
		return l.scanWord(start)
	}

	l.advance()
	return l.token(TokenPunctuation, start)
}

func (l *Lexer) scanWhitespace(start int) Token {
	for !l.atEnd() {
		ch := l.peek()
		if isSpaceByte(ch) {
			l.advance()
			continue
		}
		if ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(l.src[l.pos:])
			if unicode.IsSpace(r) {
				l.pos += size
				continue
			}
		}
		break
	}
	return l.token(TokenWhitespace, start)
}

// scanLineComment consumes to the end of the line. The newline itself is
// left for the following whitespace token.
func (l *Lexer) scanLineComment(start int) Token {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

// dashCommentStarts reports whether -- opens a comment at the current
// position. Some dialects require a blank or end of input after the
// dashes so that expressions like a--b keep their operators.
func (l *Lexer) dashCommentStarts() bool {
	if !l.dialect.spec.SpaceAfterDashes {
		return true
	}
	if l.pos+2 >= len(l.src) {
		return true
	}
	ch := l.src[l.pos+2]
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

// scanBlockComment reads to the first */ regardless of any /* between.
// An unterminated comment runs to the end of the source.
func (l *Lexer) scanBlockComment(start int) Token {
	l.advance()
	l.advance()
	for !l.atEnd() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	return l.token(TokenBlockComment, start)
}

// scanLiteralTail reads a quoted span whose opening delimiter has been
// consumed already.
func (l *Lexer) scanLiteralTail(start int, closer byte, backslash bool, kind TokenKind) Token {
	l.consumeLiteral(closer, backslash)
	return l.token(kind, start)
}

// consumeLiteral reads to the closing delimiter. A doubled delimiter is
// an escaped one; backslash escapes apply when the dialect enables them.
// An unterminated literal runs to the end of the source.
func (l *Lexer) consumeLiteral(closer byte, backslash bool) {
	for !l.atEnd() {
		ch := l.advance()
		if ch == closer {
			if l.peek() == closer {
				l.advance()
				continue
			}
			return
		}
		if ch == '\\' && backslash && !l.atEnd() {
			l.advance()
		}
	}
}

func (l *Lexer) scanDoubleDollar(start int) Token {
	l.advance()
	l.advance()
	for !l.atEnd() {
		if l.peek() == '$' && l.peekAt(1) == '$' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	return l.token(TokenString, start)
}

// charSetCastLength measures a _charset' prefix at the current position:
// an underscore, at least two word characters and an opening quote.
// Returns 0 when the lookahead does not match.
func (l *Lexer) charSetCastLength() int {
	i := l.pos + 1
	for i < len(l.src) && isWordByte(l.src[i]) {
		i++
	}
	if i-l.pos < 3 || i >= len(l.src) || l.src[i] != '\'' {
		return 0
	}
	return i - l.pos + 1
}

// scanCustomQuoted reads q'<open>...<close>' where the bracket
// delimiters ([{< pair with )]}> and any other delimiter closes with
// itself. A literal that never reaches <close>' runs to the end of the
// source.
func (l *Lexer) scanCustomQuoted(start int) Token {
	l.advance()
	l.advance()
	if l.atEnd() {
		return l.token(TokenString, start)
	}
	open := l.advance()
	closer := open
	if i := strings.IndexByte("([{<", open); i >= 0 {
		closer = ")]}>"[i]
	}
	for !l.atEnd() {
		if l.peek() == closer && l.peekAt(1) == '\'' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	return l.token(TokenString, start)
}

// scanQuotedBits reads b'0101'. The body is a run of bit digits; a stray
// character ends the token before the closing quote.
func (l *Lexer) scanQuotedBits(start int, quote byte) Token {
	l.advance()
	l.advance()
	for !l.atEnd() && (l.peek() == '0' || l.peek() == '1') {
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	return l.token(TokenBits, start)
}

func (l *Lexer) scanUnquotedBits(start int) Token {
	l.advance()
	l.advance()
	for !l.atEnd() && isBitBody(l.peek(), l.dialect.spec.TreatBitsAsBytes) {
		l.advance()
	}
	return l.token(TokenBits, start)
}

// scanNumber reads a decimal literal: digits with at most one decimal
// point, then an optional exponent. The exponent marker is consumed only
// when digits follow it.
func (l *Lexer) scanNumber(start int) Token {
	sawDot := false
	for !l.atEnd() {
		ch := l.peek()
		if isDigit(ch) {
			l.advance()
			continue
		}
		if ch == '.' && !sawDot {
			sawDot = true
			l.advance()
			continue
		}
		break
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekAt(1)
		switch {
		case isDigit(next):
			l.advance()
			l.advance()
		case (next == '+' || next == '-') && isDigit(l.peekAt(2)):
			l.advance()
			l.advance()
			l.advance()
		default:
			return l.token(TokenNumber, start)
		}
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.token(TokenNumber, start)
}

// scanSpecialVar reads a variable marker, an optionally doubled marker
// character, and a word or quoted body. A bare marker is a complete
// token.
func (l *Lexer) scanSpecialVar(start int) Token {
	marker := l.advance()
	if l.peek() == marker {
		l.advance()
	}
	switch ch := l.peek(); ch {
	case '\'', '"', '`':
		l.advance()
		l.consumeLiteral(ch, false)
	default:
		l.consumeWordRun()
	}
	return l.token(TokenSpecialVar, start)
}

func (l *Lexer) scanWord(start int) Token {
	l.consumeWordRun()
	word := strings.ToLower(string(l.src[start:l.pos]))
	switch word {
	case "true", "false":
		return l.token(TokenBool, start)
	case "null":
		return l.token(TokenNull, start)
	}
	return l.token(l.dialect.wordTag(word).TokenKind(), start)
}

func (l *Lexer) consumeWordRun() {
	for !l.atEnd() {
		ch := l.peek()
		if isWordByte(ch) {
			l.advance()
			continue
		}
		if ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(l.src[l.pos:])
			if !unicode.IsSpace(r) {
				l.pos += size
				continue
			}
		}
		break
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordByte(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isSpaceByte(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func isBitBody(ch byte, wide bool) bool {
	if ch == '0' || ch == '1' {
		return true
	}
	return wide && isWordByte(ch)
}

// closingQuoteFor returns the closing identifier quote for an opening
// one. Square brackets are the one asymmetric pair.
func closingQuoteFor(open byte) byte {
	if open == '[' {
		return ']'
	}
	return open
}
