package kqlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oneToken lexes src and returns its single token.
func oneToken(t *testing.T, src string, dialect *Dialect) Token {
	t.Helper()
	tokens := Tokenize([]byte(src), dialect)
	require.Len(t, tokens, 1, "input: %s", src)
	return tokens[0]
}

func TestDecodeStringPlain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'abc'`, "abc"},
		{`''`, ""},
		{`'it''s'`, "it's"},
		{`'a''''b'`, "a''b"},
		{`'open`, "open"},
	}
	for _, tt := range tests {
		tok := oneToken(t, tt.input, nil)
		got, err := DecodeString([]byte(tt.input), tok, nil)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}
}

func TestDecodeStringBackslash(t *testing.T) {
	src := `'a\nb\tc\'d'`
	tok := oneToken(t, src, MySQL)
	got, err := DecodeString([]byte(src), tok, MySQL)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc'd", got)

	// Without backslash escapes the backslash is literal text.
	src = `'a\nb'`
	tok = oneToken(t, src, StandardKQL)
	got, err = DecodeString([]byte(src), tok, StandardKQL)
	require.NoError(t, err)
	assert.Equal(t, `a\nb`, got)
}

func TestDecodeStringPatternEscapes(t *testing.T) {
	// \% and \_ keep their backslash for the pattern matcher.
	src := `'100\%'`
	tok := oneToken(t, src, MySQL)
	got, err := DecodeString([]byte(src), tok, MySQL)
	require.NoError(t, err)
	assert.Equal(t, `100\%`, got)
}

func TestDecodeStringPrefixed(t *testing.T) {
	tests := []struct {
		input   string
		dialect *Dialect
		want    string
	}{
		{`N'abc'`, MySQL, "abc"},
		{`n'abc'`, MySQL, "abc"},
		{`_utf8'abc'`, MySQL, "abc"},
		{`E'a\tb'`, StandardKQL, "a\tb"},
	}
	for _, tt := range tests {
		tok := oneToken(t, tt.input, tt.dialect)
		got, err := DecodeString([]byte(tt.input), tok, tt.dialect)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}
}

func TestDecodeStringDollar(t *testing.T) {
	src := "$$a 'quote' b$$"
	tok := oneToken(t, src, PostgreSQL)
	got, err := DecodeString([]byte(src), tok, PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, "a 'quote' b", got)

	src = "$$open"
	tok = oneToken(t, src, PostgreSQL)
	got, err = DecodeString([]byte(src), tok, PostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, "open", got)
}

func TestDecodeStringCustomQuoted(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"q'[a'b]'", "a'b"},
		{"q'(x)'", "x"},
		{"q'!abc!'", "abc"},
		{"q'[open", "open"},
	}
	for _, tt := range tests {
		tok := oneToken(t, tt.input, PLKQL)
		got, err := DecodeString([]byte(tt.input), tok, PLKQL)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}
}

func TestDecodeQuotedIdentifier(t *testing.T) {
	tests := []struct {
		input   string
		dialect *Dialect
		want    string
	}{
		{`"my col"`, StandardKQL, "my col"},
		{`"a""b"`, StandardKQL, `a"b`},
		{"`weird`", MySQL, "weird"},
		{"[my col]", MSSQL, "my col"},
	}
	for _, tt := range tests {
		tok := oneToken(t, tt.input, tt.dialect)
		require.Equal(t, TokenQuotedIdentifier, tok.Kind, "input: %s", tt.input)
		got, err := DecodeString([]byte(tt.input), tok, tt.dialect)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}
}

func TestDecodeStringWrongKind(t *testing.T) {
	tok := oneToken(t, "42", nil)
	_, err := DecodeString([]byte("42"), tok, nil)
	require.Error(t, err)
	assert.IsType(t, &ValueError{}, err)
}

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"2e3", 2000},
	}
	for _, tt := range tests {
		tok := oneToken(t, tt.input, nil)
		got, err := DecodeNumber([]byte(tt.input), tok)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}
}

func TestDecodeNumberWrongKind(t *testing.T) {
	tok := oneToken(t, "'x'", nil)
	_, err := DecodeNumber([]byte("'x'"), tok)
	require.Error(t, err)
	assert.IsType(t, &ValueError{}, err)
}

func TestDecodeBits(t *testing.T) {
	tests := []struct {
		input   string
		dialect *Dialect
		want    uint64
	}{
		{"0b101", MySQL, 5},
		{"0B11", MySQL, 3},
		{"b'101'", StandardKQL, 5},
		{`B"1000"`, StandardKQL, 8},
	}
	for _, tt := range tests {
		tok := oneToken(t, tt.input, tt.dialect)
		require.Equal(t, TokenBits, tok.Kind, "input: %s", tt.input)
		got, err := DecodeBits([]byte(tt.input), tok)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got, "input: %s", tt.input)
	}
}

func TestDecodeBitsEmpty(t *testing.T) {
	tok := oneToken(t, "0b", MySQL)
	_, err := DecodeBits([]byte("0b"), tok)
	require.Error(t, err)
}

func TestDecodeBytes(t *testing.T) {
	src := "x'CAFE'"
	tok := oneToken(t, src, nil)
	got, err := DecodeBytes([]byte(src), tok)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE}, got)

	src = "b'0000101'"
	tok = oneToken(t, src, nil)
	got, err = DecodeBytes([]byte(src), tok)
	require.NoError(t, err)
	assert.Equal(t, []byte{5}, got)
}

func TestDecodeBytesBadHex(t *testing.T) {
	src := "x'CAF'"
	tok := oneToken(t, src, nil)
	_, err := DecodeBytes([]byte(src), tok)
	require.Error(t, err)
	assert.IsType(t, &ValueError{}, err)
}
