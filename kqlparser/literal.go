package kqlparser

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ValueError reports a literal that cannot be decoded.
type ValueError struct {
	Message  string
	From, To int
	Cause    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.From, e.Message)
}

func (e *ValueError) Unwrap() error { return e.Cause }

func valueErr(tok Token, cause error, format string, args ...any) *ValueError {
	return &ValueError{
		Message: fmt.Sprintf(format, args...),
		From:    tok.From,
		To:      tok.To,
		Cause:   cause,
	}
}

// DecodeString returns the text content of a string or quoted identifier
// token with its delimiters, prefixes and escapes resolved. The dialect
// decides whether backslash escapes apply; nil selects StandardKQL.
func DecodeString(src []byte, tok Token, dialect *Dialect) (string, error) {
	if dialect == nil {
		dialect = StandardKQL
	}
	if tok.Kind != TokenString && tok.Kind != TokenQuotedIdentifier {
		return "", valueErr(tok, nil, "cannot decode %s as text", tok.Kind)
	}
	raw := src[tok.From:tok.To]
	if len(raw) == 0 {
		return "", nil
	}

	if len(raw) >= 2 && raw[0] == '$' && raw[1] == '$' {
		body := raw[2:]
		if len(body) >= 2 && body[len(body)-1] == '$' && body[len(body)-2] == '$' {
			body = body[:len(body)-2]
		}
		return string(body), nil
	}

	backslash := dialect.spec.BackslashEscapes
	switch ch := raw[0]; {
	case (ch == 'q' || ch == 'Q') && len(raw) >= 2 && raw[1] == '\'':
		return decodeCustomQuoted(raw), nil
	case (ch == 'e' || ch == 'E') && len(raw) >= 2 && raw[1] == '\'':
		raw = raw[1:]
		backslash = true
	case (ch == 'n' || ch == 'N') && len(raw) >= 2 && raw[1] == '\'':
		raw = raw[1:]
	case ch == '_':
		if i := strings.IndexByte(string(raw), '\''); i > 0 {
			raw = raw[i:]
		}
	}

	open := raw[0]
	closer := closingQuoteFor(open)
	if tok.Kind == TokenQuotedIdentifier {
		backslash = false
	}
	return decodeQuotedBody(raw[1:], closer, backslash), nil
}

// decodeQuotedBody resolves doubled-delimiter and backslash escapes in
// the bytes following an opening delimiter. The closing delimiter, when
// present, ends the walk.
func decodeQuotedBody(raw []byte, closer byte, backslash bool) string {
	var sb strings.Builder
	for i := 0; i < len(raw); {
		ch := raw[i]
		if ch == closer {
			if i+1 < len(raw) && raw[i+1] == closer {
				sb.WriteByte(closer)
				i += 2
				continue
			}
			break
		}
		if ch == '\\' && backslash && i+1 < len(raw) {
			sb.WriteString(unescape(raw[i+1]))
			i += 2
			continue
		}
		sb.WriteByte(ch)
		i++
	}
	return sb.String()
}

// unescape resolves a backslash escape. Unknown escapes drop the
// backslash except for the pattern characters % and _, which keep it.
func unescape(ch byte) string {
	switch ch {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case '0':
		return "\x00"
	case '%', '_':
		return "\\" + string(ch)
	default:
		return string(ch)
	}
}

// decodeCustomQuoted strips the q'<open> and <close>' delimiters.
func decodeCustomQuoted(raw []byte) string {
	if len(raw) < 3 {
		return ""
	}
	open := raw[2]
	closer := open
	if i := strings.IndexByte("([{<", open); i >= 0 {
		closer = ")]}>"[i]
	}
	body := raw[3:]
	if len(body) >= 2 && body[len(body)-1] == '\'' && body[len(body)-2] == closer {
		body = body[:len(body)-2]
	}
	return string(body)
}

// DecodeNumber converts a number token into a float64.
func DecodeNumber(src []byte, tok Token) (float64, error) {
	if tok.Kind != TokenNumber {
		return 0, valueErr(tok, nil, "cannot decode %s as a number", tok.Kind)
	}
	text := string(src[tok.From:tok.To])
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, valueErr(tok, err, "invalid number %q", text)
	}
	return f, nil
}

// DecodeBits converts a bit literal token, quoted or unquoted, into its
// integer value.
func DecodeBits(src []byte, tok Token) (uint64, error) {
	if tok.Kind != TokenBits {
		return 0, valueErr(tok, nil, "cannot decode %s as bits", tok.Kind)
	}
	text := string(src[tok.From:tok.To])
	body := text
	switch {
	case len(body) >= 2 && (body[0] == '0') && (body[1] == 'b' || body[1] == 'B'):
		body = body[2:]
	case len(body) >= 2 && (body[0] == 'b' || body[0] == 'B'):
		body = strings.Trim(body[1:], `'"`)
	}
	n, err := strconv.ParseUint(body, 2, 64)
	if err != nil {
		return 0, valueErr(tok, err, "invalid bit literal %q", text)
	}
	return n, nil
}

// DecodeBytes converts a byte literal into raw bytes: hex digits for
// x'...' and bit digits for b'...' forms, most significant bit first.
func DecodeBytes(src []byte, tok Token) ([]byte, error) {
	if tok.Kind != TokenBytes && tok.Kind != TokenBits {
		return nil, valueErr(tok, nil, "cannot decode %s as bytes", tok.Kind)
	}
	text := string(src[tok.From:tok.To])
	if len(text) < 2 {
		return nil, valueErr(tok, nil, "invalid byte literal %q", text)
	}
	body := strings.Trim(text[1:], `'"`)
	switch text[0] {
	case 'x', 'X':
		decoded, err := hex.DecodeString(body)
		if err != nil {
			return nil, valueErr(tok, err, "invalid hex literal %q", text)
		}
		return decoded, nil
	case 'b', 'B':
		return bitsToBytes(tok, body)
	default:
		return nil, valueErr(tok, nil, "invalid byte literal %q", text)
	}
}

func bitsToBytes(tok Token, body string) ([]byte, error) {
	if body == "" {
		return nil, nil
	}
	if pad := len(body) % 8; pad != 0 {
		body = strings.Repeat("0", 8-pad) + body
	}
	out := make([]byte, 0, len(body)/8)
	for i := 0; i < len(body); i += 8 {
		n, err := strconv.ParseUint(body[i:i+8], 2, 8)
		if err != nil {
			return nil, valueErr(tok, err, "invalid bit literal body %q", body)
		}
		out = append(out, byte(n))
	}
	return out, nil
}
