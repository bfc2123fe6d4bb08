// Package highlight maps KQL tokens to display classes and renders
// source text through CSS-like terminal themes.
package highlight

import "github.com/thiagopls1/lang-kql/kqlparser"

// Tag names a highlight class. Theme stylesheets select tags with class
// selectors, e.g. .keyword.
type Tag string

const (
	TagKeyword     Tag = "keyword"
	TagTypeName    Tag = "type"
	TagBuiltin     Tag = "builtin"
	TagString      Tag = "string"
	TagNumber      Tag = "number"
	TagBool        Tag = "bool"
	TagNull        Tag = "null"
	TagName        Tag = "name"
	TagQuotedName  Tag = "quoted-name"
	TagVariable    Tag = "variable"
	TagOperator    Tag = "operator"
	TagPunctuation Tag = "punctuation"
	TagComment     Tag = "comment"
	TagNone        Tag = ""
)

// displayTags lists every styleable tag. TagNone stays out: spans
// without a display class render unstyled.
var displayTags = []Tag{
	TagKeyword, TagTypeName, TagBuiltin, TagString, TagNumber, TagBool,
	TagNull, TagName, TagQuotedName, TagVariable, TagOperator,
	TagPunctuation, TagComment,
}

// For maps a token kind to its highlight tag. Whitespace maps to
// TagNone.
func For(kind kqlparser.TokenKind) Tag {
	switch kind {
	case kqlparser.TokenKeyword:
		return TagKeyword
	case kqlparser.TokenTypeName:
		return TagTypeName
	case kqlparser.TokenBuiltin:
		return TagBuiltin
	case kqlparser.TokenString:
		return TagString
	case kqlparser.TokenNumber, kqlparser.TokenBits, kqlparser.TokenBytes:
		return TagNumber
	case kqlparser.TokenBool:
		return TagBool
	case kqlparser.TokenNull:
		return TagNull
	case kqlparser.TokenIdentifier:
		return TagName
	case kqlparser.TokenQuotedIdentifier:
		return TagQuotedName
	case kqlparser.TokenSpecialVar:
		return TagVariable
	case kqlparser.TokenOperator:
		return TagOperator
	case kqlparser.TokenLineComment, kqlparser.TokenBlockComment:
		return TagComment
	case kqlparser.TokenPunctuation, kqlparser.TokenParenL, kqlparser.TokenParenR,
		kqlparser.TokenBraceL, kqlparser.TokenBraceR, kqlparser.TokenBracketL,
		kqlparser.TokenBracketR, kqlparser.TokenSemi, kqlparser.TokenDot:
		return TagPunctuation
	}
	return TagNone
}
