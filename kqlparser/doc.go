// Package kqlparser implements a dialect-aware lexer and error-tolerant
// parser for KQL, a SQL-like query language.
//
// Dialects are declarative: a DialectSpec lists the keyword, type and
// builtin vocabulary and toggles lexical features (comment styles,
// string forms, bit literals, variable markers, identifier quoting), and
// Define compiles it into an immutable Dialect. One tokenizer serves
// every dialect; options select which rules are active, never the order
// they run in. Predefined dialects cover the common engine flavors, with
// StandardKQL as the default.
//
// The package is built for editor tooling rather than execution, in
// three layers:
//
//   - Lexer: converts raw bytes into span tokens that cover the entire
//     source, whitespace and comments included. It never fails;
//     malformed input degrades to punctuation tokens and unterminated
//     literals run to the end of the buffer.
//   - Parser: groups tokens into statements, bracket groups and
//     composite identifiers, recording structural problems as
//     diagnostics while keeping every byte in the tree.
//   - Decoders: DecodeString, DecodeNumber, DecodeBits and DecodeBytes
//     turn literal tokens into Go values.
//
// Usage:
//
//	script := kqlparser.Parse(src, kqlparser.PostgreSQL)
//	for _, d := range script.Diags {
//	    fmt.Println(d.Format(src))
//	}
//	for _, tok := range script.Tokens {
//	    fmt.Println(tok.Kind, tok.Text(src))
//	}
package kqlparser
