package kqlparser

import "fmt"

// Position is a human-oriented source location derived from a byte
// offset.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based byte column
	Offset int // 0-based byte offset into source
}

// PositionFor converts a byte offset into a line/column Position.
// Offsets outside the source are clamped.
func PositionFor(src []byte, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, lineStart := 1, 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Position{Line: line, Column: offset - lineStart + 1, Offset: offset}
}

// Diagnostic describes a recoverable structural problem found while
// parsing. Diagnostics never stop the parse; the malformed region stays
// in the tree.
type Diagnostic struct {
	From, To int
	Message  string
}

// Format renders the diagnostic with its line and column in src.
func (d Diagnostic) Format(src []byte) string {
	pos := PositionFor(src, d.From)
	return fmt.Sprintf("line %d, col %d: %s", pos.Line, pos.Column, d.Message)
}
