package kqlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldRangesMultiLineGroup(t *testing.T) {
	src := "select (\n  a,\n  b\n) from t;"
	script := Parse([]byte(src), nil)
	spans := FoldRanges(script)
	require.Len(t, spans, 1)
	assert.Equal(t, "\n  a,\n  b\n", string(script.Source[spans[0].From:spans[0].To]))
}

func TestFoldRangesSingleLine(t *testing.T) {
	script := Parse([]byte("select (a, b) from t;"), nil)
	assert.Empty(t, FoldRanges(script))
}

func TestFoldRangesNested(t *testing.T) {
	src := "f(\n g(\n  x\n )\n)"
	script := Parse([]byte(src), nil)
	spans := FoldRanges(script)
	require.Len(t, spans, 2)
	// Outer group first, inner second.
	assert.Less(t, spans[0].From, spans[1].From)
	assert.Greater(t, spans[0].To, spans[1].To)
}

func TestFoldRangesUnclosed(t *testing.T) {
	script := Parse([]byte("select (\n  a,\n  b"), nil)
	assert.Empty(t, FoldRanges(script))
}

func TestFoldRangesBraces(t *testing.T) {
	src := "{\n x\n} [\n y\n]"
	script := Parse([]byte(src), nil)
	spans := FoldRanges(script)
	require.Len(t, spans, 2)
	assert.Equal(t, "\n x\n", string(script.Source[spans[0].From:spans[0].To]))
	assert.Equal(t, "\n y\n", string(script.Source[spans[1].From:spans[1].To]))
}
