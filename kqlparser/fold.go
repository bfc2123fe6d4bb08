package kqlparser

import "bytes"

// Span is a half-open byte range within a source buffer.
type Span struct {
	From, To int
}

// FoldRanges returns the foldable regions of a script: the interiors of
// closed bracket groups that span more than one line, in tree order.
func FoldRanges(script *Script) []Span {
	var spans []Span
	for _, stmt := range script.Statements {
		Walk(stmt, func(n *Node) bool {
			switch n.Kind {
			case NodeParens, NodeBraces, NodeBrackets:
				if n.Unclosed {
					return true
				}
				open := n.Children[0]
				closer := n.Children[len(n.Children)-1]
				if bytes.IndexByte(script.Source[open.To:closer.From], '\n') >= 0 {
					spans = append(spans, Span{From: open.To, To: closer.From})
				}
			}
			return true
		})
	}
	return spans
}
