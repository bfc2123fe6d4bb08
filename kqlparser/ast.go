package kqlparser

// NodeKind identifies the type of a syntax tree node.
type NodeKind int

const (
	NodeToken     NodeKind = iota // leaf wrapping a single token
	NodeStatement                 // run of elements up to and including ';'
	NodeComposite                 // dotted name chain, e.g. a.b.c
	NodeParens                    // ( ... )
	NodeBraces                    // { ... }
	NodeBrackets                  // [ ... ]
	NodeError                     // malformed construct kept for recovery
)

var nodeNames = map[NodeKind]string{
	NodeToken:     "token",
	NodeStatement: "statement",
	NodeComposite: "composite identifier",
	NodeParens:    "parens",
	NodeBraces:    "braces",
	NodeBrackets:  "brackets",
	NodeError:     "error",
}

func (k NodeKind) String() string {
	if name, ok := nodeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is a syntax tree node. Leaf nodes wrap a single token; interior
// nodes span their children. From and To are byte offsets into the
// source, To exclusive.
type Node struct {
	Kind     NodeKind
	From, To int
	Token    Token // set on NodeToken leaves
	Children []*Node
	Unclosed bool // set on bracket groups missing their closing token
}

// Leaf reports whether the node wraps a single token.
func (n *Node) Leaf() bool { return n.Kind == NodeToken }

// Text returns the source text the node spans.
func (n *Node) Text(src []byte) string {
	return string(src[n.From:n.To])
}

// Walk calls fn for n and each descendant in depth-first order. fn
// returning false prunes the subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Script is the parse result for a complete source buffer.
type Script struct {
	Source     []byte
	Statements []*Node
	Tokens     []Token // full token stream, trivia included
	Diags      []Diagnostic
}

// NodeAt returns the innermost node whose span contains pos, or nil when
// pos falls outside every statement.
func (s *Script) NodeAt(pos int) *Node {
	var found *Node
	for _, stmt := range s.Statements {
		Walk(stmt, func(n *Node) bool {
			if pos < n.From || pos >= n.To {
				return false
			}
			found = n
			return true
		})
	}
	return found
}

// TokenAt returns the token whose span contains pos and true, or a zero
// token and false. Trivia tokens count.
func (s *Script) TokenAt(pos int) (Token, bool) {
	for _, tok := range s.Tokens {
		if pos >= tok.From && pos < tok.To {
			return tok, true
		}
	}
	return Token{}, false
}
