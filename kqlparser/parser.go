package kqlparser

import "fmt"

// Parse tokenizes src and groups the tokens into statements. Parsing
// never fails: structural problems are recorded as diagnostics on the
// returned Script. A nil dialect selects StandardKQL.
func Parse(src []byte, dialect *Dialect) *Script {
	tokens := Tokenize(src, dialect)
	p := &parser{src: src, tokens: tokens}
	script := &Script{Source: src, Tokens: tokens}
	for !p.atEnd() {
		script.Statements = append(script.Statements, p.parseStatement())
	}
	script.Diags = p.diags
	return script
}

type parser struct {
	src    []byte
	tokens []Token
	pos    int // index into tokens
	diags  []Diagnostic
}

func (p *parser) skipTrivia() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind.IsTrivia() {
		p.pos++
	}
}

func (p *parser) atEnd() bool {
	p.skipTrivia()
	return p.pos >= len(p.tokens)
}

// peek returns the next significant token without consuming it. At the
// end of the stream it returns a zero-width EOF token.
func (p *parser) peek() Token {
	p.skipTrivia()
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF, From: len(p.src), To: len(p.src)}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) diag(from, to int, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{From: from, To: to, Message: fmt.Sprintf(format, args...)})
}

// parseStatement reads elements up to and including the terminating
// semicolon. The final statement of a script may omit it.
func (p *parser) parseStatement() *Node {
	stmt := &Node{Kind: NodeStatement}
	for !p.atEnd() {
		tok := p.peek()
		if tok.Kind == TokenSemi {
			p.next()
			stmt.Children = append(stmt.Children, leaf(tok))
			break
		}
		stmt.Children = append(stmt.Children, p.parseElement())
	}
	stmt.From = stmt.Children[0].From
	stmt.To = stmt.Children[len(stmt.Children)-1].To
	return stmt
}

func (p *parser) parseElement() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenParenL:
		return p.parseGroup(TokenParenR, NodeParens)
	case TokenBraceL:
		return p.parseGroup(TokenBraceR, NodeBraces)
	case TokenBracketL:
		return p.parseGroup(TokenBracketR, NodeBrackets)
	case TokenParenR, TokenBraceR, TokenBracketR:
		p.next()
		p.diag(tok.From, tok.To, "unmatched %s", tok.Kind)
		return &Node{Kind: NodeError, From: tok.From, To: tok.To, Children: []*Node{leaf(tok)}}
	case TokenDot, TokenIdentifier, TokenQuotedIdentifier, TokenSpecialVar:
		if n := p.parseComposite(); n != nil {
			return n
		}
		p.next()
		return leaf(tok)
	default:
		p.next()
		return leaf(tok)
	}
}

// parseGroup reads a bracketed group whose opening token is next. The
// matching closer becomes the last child. A semicolon or the end of the
// stream ends the group unclosed; the semicolon stays for the enclosing
// statement.
func (p *parser) parseGroup(closer TokenKind, kind NodeKind) *Node {
	open := p.next()
	group := &Node{Kind: kind, From: open.From, Children: []*Node{leaf(open)}}
	for {
		if p.atEnd() {
			group.Unclosed = true
			p.diag(open.From, open.To, "unclosed %s", open.Kind)
			break
		}
		tok := p.peek()
		if tok.Kind == closer {
			p.next()
			group.Children = append(group.Children, leaf(tok))
			break
		}
		if tok.Kind == TokenSemi {
			group.Unclosed = true
			p.diag(open.From, open.To, "unclosed %s", open.Kind)
			break
		}
		group.Children = append(group.Children, p.parseElement())
	}
	group.To = group.Children[len(group.Children)-1].To
	return group
}

// parseComposite assembles a dotted name chain into a single node: an
// optional leading dot, then names joined by dots. At least one interior
// dot is required; otherwise nothing is consumed and nil is returned.
// Assembly is greedy and extends as far as the chain continues.
func (p *parser) parseComposite() *Node {
	p.skipTrivia()
	mark := p.pos

	var parts []*Node
	if tok := p.peek(); tok.Kind == TokenDot {
		p.next()
		parts = append(parts, leaf(tok))
	}
	name := p.peek()
	if !name.Kind.IsName() {
		p.pos = mark
		return nil
	}
	p.next()
	parts = append(parts, leaf(name))

	pairs := 0
	for {
		p.skipTrivia()
		save := p.pos
		dot := p.peek()
		if dot.Kind != TokenDot {
			break
		}
		p.next()
		part := p.peek()
		if !part.Kind.IsName() {
			p.pos = save
			break
		}
		p.next()
		parts = append(parts, leaf(dot), leaf(part))
		pairs++
	}
	if pairs == 0 {
		p.pos = mark
		return nil
	}
	return &Node{
		Kind:     NodeComposite,
		From:     parts[0].From,
		To:       parts[len(parts)-1].To,
		Children: parts,
	}
}

func leaf(tok Token) *Node {
	return &Node{Kind: NodeToken, From: tok.From, To: tok.To, Token: tok}
}
