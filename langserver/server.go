// Package langserver exposes the KQL toolkit over HTTP for editor
// integrations: dialect discovery, tokenizing, parsing and completion.
package langserver

import (
	"encoding/json"
	"net/http"

	"github.com/thiagopls1/lang-kql/complete"
	"github.com/thiagopls1/lang-kql/highlight"
	"github.com/thiagopls1/lang-kql/kqlparser"
)

// Server provides the HTTP endpoints of the language service. Handlers
// are stateless; one Server serves any number of requests concurrently.
type Server struct{}

// NewServer creates a Server.
func NewServer() *Server {
	return &Server{}
}

// Handler returns an http.Handler for the language service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// GET /v1/dialects - List the predefined dialect names
	mux.HandleFunc("GET /v1/dialects", s.handleDialects)

	// POST /v1/tokenize - Token stream for a source buffer
	mux.HandleFunc("POST /v1/tokenize", s.handleTokenize)

	// POST /v1/parse - Syntax tree and diagnostics
	mux.HandleFunc("POST /v1/parse", s.handleParse)

	// POST /v1/complete - Completion proposals at a position
	mux.HandleFunc("POST /v1/complete", s.handleComplete)

	return mux
}

// dialectFor resolves a request's dialect name. An empty name selects
// the standard dialect.
func dialectFor(name string) (*kqlparser.Dialect, bool) {
	if name == "" {
		return kqlparser.StandardKQL, true
	}
	return kqlparser.DialectByName(name)
}

// dialectsResponse is the response body for listing dialects.
type dialectsResponse struct {
	Dialects []string `json:"dialects"`
}

// handleDialects handles GET /v1/dialects.
func (s *Server) handleDialects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dialectsResponse{Dialects: kqlparser.DialectNames()})
}

// sourceRequest is the request body for tokenize and parse calls.
type sourceRequest struct {
	Source  string `json:"source"`
	Dialect string `json:"dialect,omitempty"`
}

// tokenJSON is the wire form of one token.
type tokenJSON struct {
	Kind string `json:"kind"`
	Tag  string `json:"tag,omitempty"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

func tokenToJSON(src []byte, tok kqlparser.Token) tokenJSON {
	return tokenJSON{
		Kind: tok.Kind.String(),
		Tag:  string(highlight.For(tok.Kind)),
		From: tok.From,
		To:   tok.To,
		Text: tok.Text(src),
	}
}

// tokenizeResponse is the response body for tokenize calls.
type tokenizeResponse struct {
	Tokens []tokenJSON `json:"tokens"`
}

// handleTokenize handles POST /v1/tokenize.
func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	dialect, ok := dialectFor(req.Dialect)
	if !ok {
		http.Error(w, "unknown dialect: "+req.Dialect, http.StatusBadRequest)
		return
	}

	src := []byte(req.Source)
	tokens := kqlparser.Tokenize(src, dialect)
	resp := tokenizeResponse{Tokens: make([]tokenJSON, len(tokens))}
	for i, tok := range tokens {
		resp.Tokens[i] = tokenToJSON(src, tok)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// nodeJSON is the wire form of one syntax tree node.
type nodeJSON struct {
	Kind     string     `json:"kind"`
	From     int        `json:"from"`
	To       int        `json:"to"`
	Unclosed bool       `json:"unclosed,omitempty"`
	Token    *tokenJSON `json:"token,omitempty"`
	Children []nodeJSON `json:"children,omitempty"`
}

func nodeToJSON(src []byte, n *kqlparser.Node) nodeJSON {
	out := nodeJSON{Kind: n.Kind.String(), From: n.From, To: n.To, Unclosed: n.Unclosed}
	if n.Leaf() {
		tok := tokenToJSON(src, n.Token)
		out.Token = &tok
		return out
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, nodeToJSON(src, c))
	}
	return out
}

// diagnosticJSON is the wire form of one diagnostic.
type diagnosticJSON struct {
	From    int    `json:"from"`
	To      int    `json:"to"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// scriptJSON is the wire form of a parsed script.
type scriptJSON struct {
	Statements []nodeJSON `json:"statements"`
}

// parseResponse is the response body for parse calls.
type parseResponse struct {
	Script      scriptJSON       `json:"script"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

// handleParse handles POST /v1/parse.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	dialect, ok := dialectFor(req.Dialect)
	if !ok {
		http.Error(w, "unknown dialect: "+req.Dialect, http.StatusBadRequest)
		return
	}

	src := []byte(req.Source)
	script := kqlparser.Parse(src, dialect)

	resp := parseResponse{
		Script:      scriptJSON{Statements: make([]nodeJSON, len(script.Statements))},
		Diagnostics: make([]diagnosticJSON, len(script.Diags)),
	}
	for i, stmt := range script.Statements {
		resp.Script.Statements[i] = nodeToJSON(src, stmt)
	}
	for i, diag := range script.Diags {
		pos := kqlparser.PositionFor(src, diag.From)
		resp.Diagnostics[i] = diagnosticJSON{
			From:    diag.From,
			To:      diag.To,
			Line:    pos.Line,
			Column:  pos.Column,
			Message: diag.Message,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// completeRequest is the request body for completion calls.
type completeRequest struct {
	Source       string              `json:"source"`
	Pos          int                 `json:"pos"`
	Dialect      string              `json:"dialect,omitempty"`
	Schema       map[string][]string `json:"schema,omitempty"`
	Tables       []string            `json:"tables,omitempty"`
	DefaultTable string              `json:"default_table,omitempty"`
	Variables    []string            `json:"variables,omitempty"`
}

// itemJSON is the wire form of one completion item.
type itemJSON struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// completeResponse is the response body for completion calls.
type completeResponse struct {
	From  int        `json:"from"`
	To    int        `json:"to"`
	Items []itemJSON `json:"items"`
}

// handleComplete handles POST /v1/complete.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	dialect, ok := dialectFor(req.Dialect)
	if !ok {
		http.Error(w, "unknown dialect: "+req.Dialect, http.StatusBadRequest)
		return
	}

	if req.Pos < 0 || req.Pos > len(req.Source) {
		http.Error(w, "pos out of range", http.StatusBadRequest)
		return
	}

	result := complete.At([]byte(req.Source), req.Pos, dialect, complete.Options{
		Schema:       req.Schema,
		Tables:       req.Tables,
		DefaultTable: req.DefaultTable,
		Keywords:     true,
		Variables:    req.Variables,
	})

	resp := completeResponse{
		From:  result.From,
		To:    result.To,
		Items: make([]itemJSON, len(result.Items)),
	}
	for i, item := range result.Items {
		resp.Items[i] = itemJSON{Label: item.Label, Kind: item.Kind.String()}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
