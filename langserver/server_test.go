package langserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_GetDialects(t *testing.T) {
	handler := NewServer().Handler()

	req := httptest.NewRequest("GET", "/v1/dialects", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dialectsResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Contains(t, resp.Dialects, "standard")
	assert.Contains(t, resp.Dialects, "mysql")
	assert.Contains(t, resp.Dialects, "postgresql")
}

func TestServer_PostTokenize(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "select 1;", "dialect": "mysql"}`
	req := httptest.NewRequest("POST", "/v1/tokenize", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp tokenizeResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 4)
	assert.Equal(t, "keyword", resp.Tokens[0].Kind)
	assert.Equal(t, "select", resp.Tokens[0].Text)
	assert.Equal(t, 0, resp.Tokens[0].From)
	assert.Equal(t, 6, resp.Tokens[0].To)
	assert.Equal(t, "number", resp.Tokens[2].Kind)
	assert.Equal(t, "punctuation", resp.Tokens[3].Tag)
}

func TestServer_PostTokenizeDefaultsToStandard(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "x"}`
	req := httptest.NewRequest("POST", "/v1/tokenize", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp tokenizeResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 1)
	assert.Equal(t, "identifier", resp.Tokens[0].Kind)
}

func TestServer_PostTokenizeUnknownDialect(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "x", "dialect": "clippy"}`
	req := httptest.NewRequest("POST", "/v1/tokenize", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown dialect")
}

func TestServer_PostTokenizeInvalidBody(t *testing.T) {
	handler := NewServer().Handler()

	req := httptest.NewRequest("POST", "/v1/tokenize", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_PostParse(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "select (a;"}`
	req := httptest.NewRequest("POST", "/v1/parse", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp parseResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	require.Len(t, resp.Script.Statements, 1)

	stmt := resp.Script.Statements[0]
	assert.Equal(t, "statement", stmt.Kind)
	require.Len(t, stmt.Children, 3)
	assert.Equal(t, "parens", stmt.Children[1].Kind)
	assert.True(t, stmt.Children[1].Unclosed)

	require.Len(t, resp.Diagnostics, 1)
	assert.Contains(t, resp.Diagnostics[0].Message, "unclosed")
	assert.Equal(t, 1, resp.Diagnostics[0].Line)
	assert.Equal(t, 8, resp.Diagnostics[0].Column)
}

func TestServer_PostParseLeavesCarryTokens(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "a;"}`
	req := httptest.NewRequest("POST", "/v1/parse", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp parseResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	require.Len(t, resp.Script.Statements, 1)

	leaf := resp.Script.Statements[0].Children[0]
	require.NotNil(t, leaf.Token)
	assert.Equal(t, "a", leaf.Token.Text)
	assert.Equal(t, "identifier", leaf.Token.Kind)
}

func TestServer_PostComplete(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "select users.", "pos": 13, "schema": {"users": ["id", "name"]}}`
	req := httptest.NewRequest("POST", "/v1/complete", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp completeResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, 13, resp.From)
	assert.Equal(t, 13, resp.To)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, itemJSON{Label: "id", Kind: "column"}, resp.Items[0])
	assert.Equal(t, itemJSON{Label: "name", Kind: "column"}, resp.Items[1])
}

func TestServer_PostCompleteKeywords(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "sel", "pos": 3, "dialect": "mysql"}`
	req := httptest.NewRequest("POST", "/v1/complete", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp completeResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	labels := make([]string, len(resp.Items))
	for i, item := range resp.Items {
		labels[i] = item.Label
	}
	assert.Contains(t, labels, "select")
}

func TestServer_PostCompletePosOutOfRange(t *testing.T) {
	handler := NewServer().Handler()

	reqBody := `{"source": "ab", "pos": 17}`
	req := httptest.NewRequest("POST", "/v1/complete", strings.NewReader(reqBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "pos out of range")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	handler := NewServer().Handler()

	req := httptest.NewRequest("GET", "/v1/tokenize", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
