package sparql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/semtools/sparqld/internal/store"
)

const testTurtle = `@prefix ex: <http://example.org/> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .

ex:alice a foaf:Person ;
    foaf:name "Alice" ;
    foaf:knows ex:bob .

ex:bob a foaf:Person ;
    foaf:name "Bob" .
`

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "data.ttl")
	require.NoError(t, os.WriteFile(path, []byte(testTurtle), 0o600))

	st := store.New()
	_, err := st.LoadFile(path, "")
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router, st)

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestQueryMissing(t *testing.T) {
	router := setupRouter(t)

	for _, w := range []*httptest.ResponseRecorder{
		get(router, "/sparql"),
		postForm(router, "/sparql", url.Values{}),
	} {
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bad_request", resp["error"])
	}
}

func TestQuerySelectPost(t *testing.T) {
	router := setupRouter(t)

	w := postForm(router, "/sparql", url.Values{
		"query": {`SELECT ?name WHERE { ?p foaf:name ?name }`},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, []string{"name"}, resp.Head.Vars)
	require.Len(t, resp.Results.Bindings, 2)

	names := make([]string, 0, 2)
	for _, row := range resp.Results.Bindings {
		binding := row["name"]
		assert.Equal(t, "literal", binding.Type)
		names = append(names, binding.Value)
	}

	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
}

func TestQuerySelectGet(t *testing.T) {
	router := setupRouter(t)

	query := url.QueryEscape(`SELECT ?friend WHERE { ex:alice foaf:knows ?friend }`)
	w := get(router, "/sparql?query="+query)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Results.Bindings, 1)
	binding := resp.Results.Bindings[0]["friend"]
	assert.Equal(t, "uri", binding.Type)
	assert.Equal(t, "http://example.org/bob", binding.Value)
}

func TestQueryAsk(t *testing.T) {
	router := setupRouter(t)

	w := postForm(router, "/sparql", url.Values{
		"query": {`ASK { ex:alice foaf:knows ex:bob }`},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Boolean)
}

func TestQueryErrorResponse(t *testing.T) {
	router := setupRouter(t)

	w := postForm(router, "/sparql", url.Values{
		"query": {`CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }`},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "query_error", resp["error"])
	assert.Contains(t, resp["details"], "not supported")
}

func TestInfo(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/info")
	require.Equal(t, http.StatusOK, w.Code)

	var resp InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 5, resp.TriplesCount)
	assert.Equal(t, "http://example.org/", resp.Namespaces["ex"])
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", resp.Namespaces["foaf"])
}

func TestPrefixes(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/prefixes")
	require.Equal(t, http.StatusOK, w.Code)

	var resp PrefixesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Contains(t, resp.Prefixes, "PREFIX ex: <http://example.org/>")
	assert.Contains(t, resp.Prefixes, "PREFIX foaf: <http://xmlns.com/foaf/0.1/>")
	assert.Equal(t, strings.Join(resp.Prefixes, "\n"), resp.SPARQLPrefixes)
}
