package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySelect(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`PREFIX foaf: <http://xmlns.com/foaf/0.1/>
SELECT ?name WHERE { ?person foaf:name ?name }`)
	require.NoError(t, err)

	assert.Equal(t, FormSelect, result.Form)
	assert.Equal(t, []string{"name"}, result.Vars)

	names := make([]string, 0, len(result.Bindings))
	for _, row := range result.Bindings {
		names = append(names, row["name"].Value)
	}

	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
}

func TestQuerySelectStar(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`SELECT * WHERE { ?s ?p ?o }`)
	require.NoError(t, err)

	assert.Equal(t, []string{"s", "p", "o"}, result.Vars)
	assert.Len(t, result.Bindings, 5)
}

func TestQueryUsesStorePrefixes(t *testing.T) {
	s := loadTestGraph(t)

	// ex: and foaf: come from the loaded file, no PREFIX needed
	result, err := s.Query(`SELECT ?friend WHERE { ex:alice foaf:knows ?friend }`)
	require.NoError(t, err)

	require.Len(t, result.Bindings, 1)
	assert.Equal(t, "http://example.org/bob", result.Bindings[0]["friend"].Value)
	assert.Equal(t, TermIRI, result.Bindings[0]["friend"].Kind)
}

func TestQueryPrefixOverridesStore(t *testing.T) {
	s := loadTestGraph(t)

	// a query-local PREFIX wins over the store binding
	result, err := s.Query(`PREFIX ex: <http://other.example/>
SELECT ?o WHERE { ex:alice ?p ?o }`)
	require.NoError(t, err)

	assert.Empty(t, result.Bindings)
}

func TestQueryRDFTypeShorthand(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`SELECT DISTINCT ?s WHERE { ?s a foaf:Person }`)
	require.NoError(t, err)

	assert.Len(t, result.Bindings, 2)
}

func TestQueryDistinct(t *testing.T) {
	s := loadTestGraph(t)

	plain, err := s.Query(`SELECT ?p WHERE { ?s ?p ?o }`)
	require.NoError(t, err)
	assert.Len(t, plain.Bindings, 5)

	distinct, err := s.Query(`SELECT DISTINCT ?p WHERE { ?s ?p ?o }`)
	require.NoError(t, err)
	assert.Len(t, distinct.Bindings, 3)
}

func TestQueryLimit(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`SELECT ?s WHERE { ?s ?p ?o } LIMIT 2`)
	require.NoError(t, err)

	assert.Len(t, result.Bindings, 2)
}

func TestQueryLiteralMatch(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`SELECT ?who WHERE { ?who foaf:name "Alice" }`)
	require.NoError(t, err)

	require.Len(t, result.Bindings, 1)
	assert.Equal(t, "http://example.org/alice", result.Bindings[0]["who"].Value)
}

func TestQueryJoin(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`SELECT ?name WHERE {
  ex:alice foaf:knows ?friend .
  ?friend foaf:name ?name .
}`)
	require.NoError(t, err)

	require.Len(t, result.Bindings, 1)
	assert.Equal(t, "Bob", result.Bindings[0]["name"].Value)
}

func TestQueryAsk(t *testing.T) {
	s := loadTestGraph(t)

	yes, err := s.Query(`ASK { ex:alice foaf:knows ex:bob }`)
	require.NoError(t, err)
	assert.Equal(t, FormAsk, yes.Form)
	assert.True(t, yes.Bool)

	no, err := s.Query(`ASK { ex:bob foaf:knows ex:alice }`)
	require.NoError(t, err)
	assert.False(t, no.Bool)
}

func TestQueryComments(t *testing.T) {
	s := loadTestGraph(t)

	result, err := s.Query(`# count the people
SELECT ?s WHERE {
  ?s a foaf:Person . # typed subjects only
}`)
	require.NoError(t, err)

	assert.Len(t, result.Bindings, 2)
}

func TestQueryUnsupportedForms(t *testing.T) {
	s := loadTestGraph(t)

	for query, want := range map[string]string{
		`CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }`:               "CONSTRUCT queries are not supported",
		`DESCRIBE <http://example.org/alice>`:                     "DESCRIBE queries are not supported",
		`SELECT ?s WHERE { ?s ?p ?o FILTER(?s = ex:alice) }`:      "FILTER is not supported",
		`SELECT ?s WHERE { ?s ?p ?o OPTIONAL { ?s foaf:name ?n }}`: "OPTIONAL is not supported",
	} {
		_, err := s.Query(query)
		assert.ErrorContains(t, err, want, "query: %s", query)
	}
}

func TestQueryParseErrors(t *testing.T) {
	s := loadTestGraph(t)

	for _, query := range []string{
		``,
		`SELECT WHERE { ?s ?p ?o }`,
		`SELECT ?s { ?s ?p ?o`,
		`SELECT ?s WHERE { ?s ?p ?o } LIMIT ten`,
		`SELECT ?s WHERE { unknown:thing ?p ?o }`,
		`FROB ?s WHERE { ?s ?p ?o }`,
	} {
		_, err := s.Query(query)
		assert.Error(t, err, "query: %s", query)
	}
}

func TestQueryUnknownPrefix(t *testing.T) {
	s := loadTestGraph(t)

	_, err := s.Query(`SELECT ?o WHERE { nope:thing ?p ?o }`)
	assert.ErrorContains(t, err, `unknown prefix "nope"`)
}
