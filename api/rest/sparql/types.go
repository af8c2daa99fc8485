package sparql

// SPARQL 1.1 Query Results JSON Format, the subset YASGUI consumes.

type Head struct {
	Vars []string `json:"vars"`
}

type Binding struct {
	Type  string `json:"type"` // "uri", "literal" or "bnode"
	Value string `json:"value"`
}

type Results struct {
	Bindings []map[string]Binding `json:"bindings"`
}

// response for SELECT queries
type SelectResponse struct {
	Head    Head    `json:"head"`
	Results Results `json:"results"`
}

// response for ASK queries
type AskResponse struct {
	Head    struct{} `json:"head"`
	Boolean bool     `json:"boolean"`
}

// response describing the loaded graph
type InfoResponse struct {
	TriplesCount int               `json:"triples_count"`
	Namespaces   map[string]string `json:"namespaces"`
}

// response carrying prefix declarations ready to paste into a query
type PrefixesResponse struct {
	Prefixes       []string `json:"prefixes"`
	SPARQLPrefixes string   `json:"sparql_prefixes"`
}
