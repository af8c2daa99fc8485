package sparql

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/semtools/sparqld/internal/errors"
	"codeberg.org/semtools/sparqld/internal/logger"
	"codeberg.org/semtools/sparqld/internal/store"
)

// QueryHandler godoc
// @Summary Execute a SPARQL query
// @Description Evaluates a SPARQL query against the loaded graph. GET takes the query as a URL parameter, POST as a form field.
// @Tags sparql
// @Accept x-www-form-urlencoded
// @Produce json
// @Param query query string false "SPARQL query (GET)"
// @Param query formData string false "SPARQL query (POST)"
// @Success 200 {object} SelectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /sparql [post]
func QueryHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query")
		if c.Request.Method == http.MethodPost {
			if form := c.PostForm("query"); form != "" {
				query = form
			}
		}

		if query == "" {
			errors.BadRequest(c, "no SPARQL query provided", nil)
			return
		}

		logger.Info("executing SPARQL query", "query", truncate(query, 100))

		result, err := st.Query(query)
		if err != nil {
			errors.QueryError(c, err)
			return
		}

		if result.Form == store.FormAsk {
			c.JSON(http.StatusOK, AskResponse{Boolean: result.Bool})
			return
		}

		bindings := make([]map[string]Binding, 0, len(result.Bindings))
		for _, row := range result.Bindings {
			binding := make(map[string]Binding, len(row))
			for name, term := range row {
				binding[name] = Binding{Type: bindingType(term), Value: term.Value}
			}
			bindings = append(bindings, binding)
		}

		c.JSON(http.StatusOK, SelectResponse{
			Head:    Head{Vars: result.Vars},
			Results: Results{Bindings: bindings},
		})
	}
}

// InfoHandler godoc
// @Summary Graph information
// @Description Returns the triple count and bound namespaces of the loaded graph
// @Tags sparql
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /info [get]
func InfoHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		namespaces := make(map[string]string)
		for _, p := range st.Prefixes(0) {
			namespaces[p.Prefix] = p.URI
		}

		c.JSON(http.StatusOK, InfoResponse{
			TriplesCount: st.TripleCount(),
			Namespaces:   namespaces,
		})
	}
}

// PrefixesHandler godoc
// @Summary Prefix declarations
// @Description Returns the graph's prefixes as ready-to-use PREFIX declarations
// @Tags sparql
// @Produce json
// @Success 200 {object} PrefixesResponse
// @Router /prefixes [get]
func PrefixesHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		declarations := make([]string, 0)
		for _, p := range st.Prefixes(0) {
			if p.Prefix == "" {
				continue
			}
			declarations = append(declarations, "PREFIX "+p.Prefix+": <"+p.URI+">")
		}

		c.JSON(http.StatusOK, PrefixesResponse{
			Prefixes:       declarations,
			SPARQLPrefixes: strings.Join(declarations, "\n"),
		})
	}
}

func bindingType(t store.Term) string {
	switch t.Kind {
	case store.TermIRI:
		return "uri"
	case store.TermBlank:
		return "bnode"
	default:
		return "literal"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
