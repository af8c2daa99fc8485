package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/semtools/sparqld/internal/store"
)

// Response represents the health check response
type Response struct {
	Status  string `json:"status"`
	Triples int    `json:"triples"`
}

// reports liveness and the size of the loaded graph
func Handler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:  "healthy",
			Triples: st.TripleCount(),
		})
	}
}
