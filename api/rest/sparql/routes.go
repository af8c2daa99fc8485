package sparql

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/semtools/sparqld/internal/store"
)

func RegisterRoutes(router *gin.Engine, st *store.Store) {
	router.GET("/sparql", QueryHandler(st))
	router.POST("/sparql", QueryHandler(st))
	router.GET("/info", InfoHandler(st))
	router.GET("/prefixes", PrefixesHandler(st))
}
