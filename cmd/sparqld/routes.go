package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	assistantapi "codeberg.org/semtools/sparqld/api/rest/assistant"
	"codeberg.org/semtools/sparqld/api/rest/health"
	sparqlapi "codeberg.org/semtools/sparqld/api/rest/sparql"
	assistantcore "codeberg.org/semtools/sparqld/internal/assistant"
	"codeberg.org/semtools/sparqld/web"
)

// sets up all API routes and middleware
func registerRoutes(router *gin.Engine, srv *server) {
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})

	router.GET("/health", health.Handler(srv.store))

	sparqlapi.RegisterRoutes(router, srv.store)

	svc := assistantcore.New(srv.registry, srv.store)

	api := router.Group("/api/v1")
	{
		assistantapi.RegisterRoutes(api, svc, srv.registry)
	}
}
