package assistant

import (
	"github.com/gin-gonic/gin"

	assistantcore "codeberg.org/semtools/sparqld/internal/assistant"
	"codeberg.org/semtools/sparqld/internal/llm"
	"codeberg.org/semtools/sparqld/internal/middleware"
)

// completions are expensive, keep the assistant surface rate limited
const rateLimitFormat = "30-M"

func RegisterRoutes(router *gin.RouterGroup, svc *assistantcore.Assistant, registry *llm.Registry) {
	group := router.Group("/assistant")
	group.Use(middleware.RateLimit(rateLimitFormat))
	{
		group.POST("/chat", ChatHandler(svc, registry))
		group.POST("/interpret", InterpretHandler(svc, registry))
		group.POST("/generate", GenerateHandler(svc, registry))
		group.GET("/status", StatusHandler(registry))
	}
}
