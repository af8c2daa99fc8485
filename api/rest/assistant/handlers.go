package assistant

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	assistantcore "codeberg.org/semtools/sparqld/internal/assistant"
	"codeberg.org/semtools/sparqld/internal/errors"
	"codeberg.org/semtools/sparqld/internal/llm"
)

// ChatHandler godoc
// @Summary Chat with the SPARQL assistant
// @Description Conversational turn with graph context; mines a suggested query when the message asks for one
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat request"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/assistant/chat [post]
func ChatHandler(svc *assistantcore.Assistant, registry *llm.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registry.Enabled() {
			errors.ServiceUnavailable(c, "AI features are not configured")
			return
		}

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		provider, err := llm.ParseProvider(req.Provider)
		if err != nil {
			errors.BadRequest(c, "unknown provider", err)
			return
		}

		history := make([]llm.Message, 0, len(req.ConversationHistory))
		for _, msg := range req.ConversationHistory {
			if msg.Content != "" {
				history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
			}
		}

		result, err := svc.Chat(c.Request.Context(), assistantcore.ChatRequest{
			Message:      req.Message,
			CurrentQuery: req.CurrentQuery,
			Provider:     provider,
			History:      history,
		})
		if err != nil {
			respondAssistantError(c, err)
			return
		}

		c.JSON(http.StatusOK, toChatResponse(result))
	}
}

// InterpretHandler godoc
// @Summary Explain a SPARQL query
// @Description Natural-language explanation of a SPARQL query against the loaded graph
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body InterpretRequest true "Interpretation request"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/assistant/interpret [post]
func InterpretHandler(svc *assistantcore.Assistant, registry *llm.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registry.Enabled() {
			errors.ServiceUnavailable(c, "AI features are not configured")
			return
		}

		var req InterpretRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		provider, err := llm.ParseProvider(req.Provider)
		if err != nil {
			errors.BadRequest(c, "unknown provider", err)
			return
		}

		result, err := svc.Interpret(c.Request.Context(), req.Query, provider)
		if err != nil {
			respondAssistantError(c, err)
			return
		}

		c.JSON(http.StatusOK, toChatResponse(result))
	}
}

// GenerateHandler godoc
// @Summary Generate a SPARQL query
// @Description Generate a SPARQL query from a natural-language description
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generation request"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/assistant/generate [post]
func GenerateHandler(svc *assistantcore.Assistant, registry *llm.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registry.Enabled() {
			errors.ServiceUnavailable(c, "AI features are not configured")
			return
		}

		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		provider, err := llm.ParseProvider(req.Provider)
		if err != nil {
			errors.BadRequest(c, "unknown provider", err)
			return
		}

		result, err := svc.GenerateQuery(c.Request.Context(), req.Description, req.CurrentQuery, provider)
		if err != nil {
			respondAssistantError(c, err)
			return
		}

		c.JSON(http.StatusOK, toChatResponse(result))
	}
}

// StatusHandler godoc
// @Summary AI layer status
// @Description Reports whether AI features are enabled and which providers are available
// @Tags assistant
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/v1/assistant/status [get]
func StatusHandler(registry *llm.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registry.Enabled() {
			c.JSON(http.StatusOK, StatusResponse{
				Enabled:   false,
				Providers: []string{},
				Message:   "AI features are disabled",
			})
			return
		}

		available := registry.Available()
		providers := make([]string, 0, len(available))
		for _, p := range available {
			providers = append(providers, string(p))
		}

		c.JSON(http.StatusOK, StatusResponse{
			Enabled:         true,
			Providers:       providers,
			DefaultProvider: string(registry.Default()),
			Message:         fmt.Sprintf("%d AI provider(s) available", len(providers)),
		})
	}
}

func toChatResponse(result *assistantcore.Result) ChatResponse {
	return ChatResponse{
		Response:       result.Response,
		SuggestedQuery: result.SuggestedQuery,
		ProviderUsed:   string(result.Provider),
	}
}

// maps assistant failures to HTTP: missing providers are 503, vendor
// transport failures are 500
func respondAssistantError(c *gin.Context, err error) {
	if stderrors.Is(err, llm.ErrNoProvider) {
		errors.ServiceUnavailable(c, "AI features are not configured")
		return
	}

	errors.InternalError(c, "assistant request failed", err)
}
