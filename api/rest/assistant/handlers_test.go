package assistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assistantcore "codeberg.org/semtools/sparqld/internal/assistant"
	"codeberg.org/semtools/sparqld/internal/config"
	"codeberg.org/semtools/sparqld/internal/llm"
	"codeberg.org/semtools/sparqld/internal/store"
)

func setupRouter(t *testing.T, cfg config.AIConfig) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	registry := llm.NewRegistry(cfg)
	svc := assistantcore.New(registry, store.New())

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), svc, registry)

	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func disabledConfig() config.AIConfig {
	return config.AIConfig{Enabled: true, DefaultProvider: "anthropic"}
}

func enabledConfig() config.AIConfig {
	return config.AIConfig{
		Enabled:         true,
		DefaultProvider: "anthropic",
		Anthropic:       config.ProviderConfig{APIKey: "sk-ant-test"},
		MaxTokens:       2000,
		Temperature:     0.1,
	}
}

func TestChatUnavailableWithoutProviders(t *testing.T) {
	router := setupRouter(t, disabledConfig())

	for _, path := range []string{"/api/v1/assistant/chat", "/api/v1/assistant/interpret", "/api/v1/assistant/generate"} {
		w := postJSON(router, path, `{"message": "hi", "query": "ASK {}", "description": "x"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "path %s", path)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "service_unavailable", resp["error"])
	}
}

func TestChatValidation(t *testing.T) {
	router := setupRouter(t, enabledConfig())

	w := postJSON(router, "/api/v1/assistant/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing message must fail binding")

	w = postJSON(router, "/api/v1/assistant/chat", `{"message": "hi", "provider": "gemini"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp["error"])
}

func TestInterpretValidation(t *testing.T) {
	router := setupRouter(t, enabledConfig())

	w := postJSON(router, "/api/v1/assistant/interpret", `{"provider": "anthropic"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing query must fail binding")
}

func TestGenerateValidation(t *testing.T) {
	router := setupRouter(t, enabledConfig())

	w := postJSON(router, "/api/v1/assistant/generate", `{"current_query": "SELECT ?s WHERE { ?s ?p ?o }"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing description must fail binding")
}

func TestStatusDisabled(t *testing.T) {
	router := setupRouter(t, disabledConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assistant/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Enabled)
	assert.Empty(t, resp.Providers)
	assert.Empty(t, resp.DefaultProvider)
	assert.Equal(t, "AI features are disabled", resp.Message)
}

func TestStatusEnabled(t *testing.T) {
	router := setupRouter(t, enabledConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assistant/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Enabled)
	assert.Equal(t, []string{"anthropic"}, resp.Providers)
	assert.Equal(t, "anthropic", resp.DefaultProvider)
	assert.Equal(t, "1 AI provider(s) available", resp.Message)
}
