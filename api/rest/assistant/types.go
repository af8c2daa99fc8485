package assistant

// conversation message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request payload for a conversational turn
type ChatRequest struct {
	Message             string    `json:"message" binding:"required"`
	CurrentQuery        string    `json:"current_query,omitempty"`
	Provider            string    `json:"provider,omitempty"` // "openai" or "anthropic"
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

// request payload for query interpretation
type InterpretRequest struct {
	Query    string `json:"query" binding:"required"`
	Provider string `json:"provider,omitempty"`
}

// request payload for query generation
type GenerateRequest struct {
	Description  string `json:"description" binding:"required"`
	CurrentQuery string `json:"current_query,omitempty"`
	Provider     string `json:"provider,omitempty"`
}

// response payload shared by chat, interpret and generate
type ChatResponse struct {
	Response       string `json:"response"`
	SuggestedQuery string `json:"suggested_query,omitempty"`
	ProviderUsed   string `json:"provider_used"`
}

// response payload for the AI status endpoint
type StatusResponse struct {
	Enabled         bool     `json:"enabled"`
	Providers       []string `json:"providers"`
	DefaultProvider string   `json:"default_provider,omitempty"`
	Message         string   `json:"message"`
}
