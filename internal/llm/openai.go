package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const (
	openaiChatURL      = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4"

	// the Chat API treats 1.0 as its neutral temperature; the field is
	// omitted from requests only at exactly that value
	openaiNeutralTemperature = 1.0
)

// rate limiter for OpenAI API calls (50 requests/second with burst capacity of 10)
var openaiRateLimiter = rate.NewLimiter(50, 10)

// OpenAI implements Client for the OpenAI Chat Completions API.
//
// The full message sequence is sent as-is, including inline system
// messages. Some models reject the temperature parameter outright; when
// the vendor error text mentions "temperature" and the parameter was
// sent, the call is retried exactly once with it removed. The substring
// match on vendor error text is fragile but kept deliberately — the
// vendor signals the rejection no other way.
type OpenAI struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI client.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}

	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAI{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openaiChatURL,
		httpClient: sharedHTTPClient,
	}, nil
}

func (o *OpenAI) Model() string {
	return o.model
}

func (o *OpenAI) Available() bool {
	return o.apiKey != ""
}

type openaiRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
	Temperature         *float64  `json:"temperature,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("openai requires at least one message")
	}

	body := openaiRequest{
		Model:               o.model,
		Messages:            req.Messages,
		MaxCompletionTokens: req.MaxTokens,
	}

	temperature := defaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	sentTemperature := temperature != openaiNeutralTemperature
	if sentTemperature {
		body.Temperature = &temperature
	}

	text, err := o.call(ctx, body)

	// temperature quirk: retry once with the parameter removed,
	// preserving everything else
	if err != nil && sentTemperature && strings.Contains(err.Error(), "temperature") {
		body.Temperature = nil
		text, err = o.call(ctx, body)
	}

	if err != nil {
		return "", &TransportError{Provider: ProviderOpenAI, Err: err}
	}

	return text, nil
}

func (o *OpenAI) call(ctx context.Context, body openaiRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	// rate limiting
	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty message content in response")
	}

	return text, nil
}
