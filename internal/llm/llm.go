// Package llm provides a uniform client abstraction over AI chat
// completion vendors.
//
// Clients are constructed once from configuration and held by a
// Registry that resolves which vendor serves a request. Clients keep
// no per-request state and are safe for concurrent use.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Provider identifies a supported AI vendor. It is used as a typed key
// rather than a free string so typos are rejected up front instead of
// silently falling back to another vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// ParseProvider validates a provider tag from user input. The empty
// string is valid and means "no preference".
func ParseProvider(s string) (Provider, error) {
	switch s {
	case "":
		return "", nil
	case string(ProviderOpenAI):
		return ProviderOpenAI, nil
	case string(ProviderAnthropic):
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unknown AI provider %q (supported: openai, anthropic)", s)
	}
}

// Message represents a single conversation turn.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Request carries one generation call.
type Request struct {
	Messages    []Message
	MaxTokens   int      // 0 means the vendor default
	Temperature *float64 // nil means the vendor default
}

// Client is the interface all vendor backends implement.
type Client interface {
	// Generate sends a conversation and returns the assistant's reply.
	// A successful call never returns empty text.
	Generate(ctx context.Context, req Request) (string, error)

	// Available reports whether the client holds a usable credential.
	// It is a local readiness check, not a network probe.
	Available() bool

	// Model returns the configured model name for display.
	Model() string
}

// ErrNoProvider is returned by resolution when no client is registered.
var ErrNoProvider = errors.New("no AI providers available; configure an API key")

// TransportError wraps a failed vendor call with the vendor identity.
type TransportError struct {
	Provider Provider
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

const (
	defaultMaxTokens   = 2000
	defaultTemperature = 0.1
)

// shared HTTP client for vendor API calls
var sharedHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}
