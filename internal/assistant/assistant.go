// Package assistant orchestrates the AI layer: it frames conversations
// with a live graph summary, routes them through the provider registry,
// and mines SPARQL queries out of the responses.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/semtools/sparqld/internal/llm"
)

// Generator runs one completion against a resolved provider and
// reports which provider served it. *llm.Registry satisfies this.
type Generator interface {
	Generate(ctx context.Context, requested llm.Provider, messages []llm.Message) (string, llm.Provider, error)
}

// Assistant ties the provider registry to the loaded graph.
type Assistant struct {
	llm   Generator
	graph Graph
}

// New creates an assistant over a generator and a graph.
func New(gen Generator, graph Graph) *Assistant {
	return &Assistant{llm: gen, graph: graph}
}

// ChatRequest is one conversational turn from the user.
type ChatRequest struct {
	Message      string
	CurrentQuery string
	Provider     llm.Provider
	History      []llm.Message
}

// Result is the assistant's answer to any task.
type Result struct {
	Response       string
	SuggestedQuery string
	Provider       llm.Provider
}

// Chat runs a free-form conversational turn. When the user's message
// looks like a request for a query, the response is mined for one and
// surfaced as SuggestedQuery.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (*Result, error) {
	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, BuildSystemMessage(a.graph, TaskGeneral))
	messages = append(messages, req.History...)

	var parts []string
	if req.CurrentQuery != "" {
		parts = append(parts, fmt.Sprintf("Current query:\n```sparql\n%s\n```", req.CurrentQuery))
	}
	parts = append(parts, "User message: "+req.Message)

	messages = append(messages, llm.Message{Role: "user", Content: strings.Join(parts, "\n\n")})

	text, used, err := a.llm.Generate(ctx, req.Provider, messages)
	if err != nil {
		return nil, err
	}

	result := &Result{Response: text, Provider: used}

	if wantsQuery(req.Message) {
		if query, ok := ExtractQuery(text); ok {
			result.SuggestedQuery = query
		}
	}

	return result, nil
}

// Interpret explains a SPARQL query in natural language.
func (a *Assistant) Interpret(ctx context.Context, query string, provider llm.Provider) (*Result, error) {
	messages := []llm.Message{
		BuildSystemMessage(a.graph, TaskInterpret),
		{Role: "user", Content: fmt.Sprintf("Please explain this SPARQL query:\n\n```sparql\n%s\n```", query)},
	}

	text, used, err := a.llm.Generate(ctx, provider, messages)
	if err != nil {
		return nil, err
	}

	return &Result{Response: text, Provider: used}, nil
}

// GenerateQuery turns a natural-language description into a SPARQL
// query, optionally modifying an existing one.
func (a *Assistant) GenerateQuery(ctx context.Context, description, currentQuery string, provider llm.Provider) (*Result, error) {
	user := "Generate a SPARQL query for: " + description
	if currentQuery != "" {
		user += fmt.Sprintf("\n\nCurrent query (modify if needed):\n```sparql\n%s\n```", currentQuery)
	}

	messages := []llm.Message{
		BuildSystemMessage(a.graph, TaskGenerate),
		{Role: "user", Content: user},
	}

	text, used, err := a.llm.Generate(ctx, provider, messages)
	if err != nil {
		return nil, err
	}

	result := &Result{Response: text, Provider: used}

	if query, ok := ExtractQuery(text); ok {
		result.SuggestedQuery = query
	}

	return result, nil
}

// query-ish words that make a chat turn eligible for query mining
var queryIntentWords = []string{"query", "select", "find", "show", "get", "list"}

func wantsQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range queryIntentWords {
		if strings.Contains(lower, w) {
			return true
		}
	}

	return false
}
