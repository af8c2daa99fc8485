package assistant

import (
	"fmt"
	"strings"

	"codeberg.org/semtools/sparqld/internal/llm"
	"codeberg.org/semtools/sparqld/internal/store"
)

// Graph is the assistant's view of the loaded data.
type Graph interface {
	TripleCount() int
	SampleTriples(max int) []store.Triple
	Prefixes(max int) []store.Prefix
}

// Task selects which instructional template frames the graph summary.
type Task string

const (
	TaskInterpret Task = "interpret"
	TaskGenerate  Task = "generate"
	TaskGeneral   Task = "general"
)

const (
	maxSampleTriples  = 10
	maxSamplePrefixes = 10
)

// BuildSystemMessage produces the system message for one task, grounded
// in the current graph snapshot. The graph is process-wide mutable
// state, so the summary is rebuilt on every call and never cached.
func BuildSystemMessage(g Graph, task Task) llm.Message {
	graphContext := buildGraphContext(g)

	var prompt string

	switch task {
	case TaskInterpret:
		prompt = fmt.Sprintf(interpretTemplate, graphContext)
	case TaskGenerate:
		prompt = fmt.Sprintf(generateTemplate, graphContext)
	default:
		prompt = fmt.Sprintf(generalTemplate, graphContext)
	}

	return llm.Message{Role: "system", Content: prompt}
}

// summarizes the graph: triple count, a bounded triple sample, and a
// bounded prefix list rendered as PREFIX declarations
func buildGraphContext(g Graph) string {
	parts := []string{
		fmt.Sprintf("The RDF graph contains %d triples.", g.TripleCount()),
	}

	samples := g.SampleTriples(maxSampleTriples)
	if len(samples) > 0 {
		parts = append(parts, "Sample triples:")
		for _, t := range samples {
			parts = append(parts, fmt.Sprintf("  %s %s %s", t.Subj.Value, t.Pred.Value, t.Obj.Value))
		}
	}

	prefixes := g.Prefixes(maxSamplePrefixes)
	if len(prefixes) > 0 {
		parts = append(parts, "Available namespaces:")
		for _, p := range prefixes {
			if p.Prefix == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("  PREFIX %s: <%s>", p.Prefix, p.URI))
		}
	}

	return strings.Join(parts, "\n")
}

const interpretTemplate = `You are an expert SPARQL assistant. Your task is to explain SPARQL queries in clear, natural language.

Graph Context:
%s

When explaining a query:
1. Describe what the query is trying to find/retrieve
2. Explain any filters, conditions, or patterns used
3. Mention the expected result format (SELECT, ASK, CONSTRUCT, etc.)
4. Keep explanations clear and accessible to users with varying SPARQL knowledge

Be concise but comprehensive in your explanations.`

const generateTemplate = `You are an expert SPARQL assistant. Your task is to generate SPARQL queries based on natural language descriptions.

Graph Context:
%s

When generating queries:
1. Use appropriate prefixes from the available namespaces
2. Create efficient and correct SPARQL syntax
3. Include relevant LIMIT clauses when appropriate
4. Consider the actual structure and content of the graph
5. If modifying an existing query, preserve its structure when possible

Always return valid SPARQL that works with the provided graph structure.`

const generalTemplate = `You are an expert SPARQL assistant helping users work with RDF data and SPARQL queries.

Graph Context:
%s

You can help with:
1. Explaining SPARQL queries in natural language
2. Generating SPARQL queries from descriptions
3. Modifying and improving existing queries
4. Answering questions about SPARQL syntax and best practices
5. Providing guidance on working with RDF data

Always provide practical, accurate assistance focused on SPARQL and RDF concepts.`
