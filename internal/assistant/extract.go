package assistant

import (
	"regexp"
	"strings"
)

// Extraction rules, tried in order. Fenced blocks win over bare
// keyword matches; a bare match runs to the first blank line or the
// end of the text.
var extractionRules = []*regexp.Regexp{
	regexp.MustCompile("(?is)```sparql[ \t]*\n(.*?)\n```"),
	regexp.MustCompile("(?is)```[ \t]*\n(.*?)\n```"),
	regexp.MustCompile(`(?is)\b(SELECT\b.*?)(?:\n\s*\n|\z)`),
	regexp.MustCompile(`(?is)\b(ASK\b.*?)(?:\n\s*\n|\z)`),
	regexp.MustCompile(`(?is)\b(CONSTRUCT\b.*?)(?:\n\s*\n|\z)`),
	regexp.MustCompile(`(?is)\b(DESCRIBE\b.*?)(?:\n\s*\n|\z)`),
}

var sparqlKeywords = []string{"SELECT", "WHERE", "ASK", "CONSTRUCT", "DESCRIBE"}

// ExtractQuery pulls the first plausible SPARQL query out of a model
// response. A candidate that matches a rule but contains no SPARQL
// keyword is rejected and the remaining rules are tried.
func ExtractQuery(response string) (string, bool) {
	for _, rule := range extractionRules {
		match := rule.FindStringSubmatch(response)
		if match == nil {
			continue
		}

		candidate := strings.TrimSpace(match[1])
		if candidate == "" {
			continue
		}

		if hasSPARQLKeyword(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func hasSPARQLKeyword(s string) bool {
	upper := strings.ToUpper(s)
	for _, kw := range sparqlKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}

	return false
}
