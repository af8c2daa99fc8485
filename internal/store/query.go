package store

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The embedded evaluator covers the query subset the bundled UI needs:
// PREFIX declarations, SELECT with variable projection, DISTINCT and
// LIMIT, ASK, and basic graph patterns. CONSTRUCT, DESCRIBE, FILTER and
// the rest of the language are reported as unsupported rather than
// silently misevaluated.

// QueryForm is the query's result shape.
type QueryForm string

const (
	FormSelect QueryForm = "SELECT"
	FormAsk    QueryForm = "ASK"
)

// QueryResult holds an evaluated query.
type QueryResult struct {
	Form     QueryForm
	Vars     []string
	Bindings []map[string]Term
	Bool     bool
}

const rdfTypeIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// Query evaluates a SPARQL query against the store.
func (s *Store) Query(query string) (*QueryResult, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}

	p := &queryParser{tokens: tokens, store: s, prefixes: make(map[string]string)}

	return p.parseAndEvaluate()
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokVar
	tokIRI
	tokLiteral
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(query string) ([]token, error) {
	var tokens []token

	runes := []rune(query)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

		case r == '<':
			end := i + 1
			for end < len(runes) && runes[end] != '>' {
				end++
			}
			if end == len(runes) {
				return nil, fmt.Errorf("unterminated IRI at offset %d", i)
			}
			tokens = append(tokens, token{tokIRI, string(runes[i+1 : end])})
			i = end + 1

		case r == '"' || r == '\'':
			value, next, err := readQuoted(runes, i)
			if err != nil {
				return nil, err
			}
			i = next

			// consume a language tag or datatype annotation; the
			// evaluator matches on lexical value only
			if i < len(runes) && runes[i] == '@' {
				i++
				for i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == '-') {
					i++
				}
			} else if i+1 < len(runes) && runes[i] == '^' && runes[i+1] == '^' {
				i += 2
				if i < len(runes) && runes[i] == '<' {
					for i < len(runes) && runes[i] != '>' {
						i++
					}
					i++
				} else {
					for i < len(runes) && !unicode.IsSpace(runes[i]) && !strings.ContainsRune("{}.<>\"'", runes[i]) {
						i++
					}
				}
			}

			tokens = append(tokens, token{tokLiteral, value})

		case r == '?' || r == '$':
			end := i + 1
			for end < len(runes) && (unicode.IsLetter(runes[end]) || unicode.IsDigit(runes[end]) || runes[end] == '_') {
				end++
			}
			if end == i+1 {
				return nil, fmt.Errorf("empty variable name at offset %d", i)
			}
			tokens = append(tokens, token{tokVar, string(runes[i+1 : end])})
			i = end

		case strings.ContainsRune("{}.();,", r):
			tokens = append(tokens, token{tokPunct, string(r)})
			i++

		case unicode.IsDigit(r) || ((r == '-' || r == '+') && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			end := i + 1
			for end < len(runes) && (unicode.IsDigit(runes[end]) || runes[end] == '.') {
				end++
			}
			tokens = append(tokens, token{tokLiteral, string(runes[i:end])})
			i = end

		default:
			end := i
			for end < len(runes) && !unicode.IsSpace(runes[end]) && !strings.ContainsRune("{}<>\"'();,", runes[end]) {
				end++
			}

			if end == i {
				return nil, fmt.Errorf("unexpected character %q at offset %d", string(r), i)
			}

			word := string(runes[i:end])
			i = end

			// a trailing dot belongs to the pattern, not the name
			if len(word) > 1 && strings.HasSuffix(word, ".") {
				word = strings.TrimSuffix(word, ".")
				tokens = append(tokens, token{tokWord, word}, token{tokPunct, "."})
			} else {
				tokens = append(tokens, token{tokWord, word})
			}
		}
	}

	return tokens, nil
}

func readQuoted(runes []rune, start int) (string, int, error) {
	quote := runes[start]

	var sb strings.Builder

	i := start + 1
	for i < len(runes) {
		switch runes[i] {
		case '\\':
			if i+1 >= len(runes) {
				return "", 0, fmt.Errorf("dangling escape at offset %d", i)
			}
			switch runes[i+1] {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(runes[i+1])
			}
			i += 2
		case quote:
			return sb.String(), i + 1, nil
		default:
			sb.WriteRune(runes[i])
			i++
		}
	}

	return "", 0, fmt.Errorf("unterminated string at offset %d", start)
}

// patternTerm is one slot of a triple pattern: a variable or a concrete term.
type patternTerm struct {
	isVar bool
	name  string
	term  Term
}

type queryParser struct {
	tokens   []token
	pos      int
	store    *Store
	prefixes map[string]string
}

func (p *queryParser) parseAndEvaluate() (*QueryResult, error) {
	if err := p.parsePrefixes(); err != nil {
		return nil, err
	}

	form, err := p.expectWord()
	if err != nil {
		return nil, fmt.Errorf("expected a query form: %w", err)
	}

	switch strings.ToUpper(form) {
	case "SELECT":
		return p.parseSelect()
	case "ASK":
		return p.parseAsk()
	case "CONSTRUCT", "DESCRIBE":
		return nil, fmt.Errorf("%s queries are not supported by the embedded evaluator", strings.ToUpper(form))
	default:
		return nil, fmt.Errorf("unrecognized query form %q", form)
	}
}

func (p *queryParser) parsePrefixes() error {
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokWord || !strings.EqualFold(tok.text, "PREFIX") {
			return nil
		}
		p.pos++

		alias, err := p.expectWord()
		if err != nil {
			return fmt.Errorf("malformed PREFIX declaration: %w", err)
		}
		if !strings.HasSuffix(alias, ":") {
			return fmt.Errorf("malformed PREFIX declaration: expected name ending in ':', got %q", alias)
		}

		uri, ok := p.next()
		if !ok || uri.kind != tokIRI {
			return fmt.Errorf("malformed PREFIX declaration: expected IRI after %q", alias)
		}

		p.prefixes[strings.TrimSuffix(alias, ":")] = uri.text
	}
}

func (p *queryParser) parseSelect() (*QueryResult, error) {
	distinct := false

	if tok, ok := p.peek(); ok && tok.kind == tokWord && strings.EqualFold(tok.text, "DISTINCT") {
		distinct = true
		p.pos++
	}

	var vars []string

	star := false

	for {
		tok, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("unexpected end of query in SELECT clause")
		}

		if tok.kind == tokVar {
			vars = append(vars, tok.text)
			p.pos++
			continue
		}

		if tok.kind == tokWord && tok.text == "*" {
			star = true
			p.pos++
			continue
		}

		break
	}

	if !star && len(vars) == 0 {
		return nil, fmt.Errorf("SELECT requires projection variables or *")
	}

	patterns, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}

	limit, err := p.parseLimit()
	if err != nil {
		return nil, err
	}

	if star {
		vars = collectVars(patterns)
	}

	solutions := evaluate(p.store.snapshot(), patterns, 0)

	bindings := make([]map[string]Term, 0, len(solutions))
	seen := make(map[string]bool)

	for _, solution := range solutions {
		row := make(map[string]Term, len(vars))
		for _, v := range vars {
			if term, ok := solution[v]; ok {
				row[v] = term
			}
		}

		if distinct {
			key := fingerprint(vars, row)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		bindings = append(bindings, row)

		if limit > 0 && len(bindings) >= limit {
			break
		}
	}

	return &QueryResult{Form: FormSelect, Vars: vars, Bindings: bindings}, nil
}

func (p *queryParser) parseAsk() (*QueryResult, error) {
	patterns, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}

	solutions := evaluate(p.store.snapshot(), patterns, 1)

	return &QueryResult{Form: FormAsk, Bool: len(solutions) > 0}, nil
}

func (p *queryParser) parseGroupGraphPattern() ([][3]patternTerm, error) {
	if tok, ok := p.peek(); ok && tok.kind == tokWord && strings.EqualFold(tok.text, "WHERE") {
		p.pos++
	}

	tok, ok := p.next()
	if !ok || tok.kind != tokPunct || tok.text != "{" {
		return nil, fmt.Errorf("expected '{' to open the graph pattern")
	}

	var patterns [][3]patternTerm

	for {
		tok, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("unexpected end of query inside graph pattern")
		}

		if tok.kind == tokPunct && tok.text == "}" {
			p.pos++
			return patterns, nil
		}

		if tok.kind == tokPunct && tok.text == "." {
			p.pos++
			continue
		}

		var pattern [3]patternTerm

		for slot := 0; slot < 3; slot++ {
			term, err := p.parsePatternTerm()
			if err != nil {
				return nil, err
			}
			pattern[slot] = term
		}

		patterns = append(patterns, pattern)
	}
}

var unsupportedKeywords = map[string]bool{
	"FILTER": true, "OPTIONAL": true, "UNION": true, "GRAPH": true,
	"ORDER": true, "GROUP": true, "BIND": true, "VALUES": true,
	"MINUS": true, "SERVICE": true,
}

func (p *queryParser) parsePatternTerm() (patternTerm, error) {
	tok, ok := p.next()
	if !ok {
		return patternTerm{}, fmt.Errorf("unexpected end of query inside triple pattern")
	}

	switch tok.kind {
	case tokVar:
		return patternTerm{isVar: true, name: tok.text}, nil

	case tokIRI:
		return patternTerm{term: Term{Value: tok.text, Kind: TermIRI}}, nil

	case tokLiteral:
		return patternTerm{term: Term{Value: tok.text, Kind: TermLiteral}}, nil

	case tokWord:
		if unsupportedKeywords[strings.ToUpper(tok.text)] {
			return patternTerm{}, fmt.Errorf("%s is not supported by the embedded evaluator", strings.ToUpper(tok.text))
		}

		if tok.text == "a" {
			return patternTerm{term: Term{Value: rdfTypeIRI, Kind: TermIRI}}, nil
		}

		iri, err := p.expandPrefixed(tok.text)
		if err != nil {
			return patternTerm{}, err
		}

		return patternTerm{term: Term{Value: iri, Kind: TermIRI}}, nil

	default:
		return patternTerm{}, fmt.Errorf("unexpected token %q in triple pattern", tok.text)
	}
}

func (p *queryParser) expandPrefixed(name string) (string, error) {
	alias, local, found := strings.Cut(name, ":")
	if !found {
		return "", fmt.Errorf("expected an IRI, prefixed name, or variable, got %q", name)
	}

	if uri, ok := p.prefixes[alias]; ok {
		return uri + local, nil
	}

	if uri, ok := p.store.lookupPrefix(alias); ok {
		return uri + local, nil
	}

	return "", fmt.Errorf("unknown prefix %q", alias)
}

func (p *queryParser) parseLimit() (int, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, nil
	}

	if tok.kind != tokWord || !strings.EqualFold(tok.text, "LIMIT") {
		return 0, fmt.Errorf("unexpected token %q after graph pattern", tok.text)
	}
	p.pos++

	value, err := p.expectWord()
	if err != nil {
		return 0, fmt.Errorf("LIMIT requires a count: %w", err)
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("LIMIT requires a non-negative integer, got %q", value)
	}

	return n, nil
}

func (p *queryParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}

	return p.tokens[p.pos], true
}

func (p *queryParser) next() (token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}

	return tok, ok
}

func (p *queryParser) expectWord() (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", fmt.Errorf("unexpected end of query")
	}
	if tok.kind != tokWord && tok.kind != tokLiteral {
		return "", fmt.Errorf("unexpected token %q", tok.text)
	}

	return tok.text, nil
}

func collectVars(patterns [][3]patternTerm) []string {
	var vars []string

	seen := make(map[string]bool)

	for _, pattern := range patterns {
		for _, term := range pattern {
			if term.isVar && !seen[term.name] {
				seen[term.name] = true
				vars = append(vars, term.name)
			}
		}
	}

	return vars
}

// evaluate joins the triple patterns by backtracking. A maxSolutions of
// 0 means unbounded.
func evaluate(triples []Triple, patterns [][3]patternTerm, maxSolutions int) []map[string]Term {
	var solutions []map[string]Term

	binding := make(map[string]Term)

	var match func(depth int) bool

	match = func(depth int) bool {
		if depth == len(patterns) {
			solution := make(map[string]Term, len(binding))
			for k, v := range binding {
				solution[k] = v
			}
			solutions = append(solutions, solution)

			return maxSolutions > 0 && len(solutions) >= maxSolutions
		}

		pattern := patterns[depth]

		for _, triple := range triples {
			bound := make([]string, 0, 3)
			ok := true

			for slot, actual := range [3]Term{triple.Subj, triple.Pred, triple.Obj} {
				name, matched := unify(pattern[slot], actual, binding)
				if !matched {
					ok = false
					break
				}
				if name != "" {
					bound = append(bound, name)
				}
			}

			if ok && match(depth+1) {
				return true
			}

			for _, name := range bound {
				delete(binding, name)
			}
		}

		return false
	}

	match(0)

	return solutions
}

// unify matches one pattern slot against a concrete term, binding the
// variable when unbound. It returns the name of a newly bound variable.
func unify(pt patternTerm, actual Term, binding map[string]Term) (string, bool) {
	if !pt.isVar {
		return "", pt.term == actual
	}

	if existing, ok := binding[pt.name]; ok {
		return "", existing == actual
	}

	binding[pt.name] = actual

	return pt.name, true
}

func fingerprint(vars []string, row map[string]Term) string {
	var sb strings.Builder

	for _, v := range vars {
		term := row[v]
		sb.WriteString(strconv.Itoa(int(term.Kind)))
		sb.WriteString(term.Value)
		sb.WriteByte('\x00')
	}

	return sb.String()
}
