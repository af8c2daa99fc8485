// Package store holds the in-memory RDF graph behind the endpoint.
//
// Files are decoded with knakk/rdf and flattened into plain terms so
// the rest of the application never touches parser types. The store is
// safe for concurrent reads while a load is in progress.
package store

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/knakk/rdf"
)

// TermKind classifies a term.
type TermKind int

const (
	TermIRI TermKind = iota
	TermLiteral
	TermBlank
)

// Term is one node of a triple, flattened to its lexical form.
type Term struct {
	Value string
	Kind  TermKind
}

// Triple is a single subject-predicate-object statement.
type Triple struct {
	Subj Term
	Pred Term
	Obj  Term
}

// Prefix binds a short alias to a namespace URI.
type Prefix struct {
	Prefix string
	URI    string
}

// Store is the process-wide triple collection.
type Store struct {
	mu       sync.RWMutex
	triples  []Triple
	prefixes []Prefix
	seen     map[string]bool // prefix aliases already bound
}

// New creates an empty store seeded with the well-known prefixes.
func New() *Store {
	s := &Store{seen: make(map[string]bool)}

	for _, p := range wellKnownPrefixes {
		s.prefixes = append(s.prefixes, p)
		s.seen[p.Prefix] = true
	}

	return s
}

var wellKnownPrefixes = []Prefix{
	{Prefix: "rdf", URI: "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{Prefix: "rdfs", URI: "http://www.w3.org/2000/01/rdf-schema#"},
	{Prefix: "xsd", URI: "http://www.w3.org/2001/XMLSchema#"},
	{Prefix: "owl", URI: "http://www.w3.org/2002/07/owl#"},
}

// matches Turtle @prefix and SPARQL PREFIX declarations
var prefixDeclRe = regexp.MustCompile(`(?im)^\s*@?prefix\s+([A-Za-z][\w.-]*)?:\s*<([^>]*)>`)

// LoadFile parses one RDF file into the store and returns the number of
// triples added. An empty format means "guess from the file extension".
func (s *Store) LoadFile(path, format string) (int, error) {
	if format == "" {
		format = GuessFormat(path)
	}

	rdfFormat, err := decoderFormat(format)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	dec := rdf.NewTripleDecoder(bytes.NewReader(data), rdfFormat)

	parsed, err := dec.DecodeAll()
	if err != nil {
		return 0, fmt.Errorf("parse %s as %s: %w", path, format, err)
	}

	triples := make([]Triple, 0, len(parsed))
	for _, t := range parsed {
		triples = append(triples, Triple{
			Subj: flatten(t.Subj),
			Pred: flatten(t.Pred),
			Obj:  flatten(t.Obj),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.triples = append(s.triples, triples...)

	// the decoder resolves prefixes away, so recover the declarations
	// from the source text for formats that carry them
	if format == "turtle" || format == "n3" {
		for _, match := range prefixDeclRe.FindAllStringSubmatch(string(data), -1) {
			alias := match[1]
			if s.seen[alias] {
				continue
			}

			s.prefixes = append(s.prefixes, Prefix{Prefix: alias, URI: match[2]})
			s.seen[alias] = true
		}
	}

	return len(triples), nil
}

// flattens a parser term into its lexical form
func flatten(t rdf.Term) Term {
	switch t.Type() {
	case rdf.TermIRI:
		return Term{Value: t.String(), Kind: TermIRI}
	case rdf.TermBlank:
		return Term{Value: t.String(), Kind: TermBlank}
	default:
		return Term{Value: t.String(), Kind: TermLiteral}
	}
}

// TripleCount returns the number of loaded triples.
func (s *Store) TripleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.triples)
}

// SampleTriples returns up to max triples in storage order.
func (s *Store) SampleTriples(max int) []Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if max > len(s.triples) {
		max = len(s.triples)
	}

	sample := make([]Triple, max)
	copy(sample, s.triples[:max])

	return sample
}

// Prefixes returns up to max bound prefixes. A max of 0 or less means all.
func (s *Store) Prefixes(max int) []Prefix {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if max <= 0 || max > len(s.prefixes) {
		max = len(s.prefixes)
	}

	prefixes := make([]Prefix, max)
	copy(prefixes, s.prefixes[:max])

	return prefixes
}

// lookupPrefix resolves a prefix alias to its namespace URI.
func (s *Store) lookupPrefix(alias string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.prefixes {
		if p.Prefix == alias {
			return p.URI, true
		}
	}

	return "", false
}

// snapshot returns the current triple slice for evaluation. The slice
// is append-only, so holding it outside the lock is safe.
func (s *Store) snapshot() []Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.triples
}
