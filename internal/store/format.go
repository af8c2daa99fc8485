package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"
)

// GuessFormat maps a file extension to an RDF serialization name.
// JSON-LD is recognized so the loader can reject it with a clear error
// instead of misparsing the file as turtle. Unknown extensions fall
// back to turtle.
func GuessFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".turtle":
		return "turtle"
	case ".n3":
		return "n3"
	case ".nt":
		return "ntriples"
	case ".rdf", ".xml":
		return "rdfxml"
	case ".jsonld", ".json":
		return "jsonld"
	default:
		return "turtle"
	}
}

// decoderFormat maps a serialization name to the decoder's format tag.
// N3 is decoded as Turtle, which covers the common subset.
func decoderFormat(format string) (rdf.Format, error) {
	switch format {
	case "turtle", "n3":
		return rdf.Turtle, nil
	case "ntriples", "nt":
		return rdf.NTriples, nil
	case "rdfxml", "xml":
		return rdf.RDFXML, nil
	default:
		return 0, fmt.Errorf("unsupported RDF format %q (supported: turtle, n3, ntriples, rdfxml)", format)
	}
}
