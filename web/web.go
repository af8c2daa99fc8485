// Package web carries the embedded browser UI.
package web

import _ "embed"

// IndexHTML is the YASGUI query interface with the AI assistant panel.
//
//go:embed index.html
var IndexHTML []byte
