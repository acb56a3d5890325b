package web

import _ "embed"

// Terminal is the single-page news dashboard served at /terminal.
//
//go:embed terminal.html
var Terminal []byte
