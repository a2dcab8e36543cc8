// Package migrations embeds the goose SQL migrations so the binaries carry their schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Dir is the directory goose reads from inside FS.
const Dir = "."
