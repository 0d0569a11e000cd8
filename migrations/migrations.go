// Package migrations embeds the goose SQL migrations so the migrate binary
// runs without a checkout next to it.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
