// Package migrations embeds the grid store's goose SQL migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
