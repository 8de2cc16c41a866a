// Package migrations holds the registry schema as goose SQL files.
package migrations

import "embed"

// FS contains every *.sql migration; pass it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
