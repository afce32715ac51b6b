// Package migrations embeds the goose SQL migrations for the PostgreSQL
// identity store and vote ledger.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
