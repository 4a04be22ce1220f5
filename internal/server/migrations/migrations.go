// Package migrations embeds the goose SQL migrations that define the
// users, activation_tokens, and sessions schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
