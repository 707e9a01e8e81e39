// Package migrations embeds the goose SQL migrations of the task store, one
// directory per database dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
