// Package migrations embeds the schema for every supported database dialect.
package migrations

import "embed"

// Migrations holds one goose directory per dialect: postgres/ and sqlite/.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
