// Package migrations embeds the web host schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
