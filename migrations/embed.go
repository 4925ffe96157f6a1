// Package migrations embeds the SQL schema migrations for every supported
// database backend. Files are named NNN_description.sql and applied in
// version order by the migration runner.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
