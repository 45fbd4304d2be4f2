// Package appfs embeds the static files the binaries need at runtime.
package appfs

import "embed"

// FS holds the SQL migrations (one directory per DB engine) and the common passwords list.
//
//go:embed migrations common-passwords.txt
var FS embed.FS

// MigrationsDir returns the migrations directory of the given DB engine.
func MigrationsDir(engine string) string {
	return "migrations/" + engine
}
