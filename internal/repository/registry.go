package repository

import (
	"context"
	"strings"
)

// tables is the maintained registry of every entity table the application
// owns. It is deliberately a compile-time list, not runtime introspection;
// adding a resource means adding its table here (the registry test keeps
// this in sync with the repositories container).
var tables = []string{
	"churches",
	"volunteers",
	"offers",
	"announcements",
}

// Tables returns the registered table names.
func Tables() []string {
	out := make([]string, len(tables))
	copy(out, tables)
	return out
}

// IsRegistered reports whether a table is part of the registry. The cache
// middleware uses it to decide whether a path segment names a resource
// family.
func IsRegistered(table string) bool {
	for _, t := range tables {
		if t == table {
			return true
		}
	}
	return false
}

// TruncateAll empties every registered table in one statement. Intended for
// integration-test cleanup only.
func TruncateAll(ctx context.Context, db Querier) error {
	_, err := db.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
