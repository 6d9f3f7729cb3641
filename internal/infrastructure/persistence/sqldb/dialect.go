package sqldb

import (
	"context"
	"database/sql"
	"regexp"
)

type Dialect interface {
	Name() string
	// DriverName is the database/sql driver registered for the dialect.
	DriverName() string
	Migrate(ctx context.Context, db *sql.DB) error
	UpsertEntry(ctx context.Context, tx *sql.Tx, row entryRow) error
	// Rebind rewrites $n placeholders into the dialect's native form.
	Rebind(query string) string
}

var numberedPlaceholder = regexp.MustCompile(`\$(\d+)`)

func rebindNumbered(query, prefix string) string {
	return numberedPlaceholder.ReplaceAllString(query, prefix+"${1}")
}
