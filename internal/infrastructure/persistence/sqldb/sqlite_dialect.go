package sqldb

import (
	"context"
	"database/sql"
)

// SQLiteDialect targets modernc.org/sqlite. It shares the postgres upsert
// and uses SQLite's ?NNN numbered parameters.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) Rebind(query string) string { return rebindNumbered(query, "?") }

func (d *SQLiteDialect) Migrate(ctx context.Context, db *sql.DB) error {
	return gooseUp(ctx, db, "sqlite3", "sqlite")
}

func (d *SQLiteDialect) UpsertEntry(ctx context.Context, tx *sql.Tx, row entryRow) error {
	_, err := tx.ExecContext(ctx, d.Rebind(upsertEntrySQL), row.args()...)
	return err
}
