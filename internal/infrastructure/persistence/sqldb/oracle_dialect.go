package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/sqldb/migrations"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) Rebind(query string) string { return rebindNumbered(query, ":") }

func (d *OracleDialect) Migrate(ctx context.Context, db *sql.DB) error {
	// goose has no go-ora dialect, so the script is executed statement by statement.
	content, err := migrations.FS.ReadFile("oracle/20240101000000_init.sql")
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	// Statements are separated by '/' lines, as in SQL*Plus scripts.
	statements := strings.Split(string(content), "\n/")

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// ORA-00955: name is already used by an existing object
			if !strings.Contains(err.Error(), "ORA-00955") {
				return fmt.Errorf("migrating: %s: %w", stmt, err)
			}
		}
	}
	return nil
}

func (d *OracleDialect) UpsertEntry(ctx context.Context, tx *sql.Tx, row entryRow) error {
	query := `MERGE INTO portfolio_entries t
             USING (SELECT :1 AS id_val FROM dual) s
             ON (t.id = s.id_val)
             WHEN MATCHED THEN
               UPDATE SET
                 title = :2, description = :3, cover_url = :4, project_type = :5, status = :6,
                 technologies = :7, demo_url = :8, github_url = :9, featured = :10, sort_order = :11,
                 display_mode = :12, overview = :13, project_role = :14, duration = :15, client_name = :16,
                 challenge = :17, solution = :18, gallery_images = :19, updated_at = :20
             WHEN NOT MATCHED THEN
               INSERT (` + entryColumns + `)
               VALUES (:21, :22, :23, :24, :25, :26, :27, :28, :29, :30, :31, :32, :33, :34, :35, :36, :37, :38, :39, :40, :41)`

	insert := row.args()
	args := make([]any, 0, 1+19+len(insert))
	args = append(args, row.ID)
	// UPDATE takes every column except id and created_at.
	args = append(args, insert[1:len(insert)-2]...)
	args = append(args, row.UpdatedAt)
	args = append(args, insert...)

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
