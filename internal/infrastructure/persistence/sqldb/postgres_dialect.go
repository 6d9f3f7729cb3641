package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/sqldb/migrations"
	"github.com/pressly/goose/v3"
)

// upsertEntrySQL is shared by postgres and sqlite, which both support
// INSERT ... ON CONFLICT. created_at is never overwritten.
const upsertEntrySQL = `
	INSERT INTO portfolio_entries (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		cover_url = EXCLUDED.cover_url,
		project_type = EXCLUDED.project_type,
		status = EXCLUDED.status,
		technologies = EXCLUDED.technologies,
		demo_url = EXCLUDED.demo_url,
		github_url = EXCLUDED.github_url,
		featured = EXCLUDED.featured,
		sort_order = EXCLUDED.sort_order,
		display_mode = EXCLUDED.display_mode,
		overview = EXCLUDED.overview,
		project_role = EXCLUDED.project_role,
		duration = EXCLUDED.duration,
		client_name = EXCLUDED.client_name,
		challenge = EXCLUDED.challenge,
		solution = EXCLUDED.solution,
		gallery_images = EXCLUDED.gallery_images,
		updated_at = EXCLUDED.updated_at
`

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) DriverName() string { return "pgx" }

func (d *PostgresDialect) Rebind(query string) string { return query }

func (d *PostgresDialect) Migrate(ctx context.Context, db *sql.DB) error {
	return gooseUp(ctx, db, "postgres", "postgres")
}

func (d *PostgresDialect) UpsertEntry(ctx context.Context, tx *sql.Tx, row entryRow) error {
	_, err := tx.ExecContext(ctx, upsertEntrySQL, row.args()...)
	return err
}

// gooseUp applies the embedded migrations in dir using the given goose dialect.
func gooseUp(ctx context.Context, db *sql.DB, gooseDialect, dir string) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
