package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmanzanog/showcase/internal/domain"
)

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Save(ctx context.Context, e *domain.Entry) error {
	row, err := toRow(e)
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := r.db.Dialect.UpsertEntry(ctx, tx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to save entry", "id", e.ID, "error", err)
			return fmt.Errorf("upsert entry: %w", err)
		}
		return nil
	})
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	query := r.db.Dialect.Rebind(`SELECT ` + entryColumns + ` FROM portfolio_entries WHERE id = $1`)

	row, err := scanRow(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		slog.DebugContext(ctx, "Entry not found", "id", id)
		return nil, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to find entry", "id", id, "error", err)
		return nil, fmt.Errorf("querying entry: %w", err)
	}

	entry, err := row.toEntry()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM portfolio_entries ORDER BY sort_order, created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}(rows)

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entry, err := row.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.db.Dialect.Rebind("DELETE FROM portfolio_entries WHERE id = $1"), id)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}
