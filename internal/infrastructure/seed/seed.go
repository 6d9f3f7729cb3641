// Package seed ships the sample showcase collection used when no backend
// database is configured, and for demos and tests.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmanzanog/showcase/internal/domain"
)

//go:embed portfolios.json
var portfoliosJSON []byte

// Entries decodes the sample collection. Every call returns fresh copies.
func Entries() ([]domain.Entry, error) {
	var entries []domain.Entry
	if err := json.Unmarshal(portfoliosJSON, &entries); err != nil {
		return nil, fmt.Errorf("decoding seed data: %w", err)
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %s: %w", entries[i].ID, err)
		}
	}
	return entries, nil
}

// MustEntries is Entries for tests and static initialisation.
func MustEntries() []domain.Entry {
	entries, err := Entries()
	if err != nil {
		panic(err)
	}
	return entries
}

// Apply saves the sample collection into repo when it holds no entries yet.
// It reports how many entries were written.
func Apply(ctx context.Context, repo domain.EntryRepository) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking existing entries: %w", err)
	}
	if len(existing) > 0 {
		slog.DebugContext(ctx, "Repository already populated, skipping seed", "count", len(existing))
		return 0, nil
	}

	entries, err := Entries()
	if err != nil {
		return 0, err
	}
	for i := range entries {
		if err := repo.Save(ctx, &entries[i]); err != nil {
			return i, fmt.Errorf("saving seed entry %s: %w", entries[i].ID, err)
		}
	}
	slog.InfoContext(ctx, "Seeded portfolio entries", "count", len(entries))
	return len(entries), nil
}
