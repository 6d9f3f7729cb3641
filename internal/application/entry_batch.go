package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmanzanog/showcase/internal/domain"
)

// BatchDeleteResult reports how many deletes of a batch succeeded.
type BatchDeleteResult struct {
	SuccessCount int      `json:"success_count"`
	FailedCount  int      `json:"failed_count"`
	FailedIDs    []string `json:"failed_ids,omitempty"`
}

// SortOrderUpdate assigns a new position to one entry.
type SortOrderUpdate struct {
	ID        string `json:"id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// SortOrderResult reports how many entries of a reorder were updated.
type SortOrderResult struct {
	UpdatedCount int      `json:"updated_count"`
	FailedCount  int      `json:"failed_count"`
	FailedIDs    []string `json:"failed_ids,omitempty"`
}

type idResult struct {
	id  string
	err error
}

// fanOut runs fn for every id concurrently and collects the per-id outcome.
// Individual failures never abort the other calls.
func fanOut(ids []string, fn func(id string) error) []idResult {
	resultChan := make(chan idResult, len(ids))
	var wg sync.WaitGroup

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			resultChan <- idResult{id: id, err: fn(id)}
		}(id)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]idResult, 0, len(ids))
	for r := range resultChan {
		results = append(results, r)
	}
	return results
}

// BatchDeletePortfolios deletes every id independently. Duplicate ids are
// attempted once each, so under the strict policy the second attempt fails.
func (s *ShowcaseService) BatchDeletePortfolios(ctx context.Context, ids []string) (*BatchDeleteResult, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	result := &BatchDeleteResult{}
	if len(ids) == 0 {
		return result, nil
	}

	slog.InfoContext(ctx, "Deleting portfolio entries in batch", "count", len(ids))
	for _, r := range fanOut(ids, func(id string) error { return s.delete(ctx, id) }) {
		if r.err != nil {
			slog.WarnContext(ctx, "Batch delete item failed", "id", r.id, "error", r.err)
			result.FailedCount++
			result.FailedIDs = append(result.FailedIDs, r.id)
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

// UpdateSortOrder applies each pair independently; unknown ids are counted
// as failures and leave the rest of the reorder intact.
func (s *ShowcaseService) UpdateSortOrder(ctx context.Context, updates []SortOrderUpdate) (*SortOrderResult, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	result := &SortOrderResult{}
	if len(updates) == 0 {
		return result, nil
	}

	orders := make(map[string]int, len(updates))
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		if _, seen := orders[u.ID]; !seen {
			ids = append(ids, u.ID)
		}
		// last assignment for an id wins
		orders[u.ID] = u.SortOrder
	}

	slog.InfoContext(ctx, "Updating sort order", "count", len(ids))
	results := fanOut(ids, func(id string) error {
		order := orders[id]
		if _, err := s.update(ctx, id, domain.EntryPatch{SortOrder: &order}); err != nil {
			return fmt.Errorf("sort order for %s: %w", id, err)
		}
		return nil
	})

	for _, r := range results {
		if r.err != nil {
			slog.WarnContext(ctx, "Sort order item failed", "id", r.id, "error", r.err)
			result.FailedCount++
			result.FailedIDs = append(result.FailedIDs, r.id)
			continue
		}
		result.UpdatedCount++
	}

	return result, nil
}
