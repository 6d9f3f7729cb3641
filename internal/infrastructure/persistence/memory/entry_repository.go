package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jmanzanog/showcase/internal/domain"
)

type storedEntry struct {
	entry domain.Entry
	seq   int64
}

// EntryRepository keeps entries in process memory. Entries are copied on
// the way in and out, so callers never share slices with the store.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*storedEntry
	nextSeq int64
}

// NewEntryRepository returns a store holding the given entries.
func NewEntryRepository(seed ...domain.Entry) *EntryRepository {
	r := &EntryRepository{
		entries: make(map[string]*storedEntry, len(seed)),
	}
	for _, e := range seed {
		r.put(e)
	}
	return r
}

func (r *EntryRepository) put(e domain.Entry) {
	if existing, ok := r.entries[e.ID]; ok {
		existing.entry = e.Clone()
		return
	}
	r.entries[e.ID] = &storedEntry{entry: e.Clone(), seq: r.nextSeq}
	r.nextSeq++
}

func (r *EntryRepository) Save(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(*entry)
	return nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.entries[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	entry := stored.entry.Clone()
	return &entry, nil
}

// FindAll returns entries by sort order, ties broken by insertion order.
func (r *EntryRepository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	r.mu.RLock()
	stored := make([]storedEntry, 0, len(r.entries))
	for _, s := range r.entries {
		stored = append(stored, storedEntry{entry: s.entry.Clone(), seq: s.seq})
	}
	r.mu.RUnlock()

	sort.Slice(stored, func(i, j int) bool {
		if stored[i].entry.SortOrder != stored[j].entry.SortOrder {
			return stored[i].entry.SortOrder < stored[j].entry.SortOrder
		}
		return stored[i].seq < stored[j].seq
	})

	entries := make([]domain.Entry, len(stored))
	for i, s := range stored {
		entries[i] = s.entry
	}
	return entries, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	delete(r.entries, id)
	return nil
}
