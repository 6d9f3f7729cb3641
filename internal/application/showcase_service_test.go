package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmanzanog/showcase/internal/domain"
	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/showcase/internal/infrastructure/seed"
)

// --- Mocks ---

type MockRepository struct {
	saveFunc     func(ctx context.Context, e *domain.Entry) error
	findByIDFunc func(ctx context.Context, id string) (*domain.Entry, error)
	findAllFunc  func(ctx context.Context) ([]domain.Entry, error)
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *MockRepository) Save(ctx context.Context, e *domain.Entry) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, e)
	}
	return nil
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockRepository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newSeededService(t *testing.T, opts Options) *ShowcaseService {
	t.Helper()
	return NewShowcaseService(memory.NewEntryRepository(seed.MustEntries()...), opts)
}

func strPtr(s string) *string { return &s }

// --- Tests ---

func TestListPortfolios(t *testing.T) {
	service := newSeededService(t, DefaultOptions())

	result, err := service.ListPortfolios(context.Background(), domain.ListQuery{ProjectType: "frontend", Page: 1, PageSize: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 7 || len(result.List) != 7 {
		t.Errorf("expected 7 frontend entries, got total %d list %d", result.Total, len(result.List))
	}
	for _, e := range result.List {
		if e.Mode == "" {
			t.Errorf("entry %s has no resolved mode", e.ID)
		}
	}
}

func TestListPortfolios_InvalidFilter(t *testing.T) {
	service := newSeededService(t, DefaultOptions())

	_, err := service.ListPortfolios(context.Background(), domain.ListQuery{ProjectType: "mobile"})
	if !errors.Is(err, domain.ErrInvalidEnumValue) {
		t.Errorf("expected ErrInvalidEnumValue, got %v", err)
	}
}

func TestListPortfolios_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	service := NewShowcaseService(&MockRepository{
		findAllFunc: func(context.Context) ([]domain.Entry, error) { return nil, boom },
	}, DefaultOptions())

	if _, err := service.ListPortfolios(context.Background(), domain.ListQuery{}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
}

func TestGetPortfolioByID(t *testing.T) {
	service := newSeededService(t, DefaultOptions())
	ctx := context.Background()

	entry, err := service.GetPortfolioByID(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID != "1" || entry.Mode != domain.ModeLight {
		t.Errorf("unexpected entry: id %s mode %s", entry.ID, entry.Mode)
	}

	if _, err := service.GetPortfolioByID(ctx, "nonexistent-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPortfolioByID_WithoutModeFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.ModeFallback = false
	service := newSeededService(t, opts)

	entry, err := service.GetPortfolioByID(context.Background(), "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Mode != "" {
		t.Errorf("expected no mode, got %s", entry.Mode)
	}
}

func TestGetStats(t *testing.T) {
	service := newSeededService(t, DefaultOptions())

	stats, err := service.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 26 {
		t.Errorf("expected total 26, got %d", stats.Total)
	}
	if len(stats.TopTechnologies) != domain.DefaultTopTechnologies {
		t.Errorf("expected %d technologies, got %d", domain.DefaultTopTechnologies, len(stats.TopTechnologies))
	}
}

func TestCreatePortfolio(t *testing.T) {
	service := newSeededService(t, DefaultOptions())
	ctx := context.Background()
	pt := domain.ProjectTypeBackend

	created, err := service.CreatePortfolio(ctx, domain.EntryPatch{
		Title:        strPtr("Queue worker"),
		ProjectType:  &pt,
		Technologies: []string{"Go", "NATS"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Status != domain.StatusDeveloping {
		t.Errorf("expected default status developing, got %s", created.Status)
	}
	if created.SortOrder != 27 {
		t.Errorf("expected sort order 27, got %d", created.SortOrder)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("unexpected timestamps: %v %v", created.CreatedAt, created.UpdatedAt)
	}

	fetched, err := service.GetPortfolioByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("created entry not retrievable: %v", err)
	}
	if fetched.Title != "Queue worker" || len(fetched.Technologies) != 2 {
		t.Errorf("unexpected fetched entry: %+v", fetched)
	}

	result, _ := service.ListPortfolios(ctx, domain.ListQuery{PageSize: 100})
	if result.Total != 27 || result.List[26].ID != created.ID {
		t.Errorf("expected new entry listed last, total %d", result.Total)
	}
}

func TestCreatePortfolio_Validation(t *testing.T) {
	service := newSeededService(t, DefaultOptions())
	pt := domain.ProjectTypeApp
	badType := domain.ProjectType("mobile")

	testCases := []struct {
		name  string
		patch domain.EntryPatch
		want  error
	}{
		{"missing title", domain.EntryPatch{ProjectType: &pt}, domain.ErrValidation},
		{"blank title", domain.EntryPatch{Title: strPtr("   "), ProjectType: &pt}, domain.ErrValidation},
		{"missing type", domain.EntryPatch{Title: strPtr("x")}, domain.ErrValidation},
		{"bad type", domain.EntryPatch{Title: strPtr("x"), ProjectType: &badType}, domain.ErrInvalidEnumValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.CreatePortfolio(context.Background(), tc.patch); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	stats, _ := service.GetStats(context.Background())
	if stats.Total != 26 {
		t.Errorf("rejected creates must not persist, total %d", stats.Total)
	}
}

func TestUpdatePortfolio(t *testing.T) {
	service := newSeededService(t, DefaultOptions())
	ctx := context.Background()

	before, _ := service.GetPortfolioByID(ctx, "3")
	status := domain.StatusArchived

	updated, err := service.UpdatePortfolio(ctx, "3", domain.EntryPatch{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusArchived || updated.Title != before.Title {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Error("created_at must not change")
	}

	if _, err := service.UpdatePortfolio(ctx, "nonexistent-id", domain.EntryPatch{Status: &status}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleFeatured(t *testing.T) {
	service := newSeededService(t, DefaultOptions())
	ctx := context.Background()

	entry, err := service.ToggleFeatured(ctx, "3", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !entry.Featured {
		t.Error("expected entry to be featured")
	}

	// Idempotent
	entry, err = service.ToggleFeatured(ctx, "3", true)
	if err != nil || !entry.Featured {
		t.Errorf("second toggle failed: %v", err)
	}
}

func TestDeletePortfolio_Policies(t *testing.T) {
	testCases := []struct {
		name    string
		policy  DeletePolicy
		wantErr error
	}{
		{"strict", DeleteStrict, domain.ErrNotFound},
		{"idempotent", DeleteIdempotent, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.DeletePolicy = tc.policy
			service := newSeededService(t, opts)
			ctx := context.Background()

			if err := service.DeletePortfolio(ctx, "1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := service.GetPortfolioByID(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("expected deleted entry to be gone, got %v", err)
			}

			err := service.DeletePortfolio(ctx, "1")
			if tc.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLatency_RespectsContext(t *testing.T) {
	opts := DefaultOptions()
	opts.Latency = time.Hour
	service := newSeededService(t, opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := service.GetStats(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestLatency_Applied(t *testing.T) {
	opts := DefaultOptions()
	opts.Latency = 20 * time.Millisecond
	service := newSeededService(t, opts)

	start := time.Now()
	if _, err := service.GetStats(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < opts.Latency {
		t.Errorf("expected at least %v, took %v", opts.Latency, elapsed)
	}
}

func TestParseDeletePolicy(t *testing.T) {
	if p, err := ParseDeletePolicy("idempotent"); err != nil || p != DeleteIdempotent {
		t.Errorf("unexpected result %v %v", p, err)
	}
	if _, err := ParseDeletePolicy("lenient"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
