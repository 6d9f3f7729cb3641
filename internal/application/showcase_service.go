package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmanzanog/showcase/internal/domain"
)

// DeletePolicy decides what deleting an unknown id does.
type DeletePolicy string

const (
	// DeleteStrict reports ErrNotFound for unknown ids.
	DeleteStrict DeletePolicy = "strict"
	// DeleteIdempotent treats an unknown id as already deleted.
	DeleteIdempotent DeletePolicy = "idempotent"
)

func ParseDeletePolicy(v string) (DeletePolicy, error) {
	switch p := DeletePolicy(v); p {
	case DeleteStrict, DeleteIdempotent:
		return p, nil
	}
	return "", fmt.Errorf("unknown delete policy %q", v)
}

type Options struct {
	// Latency is an artificial delay added to every call, used to mimic a
	// remote backend during development.
	Latency time.Duration
	// TopTechnologies bounds the technology ranking in stats; <= 0 keeps all.
	TopTechnologies int
	// ModeFallback derives an absent display mode from id parity.
	ModeFallback bool
	DeletePolicy DeletePolicy
}

func DefaultOptions() Options {
	return Options{
		TopTechnologies: domain.DefaultTopTechnologies,
		ModeFallback:    true,
		DeletePolicy:    DeleteStrict,
	}
}

type ListResult struct {
	List  []domain.Entry `json:"list"`
	Total int            `json:"total"`
}

type ShowcaseService struct {
	repo domain.EntryRepository
	opts Options
	now  func() time.Time
}

func NewShowcaseService(repo domain.EntryRepository, opts Options) *ShowcaseService {
	if opts.DeletePolicy == "" {
		opts.DeletePolicy = DeleteStrict
	}
	return &ShowcaseService{
		repo: repo,
		opts: opts,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// delay blocks for the configured latency or until ctx is done.
func (s *ShowcaseService) delay(ctx context.Context) error {
	if s.opts.Latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.opts.Latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ShowcaseService) ListPortfolios(ctx context.Context, query domain.ListQuery) (*ListResult, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	page, total := domain.ApplyQuery(entries, query, domain.QueryOptions{ModeFallback: s.opts.ModeFallback})
	return &ListResult{List: page, Total: total}, nil
}

func (s *ShowcaseService) GetPortfolioByID(ctx context.Context, id string) (*domain.Entry, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if s.opts.ModeFallback {
		entry.Mode = entry.ResolvedMode()
	}
	return entry, nil
}

func (s *ShowcaseService) GetStats(ctx context.Context) (*domain.StatsSummary, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	summary := domain.Aggregate(entries, s.opts.TopTechnologies)
	return &summary, nil
}

// CreatePortfolio builds a new entry from the supplied fields. Title and
// project type are required; status defaults to developing and sort order
// to one past the current maximum.
func (s *ShowcaseService) CreatePortfolio(ctx context.Context, patch domain.EntryPatch) (*domain.Entry, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	if patch.Title == nil || strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if patch.ProjectType == nil {
		return nil, fmt.Errorf("%w: project_type is required", domain.ErrValidation)
	}

	now := s.now()
	entry := domain.Entry{
		ID:           uuid.New().String(),
		Status:       domain.StatusDeveloping,
		Technologies: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := patch.ApplyTo(&entry); err != nil {
		return nil, err
	}

	if patch.SortOrder == nil {
		next, err := s.nextSortOrder(ctx)
		if err != nil {
			return nil, err
		}
		entry.SortOrder = next
	}

	if err := s.repo.Save(ctx, &entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	slog.InfoContext(ctx, "Portfolio entry created", "id", entry.ID, "sort_order", entry.SortOrder)
	return &entry, nil
}

func (s *ShowcaseService) nextSortOrder(ctx context.Context) (int, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load entries: %w", err)
	}
	highest := 0
	for _, e := range entries {
		highest = max(highest, e.SortOrder)
	}
	return highest + 1, nil
}

func (s *ShowcaseService) UpdatePortfolio(ctx context.Context, id string, patch domain.EntryPatch) (*domain.Entry, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	return s.update(ctx, id, patch)
}

func (s *ShowcaseService) update(ctx context.Context, id string, patch domain.EntryPatch) (*domain.Entry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	if err := patch.ApplyTo(entry); err != nil {
		return nil, err
	}
	entry.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return entry, nil
}

func (s *ShowcaseService) ToggleFeatured(ctx context.Context, id string, featured bool) (*domain.Entry, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	entry, err := s.update(ctx, id, domain.EntryPatch{Featured: &featured})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Portfolio entry featured flag changed", "id", id, "featured", featured)
	return entry, nil
}

func (s *ShowcaseService) DeletePortfolio(ctx context.Context, id string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}
	return s.delete(ctx, id)
}

func (s *ShowcaseService) delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		slog.InfoContext(ctx, "Portfolio entry deleted", "id", id)
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) && s.opts.DeletePolicy == DeleteIdempotent {
		slog.DebugContext(ctx, "Delete of unknown entry ignored", "id", id)
		return nil
	}
	return fmt.Errorf("failed to delete entry: %w", err)
}
