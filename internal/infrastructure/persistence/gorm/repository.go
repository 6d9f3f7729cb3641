package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmanzanog/showcase/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// entryRecord is the GORM model of a portfolio entry. List fields are
// stored as JSON and timestamps are owned by the service, not by GORM.
type entryRecord struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Title         string    `gorm:"size:255;not null"`
	Description   string    `gorm:"type:text"`
	CoverURL      string    `gorm:"type:text"`
	ProjectType   string    `gorm:"size:32;not null;index"`
	Status        string    `gorm:"size:32;not null;index"`
	Technologies  []string  `gorm:"serializer:json;not null"`
	DemoURL       string    `gorm:"type:text"`
	GithubURL     string    `gorm:"type:text"`
	Featured      bool      `gorm:"not null"`
	SortOrder     int       `gorm:"not null;index:idx_entries_order,priority:1"`
	DisplayMode   string    `gorm:"size:16"`
	Overview      string    `gorm:"type:text"`
	ProjectRole   string    `gorm:"type:text"`
	Duration      string    `gorm:"size:64"`
	ClientName    string    `gorm:"size:255"`
	Challenge     string    `gorm:"type:text"`
	Solution      string    `gorm:"type:text"`
	GalleryImages []string  `gorm:"serializer:json"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;index:idx_entries_order,priority:2"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (entryRecord) TableName() string { return "entries" }

func toRecord(e *domain.Entry) entryRecord {
	techs := e.Technologies
	if techs == nil {
		techs = []string{}
	}
	return entryRecord{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		CoverURL:      e.CoverURL,
		ProjectType:   string(e.ProjectType),
		Status:        string(e.Status),
		Technologies:  techs,
		DemoURL:       e.DemoURL,
		GithubURL:     e.GithubURL,
		Featured:      e.Featured,
		SortOrder:     e.SortOrder,
		DisplayMode:   string(e.Mode),
		Overview:      e.Overview,
		ProjectRole:   e.Role,
		Duration:      e.Duration,
		ClientName:    e.Client,
		Challenge:     e.Challenge,
		Solution:      e.Solution,
		GalleryImages: e.GalleryImages,
		CreatedAt:     e.CreatedAt.UTC(),
		UpdatedAt:     e.UpdatedAt.UTC(),
	}
}

func (r entryRecord) toEntry() domain.Entry {
	techs := r.Technologies
	if techs == nil {
		techs = []string{}
	}
	var gallery []string
	if len(r.GalleryImages) > 0 {
		gallery = r.GalleryImages
	}
	return domain.Entry{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		CoverURL:      r.CoverURL,
		ProjectType:   domain.ProjectType(r.ProjectType),
		Status:        domain.Status(r.Status),
		Technologies:  techs,
		DemoURL:       r.DemoURL,
		GithubURL:     r.GithubURL,
		Featured:      r.Featured,
		SortOrder:     r.SortOrder,
		Mode:          domain.Mode(r.DisplayMode),
		Overview:      r.Overview,
		Role:          r.ProjectRole,
		Duration:      r.Duration,
		Client:        r.ClientName,
		Challenge:     r.Challenge,
		Solution:      r.Solution,
		GalleryImages: gallery,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

// ErrUnrecognisedDSN is returned by Open when the DSN names neither a
// postgres nor a SQLite database.
var ErrUnrecognisedDSN = errors.New("unrecognised gorm DSN")

// dialectorFor picks the dialect from the DSN. Postgres takes a URL or a
// key/value DSN. SQLite must be named with a "sqlite:" prefix (stripped),
// a "file:" URI or ":memory:".
func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname="):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		path := strings.TrimPrefix(dsn, "sqlite:")
		if path == "" {
			return nil, fmt.Errorf("%w: empty sqlite path", ErrUnrecognisedDSN)
		}
		return sqlite.Dialector{DriverName: "sqlite", DSN: path}, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use a postgres DSN or sqlite:<path>)", ErrUnrecognisedDSN, dsn)
	}
}

// Open connects GORM to postgres or, through the pure Go modernc driver,
// to SQLite.
func Open(dsn string) (*gorm.DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// GormRepository implements domain.EntryRepository using GORM.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// AutoMigrate applies schema changes to the database
func (r *GormRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&entryRecord{})
}

func (r *GormRepository) Save(ctx context.Context, e *domain.Entry) error {
	rec := toRecord(e)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error; err != nil {
		slog.ErrorContext(ctx, "Failed to save entry", "id", e.ID, "error", err)
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	var rec entryRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.DebugContext(ctx, "Entry not found", "id", id)
			return nil, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		}
		slog.ErrorContext(ctx, "Failed to find entry", "id", id, "error", err)
		return nil, err
	}
	entry := rec.toEntry()
	return &entry, nil
}

func (r *GormRepository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	var recs []entryRecord
	if err := r.db.WithContext(ctx).Order("sort_order, created_at, id").Find(&recs).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, rec.toEntry())
	}
	return entries, nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entryRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
