package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmanzanog/showcase/internal/domain"
)

const entryColumns = `id, title, description, cover_url, project_type, status, technologies,
	demo_url, github_url, featured, sort_order, display_mode,
	overview, project_role, duration, client_name, challenge, solution, gallery_images,
	created_at, updated_at`

// entryRow is the flat column form of a domain.Entry. List fields are stored
// as JSON text and optional strings as NULL.
type entryRow struct {
	ID            string
	Title         string
	Description   sql.NullString
	CoverURL      sql.NullString
	ProjectType   string
	Status        string
	Technologies  string
	DemoURL       sql.NullString
	GithubURL     sql.NullString
	Featured      int64
	SortOrder     int64
	Mode          sql.NullString
	Overview      sql.NullString
	Role          sql.NullString
	Duration      sql.NullString
	Client        sql.NullString
	Challenge     sql.NullString
	Solution      sql.NullString
	GalleryImages sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toRow(e *domain.Entry) (entryRow, error) {
	techs := e.Technologies
	if techs == nil {
		techs = []string{}
	}
	technologies, err := json.Marshal(techs)
	if err != nil {
		return entryRow{}, fmt.Errorf("encode technologies: %w", err)
	}

	var gallery sql.NullString
	if len(e.GalleryImages) > 0 {
		raw, err := json.Marshal(e.GalleryImages)
		if err != nil {
			return entryRow{}, fmt.Errorf("encode gallery images: %w", err)
		}
		gallery = nullString(string(raw))
	}

	var featured int64
	if e.Featured {
		featured = 1
	}

	return entryRow{
		ID:            e.ID,
		Title:         e.Title,
		Description:   nullString(e.Description),
		CoverURL:      nullString(e.CoverURL),
		ProjectType:   string(e.ProjectType),
		Status:        string(e.Status),
		Technologies:  string(technologies),
		DemoURL:       nullString(e.DemoURL),
		GithubURL:     nullString(e.GithubURL),
		Featured:      featured,
		SortOrder:     int64(e.SortOrder),
		Mode:          nullString(string(e.Mode)),
		Overview:      nullString(e.Overview),
		Role:          nullString(e.Role),
		Duration:      nullString(e.Duration),
		Client:        nullString(e.Client),
		Challenge:     nullString(e.Challenge),
		Solution:      nullString(e.Solution),
		GalleryImages: gallery,
		CreatedAt:     e.CreatedAt.UTC(),
		UpdatedAt:     e.UpdatedAt.UTC(),
	}, nil
}

// args lists the row values in entryColumns order.
func (r entryRow) args() []any {
	return []any{
		r.ID, r.Title, r.Description, r.CoverURL, r.ProjectType, r.Status, r.Technologies,
		r.DemoURL, r.GithubURL, r.Featured, r.SortOrder, r.Mode,
		r.Overview, r.Role, r.Duration, r.Client, r.Challenge, r.Solution, r.GalleryImages,
		r.CreatedAt, r.UpdatedAt,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (entryRow, error) {
	var r entryRow
	var technologies sql.NullString
	err := s.Scan(
		&r.ID, &r.Title, &r.Description, &r.CoverURL, &r.ProjectType, &r.Status, &technologies,
		&r.DemoURL, &r.GithubURL, &r.Featured, &r.SortOrder, &r.Mode,
		&r.Overview, &r.Role, &r.Duration, &r.Client, &r.Challenge, &r.Solution, &r.GalleryImages,
		&r.CreatedAt, &r.UpdatedAt,
	)
	r.Technologies = technologies.String
	return r, err
}

func (r entryRow) toEntry() (domain.Entry, error) {
	technologies := []string{}
	if r.Technologies != "" {
		if err := json.Unmarshal([]byte(r.Technologies), &technologies); err != nil {
			return domain.Entry{}, fmt.Errorf("decode technologies of %s: %w", r.ID, err)
		}
	}

	var gallery []string
	if r.GalleryImages.Valid && r.GalleryImages.String != "" {
		if err := json.Unmarshal([]byte(r.GalleryImages.String), &gallery); err != nil {
			return domain.Entry{}, fmt.Errorf("decode gallery images of %s: %w", r.ID, err)
		}
	}

	return domain.Entry{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description.String,
		CoverURL:      r.CoverURL.String,
		ProjectType:   domain.ProjectType(r.ProjectType),
		Status:        domain.Status(r.Status),
		Technologies:  technologies,
		DemoURL:       r.DemoURL.String,
		GithubURL:     r.GithubURL.String,
		Featured:      r.Featured != 0,
		SortOrder:     int(r.SortOrder),
		Mode:          domain.Mode(r.Mode.String),
		Overview:      r.Overview.String,
		Role:          r.Role.String,
		Duration:      r.Duration.String,
		Client:        r.Client.String,
		Challenge:     r.Challenge.String,
		Solution:      r.Solution.String,
		GalleryImages: gallery,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}, nil
}
