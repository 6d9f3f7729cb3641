package sqldb

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmanzanog/showcase/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() domain.Entry {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.Entry{
		ID:            "42",
		Title:         "Sample",
		Description:   "A sample entry",
		CoverURL:      "https://example.com/cover.png",
		ProjectType:   domain.ProjectTypeBackend,
		Status:        domain.StatusCompleted,
		Technologies:  []string{"Go", "PostgreSQL"},
		GithubURL:     "https://github.com/example/sample",
		Featured:      true,
		SortOrder:     7,
		Overview:      "overview",
		GalleryImages: []string{"https://example.com/1.png"},
		CreatedAt:     now,
		UpdatedAt:     now.Add(time.Hour),
	}
}

func TestOracleDialect_UpsertEntry_QueryGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	dialect := &OracleDialect{}
	e := sampleEntry()
	row, err := toRow(&e)
	require.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	args := make([]any, 0, 41)
	args = append(args, e.ID)
	// UPDATE values
	args = append(args, e.Title, sqlmock.AnyArg(), sqlmock.AnyArg(), "backend", "completed", `["Go","PostgreSQL"]`)
	args = append(args, sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1), int64(7))
	for i := 0; i < 8; i++ {
		args = append(args, sqlmock.AnyArg())
	}
	args = append(args, e.UpdatedAt)
	// INSERT values
	args = append(args, e.ID, e.Title)
	for i := 0; i < 17; i++ {
		args = append(args, sqlmock.AnyArg())
	}
	args = append(args, e.CreatedAt, e.UpdatedAt)

	mock.ExpectExec(`MERGE INTO portfolio_entries t`).
		WithArgs(toDriverArgs(args)...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = dialect.UpsertEntry(context.Background(), tx, row)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDialect_UpsertEntry_QueryGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	e := sampleEntry()
	row, err := toRow(&e)
	require.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectExec(`(?s)INSERT INTO portfolio_entries .* ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(toDriverArgs(row.args())...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&PostgresDialect{}).UpsertEntry(context.Background(), tx, row)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func toDriverArgs(args []any) []driver.Value {
	out := make([]driver.Value, len(args))
	for i, a := range args {
		if m, ok := a.(sqlmock.Argument); ok {
			out[i] = m
			continue
		}
		out[i] = equalArg{want: a}
	}
	return out
}

// equalArg compares against the driver.Value the argument converts to.
type equalArg struct {
	want any
}

func (a equalArg) Match(v driver.Value) bool {
	want := a.want
	if valuer, ok := want.(driver.Valuer); ok {
		want, _ = valuer.Value()
	}
	if want, ok := want.(time.Time); ok {
		got, ok := v.(time.Time)
		return ok && got.Equal(want)
	}
	return v == want
}
