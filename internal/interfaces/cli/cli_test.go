package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
	"github.com/jmanzanog/showcase/internal/infrastructure/persistence/memory"
	"github.com/jmanzanog/showcase/internal/infrastructure/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *App {
	t.Helper()
	repo := memory.NewEntryRepository(seed.MustEntries()...)
	return &App{
		Service:    application.NewShowcaseService(repo, application.DefaultOptions()),
		IsTerminal: func() bool { return true },
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestListCmd_Table(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "list", "--type", "frontend")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Vue3 企业级后台管理系统")
	assert.Contains(t, out, "7 entries")
}

func TestListCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "list", "--json", "--keyword", "vue3", "--page-size", "100")
	require.NoError(t, err)

	var result application.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 12, result.Total)
	assert.Len(t, result.List, 12)
}

func TestListCmd_JSONWhenNotTerminal(t *testing.T) {
	app := testApp(t)
	app.IsTerminal = func() bool { return false }

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)

	var result application.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 26, result.Total)
	assert.Len(t, result.List, domain.DefaultPageSize)
}

func TestListCmd_InvalidFilter(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "list", "--status", "paused")
	assert.ErrorIs(t, err, domain.ErrInvalidEnumValue)
}

func TestListCmd_HugePageSize(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "list", "--page-size", "9223372036854775807")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 1, 26 entries")

	out, err = executeCmd(t, app, "list", "--page-size", "9223372036854775807", "--page", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries match.")
}

func TestListCmd_NoMatches(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "list", "--keyword", "cobol")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries match.")
}

func TestGetCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Vue3 企业级后台管理系统")
	assert.Contains(t, out, "已完成")

	_, err = executeCmd(t, app, "get", "nonexistent-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = executeCmd(t, app, "get")
	assert.Error(t, err)
}

func TestStatsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total entries: 26")
	assert.Contains(t, out, "TECHNOLOGY")

	out, err = executeCmd(t, app, "stats", "--json")
	require.NoError(t, err)
	var stats domain.StatsSummary
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 17, stats.ByStatus[domain.StatusCompleted])
	assert.Len(t, stats.TopTechnologies, domain.DefaultTopTechnologies)
}

func TestCreateAndUpdateCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "create", "--json",
		"--title", "CLI entry", "--type", "backend", "--tech", "Go,gRPC", "--featured")
	require.NoError(t, err)

	var created domain.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "CLI entry", created.Title)
	assert.Equal(t, domain.ProjectTypeBackend, created.ProjectType)
	assert.Equal(t, domain.StatusDeveloping, created.Status)
	assert.Equal(t, []string{"Go", "gRPC"}, created.Technologies)
	assert.True(t, created.Featured)

	out, err = executeCmd(t, app, "update", created.ID, "--json", "--status", "completed")
	require.NoError(t, err)

	var updated domain.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, "CLI entry", updated.Title)
	assert.Equal(t, []string{"Go", "gRPC"}, updated.Technologies)
}

func TestCreateCmd_RequiresTitleAndType(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "create", "--title", "No type")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "create", "--title", "Bad type", "--type", "spaceship")
	assert.ErrorIs(t, err, domain.ErrInvalidEnumValue)
}

func TestDeleteCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "delete", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 3")

	out, err = executeCmd(t, app, "batch-delete", "1", "nonexistent-id")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1, failed 1 (nonexistent-id)")

	out, err = executeCmd(t, app, "list", "--json", "--page-size", "100")
	require.NoError(t, err)
	var result application.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 24, result.Total)
}

func TestSortCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "sort", "1=50", "2=40", "missing=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2, failed 1")

	entry, err := app.Service.GetPortfolioByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 50, entry.SortOrder)

	_, err = executeCmd(t, app, "sort", "1:50")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "sort", "1=first")
	assert.Error(t, err)
}

func TestFeatureCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "feature", "1", "--off", "--json")
	require.NoError(t, err)
	var entry domain.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.False(t, entry.Featured)

	out, err = executeCmd(t, app, "feature", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "★ yes")
}

func TestRootCmd_Connect(t *testing.T) {
	var gotServer string
	var gotLocal bool
	seeded := testApp(t).Service

	app := &App{
		Connect: func(server string, local bool) (Service, error) {
			gotServer, gotLocal = server, local
			return seeded, nil
		},
	}

	_, err := executeCmd(t, app, "stats", "--json", "--server", "http://example.test:9000", "--local")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test:9000", gotServer)
	assert.True(t, gotLocal)

	failing := &App{
		Connect: func(string, bool) (Service, error) {
			return nil, errors.New("dial failed")
		},
	}
	_, err = executeCmd(t, failing, "stats")
	assert.EqualError(t, err, "dial failed")
}

func TestRootCmd_NoService(t *testing.T) {
	_, err := executeCmd(t, &App{}, "stats")
	assert.Error(t, err)
}

func TestParseSortArgs(t *testing.T) {
	updates, err := parseSortArgs([]string{"a=1", "b=-2"})
	require.NoError(t, err)
	assert.Equal(t, []application.SortOrderUpdate{{ID: "a", SortOrder: 1}, {ID: "b", SortOrder: -2}}, updates)

	_, err = parseSortArgs([]string{"=3"})
	assert.Error(t, err)
}

func TestRenderTable_AlignsWideCells(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"前端", "x"}, {"abcd", "y"}})
	assert.Contains(t, out, "前端  x")
	assert.Contains(t, out, "abcd  y")
}
