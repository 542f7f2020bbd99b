package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/taskrange/internal/repository"
	"github.com/alexanderramin/taskrange/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_StoresTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	obs := &recordingObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), nil, obs)
	ctx := context.Background()

	path := writeICS(t, "work.ics",
		props("a", "SUMMARY:Report", "DUE:20240115T000000Z"),
		props("b", "DTSTART:20240110T090000Z", "DURATION:PT1H"),
	)

	result, err := svc.Import(ctx, []string{path}, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TaskCount)
	require.Len(t, result.Files, 1)
	assert.Equal(t, path, result.Files[0].Path)
	assert.Equal(t, 2, result.Files[0].Imported)
	assert.Zero(t, result.Files[0].Replaced)
	assert.Empty(t, result.Warnings())

	stored, err := repo.ListBySource(ctx, path)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	ev := obs.last()
	assert.Equal(t, "import", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["tasks"])
}

func TestImport_ReimportReplacesFileTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	svc := NewImportService(testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	path := writeICS(t, "work.ics", props("a"), props("b"))
	_, err := svc.Import(ctx, []string{path}, ImportOptions{})
	require.NoError(t, err)

	result, err := svc.Import(ctx, []string{path}, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files[0].Replaced)

	assert.Equal(t, 2, storedCount(t, repo))
}

func TestImport_GlobExpandsAndDeduplicates(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database), nil)

	first := writeICS(t, "nested/one.ics", props("one"))
	dir := filepath.Dir(filepath.Dir(first))
	second := testutil.WriteFile(t, "two.ics", testutil.ICS(testutil.VTodo(props("two")...)...))

	pattern := filepath.Join(dir, "**", "*.ics")
	result, err := svc.Import(context.Background(), []string{pattern, first, second}, ImportOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.TaskCount)
}

func TestImport_NoMatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database), nil)

	_, err := svc.Import(context.Background(), []string{filepath.Join(t.TempDir(), "*.ics")}, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestImport_StrictRejectsViolations(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	obs := &recordingObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), nil, obs)
	ctx := context.Background()

	path := writeICS(t, "bad.ics",
		props("a", "SUMMARY:one", "SUMMARY:two"),
		[]string{"SUMMARY:no uid"},
	)

	_, err := svc.Import(ctx, []string{path}, ImportOptions{Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (3 errors)")
	assert.Contains(t, err.Error(), "SUMMARY: expected at most one, found 2")
	assert.Contains(t, err.Error(), "UID: expected exactly one, found 0")
	assert.Contains(t, err.Error(), "DTSTAMP: expected exactly one, found 0")
	assert.False(t, obs.last().Success)

	assert.Zero(t, storedCount(t, repo))
}

func TestImport_NonStrictKeepsViolationsAsWarnings(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database), nil)

	path := writeICS(t, "warn.ics",
		props("a", "DTSTART:20240110T090000Z", "DUE:20240111T000000Z", "DURATION:PT1H"),
	)

	result, err := svc.Import(context.Background(), []string{path}, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TaskCount)

	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "(UID a)")
	assert.Contains(t, warnings[0], "DUE and DURATION")
}

func TestImport_ConversionErrorsAbortWholeRun(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	svc := NewImportService(testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	good := writeICS(t, "good.ics", props("ok", "DUE:20240115T000000Z"))
	bad := writeICS(t, "bad.ics",
		props("x", "DTSTART:20240110T090000Z", "DURATION:1 hour"),
		props("y", "DUE:not-a-date"),
	)

	_, err := svc.Import(ctx, []string{good, bad}, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(2 errors)")
	assert.Contains(t, err.Error(), "(UID x)")
	assert.Contains(t, err.Error(), "(UID y)")

	assert.Zero(t, storedCount(t, repo), "valid files are not stored when another file fails")
}

func TestImport_RollbackOnCreateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	path := writeICS(t, "work.ics", props("a"), props("b"), props("c"))
	_, err := NewImportService(testutil.NewTestUoW(database), nil).Import(ctx, []string{path}, ImportOptions{})
	require.NoError(t, err)

	// Second import deletes the three stored tasks, then fails inserting
	// the second replacement.
	failUoW := &testutil.FailingUoW{
		DB:       database,
		Contains: "INSERT INTO tasks",
		FailOn:   2,
		Err:      fmt.Errorf("injected insert failure"),
	}
	_, err = NewImportService(failUoW, nil).Import(ctx, []string{path}, ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")
	assert.Contains(t, err.Error(), `storing task "b"`)

	stored, err := repo.ListBySource(ctx, path)
	require.NoError(t, err)
	require.Len(t, stored, 3, "previous import must survive the rollback")
}
