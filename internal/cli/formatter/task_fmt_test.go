package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/importer"
	"github.com/alexanderramin/taskrange/internal/service"
	"github.com/alexanderramin/taskrange/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	DisableColor()
	m.Run()
}

func TestFormatTaskList(t *testing.T) {
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("Write report",
		testutil.WithStart(start),
		testutil.WithDuration(domain.Duration{Hours: 1, Minutes: 30}))
	r := domain.QueryRange{Start: start.Add(-time.Hour), End: start.Add(time.Hour)}

	out := FormatTaskList([]*domain.Task{task}, r, time.UTC, time.Time{})
	assert.Contains(t, out, "TASKS")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "2024-01-10 09:00")
	assert.Contains(t, out, "PT1H30M")
	assert.Contains(t, out, task.DisplayID())
	assert.Contains(t, out, "1 task(s)")

	empty := FormatTaskList(nil, r, time.UTC, time.Time{})
	assert.Contains(t, empty, "No tasks in range.")
}

func TestFormatTaskList_DueHint(t *testing.T) {
	now := time.Date(2024, 4, 12, 12, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("Taxes", testutil.WithDue(time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)))
	r := domain.QueryRange{Start: now, End: now.AddDate(0, 1, 0)}

	out := FormatTaskList([]*domain.Task{task}, r, time.UTC, now)
	assert.Contains(t, out, "2024-04-15 12:00 (In 3d)")
}

func TestFormatCheckResults(t *testing.T) {
	in := testutil.NewTestTask("in")
	out := testutil.NewTestTask("out")
	got := FormatCheckResults([]service.CheckResult{
		{Task: in, InRange: true},
		{Task: out, InRange: false},
	}, time.UTC)

	assert.Contains(t, got, "● IN")
	assert.Contains(t, got, "○ OUT")
	assert.Contains(t, got, in.UID)
	assert.Contains(t, got, "1 of 2 in range")
	assert.Equal(t, "No VTODO components found.\n", FormatCheckResults(nil, time.UTC))
}

func TestFormatRules(t *testing.T) {
	out := FormatRules(domain.TaskValidationRules())
	assert.Contains(t, out, "PROPERTY")
	assert.Contains(t, out, "exactly one")
	assert.Less(t, strings.Index(out, "UID"), strings.Index(out, "RDATE"))
}

func TestFormatFileReports(t *testing.T) {
	out := FormatFileReports([]service.FileReport{
		{Path: "clean.ics", Reports: []importer.ComponentReport{{Index: 0, UID: "a"}}},
		{Path: "broken.ics", Reports: []importer.ComponentReport{{
			Index: 1,
			UID:   "b",
			Violations: []importer.CardinalityViolation{
				{Property: "SUMMARY", Expected: domain.RuleOptional, Actual: 2},
			},
			Issues: []importer.ConsistencyIssue{{Message: "DURATION requires DTSTART"}},
		}}},
	})
	assert.Contains(t, out, "✓ clean.ics")
	assert.Contains(t, out, "✗ broken.ics")
	assert.Contains(t, out, "todo[1] b")
	assert.Contains(t, out, "SUMMARY: expected at most one, found 2")
	assert.Contains(t, out, "warn")
}

func TestFormatImportResult(t *testing.T) {
	out := FormatImportResult(&service.ImportResult{
		Files:     []service.FileImport{{Path: "work.ics", Imported: 3, Replaced: 2}},
		TaskCount: 3,
	})
	assert.Contains(t, out, "work.ics  3 imported")
	assert.Contains(t, out, "(2 replaced)")
	assert.Contains(t, out, "3 task(s) from 1 file(s)")
}
