package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/httpapi"
	"github.com/alexanderramin/taskrange/internal/repository"
	"github.com/alexanderramin/taskrange/internal/service"
	"github.com/alexanderramin/taskrange/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newApp(t *testing.T, tasks ...*domain.Task) (http.Handler, *prometheus.Registry) {
	t.Helper()

	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	for _, task := range tasks {
		require.NoError(t, repo.Create(context.Background(), task))
	}

	reg := prometheus.NewRegistry()
	metrics, err := service.NewMetricsUseCaseObserver(reg)
	require.NoError(t, err)

	h := httpapi.NewHandler(
		service.NewQueryService(repo, time.UTC, metrics),
		service.NewValidationService(metrics),
		quietLogger,
	)
	return httpapi.NewRouter(h, reg), reg
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestListTasks(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	router, _ := newApp(t,
		testutil.NewTestTask("standup",
			testutil.WithStart(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)),
			testutil.WithDuration(domain.Duration{Minutes: 15}),
			testutil.WithImportedAt(base)),
		testutil.NewTestTask("later", testutil.WithDue(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
			testutil.WithImportedAt(base.Add(time.Second))),
		testutil.NewTestTask("someday", testutil.WithImportedAt(base.Add(2*time.Second))),
	)

	rr := doGet(t, router, "/tasks?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	resp := decode[httpapi.TaskListResponse](t, rr)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "standup", resp.Tasks[0].Summary)
	assert.Equal(t, "PT15M", resp.Tasks[0].Duration)
	require.NotNil(t, resp.Tasks[0].Start)
	assert.Equal(t, "2024-01-10T09:00:00Z", *resp.Tasks[0].Start)
	assert.Nil(t, resp.Tasks[0].Due)
	assert.Equal(t, "someday", resp.Tasks[1].Summary)

	rr = doGet(t, router, "/tasks?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z&exclude_undated=true")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[httpapi.TaskListResponse](t, rr).Count)
}

func TestListTasks_EmptyResultIsArray(t *testing.T) {
	router, _ := newApp(t)
	rr := doGet(t, router, "/tasks?start=2024-01-01T00:00:00Z&end=2024-01-01T00:00:00Z")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"tasks":[]`)
}

func TestListTasks_UnescapedOffset(t *testing.T) {
	router, _ := newApp(t,
		testutil.NewTestTask("review", testutil.WithDue(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))),
	)

	// The raw "+" decodes to a space; the encoded one does not.
	rr := doGet(t, router, "/tasks?start=2024-01-10T09:30:00+01:00&end=2024-01-10T11:00:00%2B01:00")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[httpapi.TaskListResponse](t, rr)
	assert.Equal(t, "2024-01-10T09:30:00+01:00", resp.Start)
	assert.Equal(t, 1, resp.Count)
}

func TestGetTask(t *testing.T) {
	task := testutil.NewTestTask("review",
		testutil.WithDue(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)),
		testutil.WithSource("work.ics"))
	router, _ := newApp(t, task)

	rr := doGet(t, router, "/tasks/"+task.ID)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[httpapi.TaskResponse](t, rr)
	assert.Equal(t, task.ID, resp.ID)
	assert.Equal(t, "review", resp.Summary)
	assert.Equal(t, "work.ics", resp.Source)
	require.NotNil(t, resp.Due)
	assert.Equal(t, "2024-01-10T09:00:00Z", *resp.Due)

	rr = doGet(t, router, "/tasks/missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decode[httpapi.ErrorResponse](t, rr).Error, `"missing"`)
}

func TestListTasks_BadRequest(t *testing.T) {
	router, _ := newApp(t)

	tests := []struct {
		name    string
		query   string
		wantErr string
	}{
		{"missing start", "?end=2024-01-01T00:00:00Z", "start is required"},
		{"missing end", "?start=2024-01-01T00:00:00Z", "end is required"},
		{"bad start", "?start=yesterday&end=2024-01-01T00:00:00Z", "expected RFC 3339"},
		{"reversed", "?start=2024-02-01T00:00:00Z&end=2024-01-01T00:00:00Z", "is before start"},
		{"bad flag", "?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z&exclude_undated=maybe", "exclude_undated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doGet(t, router, "/tasks"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decode[httpapi.ErrorResponse](t, rr).Error, tt.wantErr)
		})
	}
}

func TestListRules(t *testing.T) {
	router, _ := newApp(t)
	rr := doGet(t, router, "/rules")
	require.Equal(t, http.StatusOK, rr.Code)

	rules := decode[[]httpapi.RuleResponse](t, rr)
	require.Len(t, rules, len(domain.TaskValidationRules()))
	assert.Equal(t, httpapi.RuleResponse{Property: "UID", Spec: "1", Description: "exactly one"}, rules[0])
	assert.Equal(t, "RDATE", rules[len(rules)-1].Property)
	assert.Equal(t, "*", rules[len(rules)-1].Spec)
}

func TestMetrics(t *testing.T) {
	router, _ := newApp(t)
	require.Equal(t, http.StatusOK, doGet(t, router, "/tasks?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z").Code)

	rr := doGet(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `taskrange_use_case_total{outcome="success",use_case="query"} 1`)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newApp(t)
	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
