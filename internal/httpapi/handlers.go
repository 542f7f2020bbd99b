package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/repository"
	"github.com/alexanderramin/taskrange/internal/service"
)

type Handler struct {
	queries service.QueryService
	rules   service.ValidationService
	logger  *slog.Logger
}

func NewHandler(queries service.QueryService, rules service.ValidationService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{queries: queries, rules: rules, logger: logger}
}

// GET /tasks?start=&end=[&exclude_undated=true]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseInstant(q.Get("start"), "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseInstant(q.Get("end"), "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := domain.NewQueryRange(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var opts service.QueryOptions
	if v := q.Get("exclude_undated"); v != "" {
		opts.ExcludeUndated, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("exclude_undated: invalid boolean %q", v))
			return
		}
	}

	tasks, err := h.queries.Query(r.Context(), rng, opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed querying tasks")
		return
	}

	writeJSON(w, http.StatusOK, NewTaskListResponse(rng, tasks))
}

// GET /tasks/{id}
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.queries.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("task %q not found", r.PathValue("id")))
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "get task failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed loading task")
		return
	}
	writeJSON(w, http.StatusOK, newTaskResponse(task))
}

// GET /rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules := h.rules.Rules()
	resp := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, RuleResponse{
			Property:    rule.Property,
			Spec:        rule.Spec.String(),
			Description: rule.Spec.Describe(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseInstant reads an RFC 3339 query value. An unescaped "+" in the offset
// arrives as a space after query decoding, so a space is read back as "+".
func parseInstant(v, name string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(time.RFC3339, strings.Replace(v, " ", "+", 1))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected RFC 3339 timestamp, got %q", name, v)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
