package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/google/uuid"
)

var testUIDCounter atomic.Int64

// TaskOption customizes a task built by NewTestTask.
type TaskOption func(*domain.Task)

func WithStart(t time.Time) TaskOption {
	return func(task *domain.Task) {
		task.Profile.Start = &t
	}
}

func WithDuration(d domain.Duration) TaskOption {
	return func(task *domain.Task) {
		task.Profile.Duration = &d
	}
}

func WithDue(t time.Time) TaskOption {
	return func(task *domain.Task) {
		task.Profile.Due = &t
	}
}

func WithCompleted(t time.Time) TaskOption {
	return func(task *domain.Task) {
		task.Profile.Completed = &t
	}
}

func WithCreated(t time.Time) TaskOption {
	return func(task *domain.Task) {
		task.Profile.Created = &t
	}
}

func WithSource(path string) TaskOption {
	return func(task *domain.Task) {
		task.Source = path
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(task *domain.Task) {
		task.Status = s
	}
}

func WithImportedAt(t time.Time) TaskOption {
	return func(task *domain.Task) {
		task.ImportedAt = t
	}
}

// NewTestTask builds an undated task with a unique UID; options add
// temporal properties.
func NewTestTask(summary string, opts ...TaskOption) *domain.Task {
	n := testUIDCounter.Add(1)
	task := &domain.Task{
		ID:         uuid.New().String(),
		UID:        fmt.Sprintf("test-%s-%d", strings.ToLower(strings.ReplaceAll(summary, " ", "-")), n),
		Summary:    summary,
		Status:     domain.TaskNeedsAction,
		Source:     "test.ics",
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// ICS wraps content lines in a VCALENDAR, joined with CRLF.
func ICS(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

// VTodo wraps properties in BEGIN/END:VTODO lines.
func VTodo(props ...string) []string {
	out := append([]string{"BEGIN:VTODO"}, props...)
	return append(out, "END:VTODO")
}
