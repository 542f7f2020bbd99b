package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/taskrange/internal/repository"
	"github.com/alexanderramin/taskrange/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// writeICS writes a calendar holding the given VTODOs, each a list of
// property lines, into a temp file.
func writeICS(t *testing.T, name string, todos ...[]string) string {
	t.Helper()
	var lines []string
	for _, props := range todos {
		lines = append(lines, testutil.VTodo(props...)...)
	}
	return testutil.WriteFile(t, name, testutil.ICS(lines...))
}

func props(uid string, extra ...string) []string {
	return append([]string{"UID:" + uid, "DTSTAMP:20240101T000000Z"}, extra...)
}

func writeICSRaw(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.WriteFile(t, name, content)
}

func storedCount(t *testing.T, repo repository.TaskRepo) int {
	t.Helper()
	all, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	return len(all)
}
