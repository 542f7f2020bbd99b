// Package filter decides whether tasks fall inside a calendar query window
// using CalDAV time-range semantics (RFC 4791 section 9.9).
package filter

import (
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
)

// TaskInTimeRange reports whether a task with profile p overlaps r.
//
// The rule applied depends on which properties are set, checked in order:
// DTSTART (with DURATION, then DUE), DUE, COMPLETED and CREATED, COMPLETED,
// CREATED. A task with none of them always matches. DURATION takes precedence
// over DUE when both accompany DTSTART.
func TaskInTimeRange(p domain.TaskTemporalProfile, r domain.QueryRange) bool {
	if p.Start != nil {
		start := *p.Start
		switch {
		case p.Duration != nil:
			end := p.Duration.AddTo(start)
			return notAfter(r.Start, end) && r.End.After(start)
		case p.Due != nil:
			due := *p.Due
			return (r.Start.Before(due) || notAfter(r.Start, start)) &&
				(r.End.After(start) || notBefore(r.End, due))
		default:
			return notAfter(r.Start, start) && r.End.After(start)
		}
	}

	if p.Due != nil {
		due := *p.Due
		return r.Start.Before(due) && notBefore(r.End, due)
	}

	if p.Completed != nil && p.Created != nil {
		completed, created := *p.Completed, *p.Created
		return (notAfter(r.Start, created) || notAfter(r.Start, completed)) &&
			(notBefore(r.End, created) || notBefore(r.End, completed))
	}

	if p.Completed != nil {
		completed := *p.Completed
		return notAfter(r.Start, completed) && notBefore(r.End, completed)
	}

	if p.Created != nil {
		return r.End.After(*p.Created)
	}

	return true
}

// Tasks returns the tasks whose profile overlaps r, preserving order.
func Tasks(tasks []*domain.Task, r domain.QueryRange) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if TaskInTimeRange(t.Profile, r) {
			out = append(out, t)
		}
	}
	return out
}

// notAfter is a <= b.
func notAfter(a, b time.Time) bool { return !a.After(b) }

// notBefore is a >= b.
func notBefore(a, b time.Time) bool { return !a.Before(b) }
