package domain

import (
	"fmt"
	"time"
)

// TaskTemporalProfile is the snapshot of the five temporal properties of a
// task that time-range filtering looks at. Any subset may be nil.
type TaskTemporalProfile struct {
	Start     *time.Time
	Duration  *Duration
	Due       *time.Time
	Completed *time.Time
	Created   *time.Time
}

// IsUndated reports whether none of the temporal properties are set.
func (p TaskTemporalProfile) IsUndated() bool {
	return p.Start == nil && p.Duration == nil && p.Due == nil &&
		p.Completed == nil && p.Created == nil
}

// QueryRange is the window a calendar query filters against. Callers
// guarantee Start <= End.
type QueryRange struct {
	Start time.Time
	End   time.Time
}

// NewQueryRange builds a QueryRange, rejecting an end before the start.
func NewQueryRange(start, end time.Time) (QueryRange, error) {
	if end.Before(start) {
		return QueryRange{}, fmt.Errorf("range end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return QueryRange{Start: start, End: end}, nil
}

// Task is a stored VTODO.
type Task struct {
	ID      string
	UID     string
	Summary string
	Status  TaskStatus
	Profile TaskTemporalProfile

	// Source is the file the task was imported from.
	Source string
	// Raw holds the encoded VTODO component.
	Raw string

	ImportedAt time.Time
}

// DisplayID returns the first 8 characters of the ID.
func (t *Task) DisplayID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}
