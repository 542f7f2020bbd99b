package importer

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/taskrange/internal/domain"
)

var (
	// ErrMalformedDuration is returned when a DURATION value does not follow
	// the iCalendar duration grammar.
	ErrMalformedDuration = domain.ErrMalformedDuration

	// ErrInvalidInstant is returned when a date-time property cannot be
	// resolved to a point in time (bad syntax or unknown TZID).
	ErrInvalidInstant = errors.New("invalid instant")
)

// PropertyError reports a property whose value could not be converted.
// It matches both its Kind sentinel and the underlying cause.
type PropertyError struct {
	Property string
	Value    string
	Kind     error
	Err      error
}

func (e *PropertyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v: %v", e.Property, e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Property, e.Value, e.Kind)
}

func (e *PropertyError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
