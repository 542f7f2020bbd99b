package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
)

// instantLayout keeps sub-second precision and the original UTC offset.
const instantLayout = time.RFC3339Nano

// parseNullableInstant parses a sql.NullString into a *time.Time.
// NULL and empty values yield nil. When zone names a loadable location the
// result is moved into it; otherwise the stored offset is kept.
func parseNullableInstant(s, zone sql.NullString, column string) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(instantLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", column, err)
	}
	if zone.Valid && zone.String != "" {
		if loc, err := time.LoadLocation(zone.String); err == nil {
			t = t.In(loc)
		}
	}
	return &t, nil
}

// nullableInstant converts a *time.Time to a value suitable for SQLite storage.
func nullableInstant(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(instantLayout)
}

// nullableZone returns the location name stored next to an instant.
func nullableZone(t *time.Time) any {
	if t == nil {
		return nil
	}
	if name := t.Location().String(); name != "" {
		return name
	}
	return nil
}

func parseNullableDuration(s sql.NullString) (*domain.Duration, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := domain.ParseDuration(s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing duration: %w", err)
	}
	return &d, nil
}

func nullableDuration(d *domain.Duration) any {
	if d == nil {
		return nil
	}
	return d.String()
}
