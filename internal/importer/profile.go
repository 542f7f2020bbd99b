package importer

import (
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/emersion/go-ical"
)

// Property names read from VTODO components.
const (
	PropUID       = "UID"
	PropSummary   = "SUMMARY"
	PropStatus    = "STATUS"
	PropDTStart   = "DTSTART"
	PropDuration  = "DURATION"
	PropDue       = "DUE"
	PropCompleted = "COMPLETED"
	PropCreated   = "CREATED"
)

// ExtractProfile reads the temporal properties of a VTODO. Missing properties
// leave the corresponding field nil. Floating date-times and dates are
// interpreted in loc.
//
// Any property that is present but unparseable fails the whole extraction,
// so a partially built profile is never returned.
func ExtractProfile(comp *ical.Component, loc *time.Location) (domain.TaskTemporalProfile, error) {
	var p domain.TaskTemporalProfile
	var err error

	if p.Start, err = instant(comp, PropDTStart, loc); err != nil {
		return domain.TaskTemporalProfile{}, err
	}
	if prop := comp.Props.Get(PropDuration); prop != nil {
		d, err := domain.ParseDuration(prop.Value)
		if err != nil {
			return domain.TaskTemporalProfile{}, &PropertyError{
				Property: PropDuration,
				Value:    prop.Value,
				Kind:     ErrMalformedDuration,
			}
		}
		p.Duration = &d
	}
	if p.Due, err = instant(comp, PropDue, loc); err != nil {
		return domain.TaskTemporalProfile{}, err
	}
	if p.Completed, err = instant(comp, PropCompleted, loc); err != nil {
		return domain.TaskTemporalProfile{}, err
	}
	if p.Created, err = instant(comp, PropCreated, loc); err != nil {
		return domain.TaskTemporalProfile{}, err
	}

	return p, nil
}

func instant(comp *ical.Component, name string, loc *time.Location) (*time.Time, error) {
	prop := comp.Props.Get(name)
	if prop == nil {
		return nil, nil
	}
	t, err := prop.DateTime(loc)
	if err != nil {
		return nil, &PropertyError{
			Property: name,
			Value:    prop.Value,
			Kind:     ErrInvalidInstant,
			Err:      err,
		}
	}
	return &t, nil
}
