package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// ConvertTodo turns a VTODO component into a domain task ready for
// persistence. Extraction errors are returned as-is so callers can match
// ErrMalformedDuration and ErrInvalidInstant. Cardinality problems are not
// conversion errors.
func ConvertTodo(comp *ical.Component, loc *time.Location, source string) (*domain.Task, error) {
	profile, err := ExtractProfile(comp, loc)
	if err != nil {
		return nil, err
	}

	// The encoder rejects components missing UID or DTSTAMP; such tasks are
	// stored without Raw.
	raw, _ := EncodeTodo(comp)

	return &domain.Task{
		ID:         uuid.New().String(),
		UID:        textValue(comp, PropUID),
		Summary:    textValue(comp, PropSummary),
		Status:     domain.TaskStatus(textValue(comp, PropStatus)),
		Profile:    profile,
		Source:     source,
		Raw:        raw,
		ImportedAt: time.Now().UTC(),
	}, nil
}

// ConvertAll converts every VTODO in cals. All conversion errors are
// collected; the returned tasks only include components that converted.
func ConvertAll(cals []*ical.Calendar, loc *time.Location, source string) ([]*domain.Task, []error) {
	var tasks []*domain.Task
	var errs []error
	for i, comp := range Todos(cals...) {
		task, err := ConvertTodo(comp, loc, source)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: todo[%d] %s: %w", source, i, describe(comp), err))
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, errs
}

func textValue(comp *ical.Component, name string) string {
	prop := comp.Props.Get(name)
	if prop == nil {
		return ""
	}
	s, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return s
}

func describe(comp *ical.Component) string {
	if uid := textValue(comp, PropUID); uid != "" {
		return fmt.Sprintf("(UID %s)", uid)
	}
	return "(no UID)"
}
