package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-ical"
)

// CompToDo is the component name of calendar tasks.
const CompToDo = "VTODO"

const productID = "-//taskrange//taskrange//EN"

// LoadFile reads every VCALENDAR object in an .ics file.
func LoadFile(path string) ([]*ical.Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cals, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cals, nil
}

// Decode reads VCALENDAR objects from r until EOF.
func Decode(r io.Reader) ([]*ical.Calendar, error) {
	dec := ical.NewDecoder(r)
	var cals []*ical.Calendar
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		cals = append(cals, cal)
	}
	return cals, nil
}

// Todos returns the VTODO children of the given calendars, in document order.
func Todos(cals ...*ical.Calendar) []*ical.Component {
	var todos []*ical.Component
	for _, cal := range cals {
		for _, child := range cal.Children {
			if child.Name == CompToDo {
				todos = append(todos, child)
			}
		}
	}
	return todos
}

// EncodeTodo renders a single VTODO wrapped in its own VCALENDAR.
func EncodeTodo(comp *ical.Component) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText("VERSION", "2.0")
	cal.Props.SetText("PRODID", productID)
	cal.Children = append(cal.Children, comp)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encoding VTODO: %w", err)
	}
	return buf.String(), nil
}
