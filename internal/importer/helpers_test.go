package importer

import (
	"strings"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/require"
)

// ics joins content lines with CRLF and wraps them in a VCALENDAR.
func ics(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func todo(props ...string) []string {
	out := append([]string{"BEGIN:VTODO"}, props...)
	return append(out, "END:VTODO")
}

func decodeTodos(t *testing.T, doc string) []*ical.Component {
	t.Helper()
	cals, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return Todos(cals...)
}

func decodeOne(t *testing.T, props ...string) *ical.Component {
	t.Helper()
	todos := decodeTodos(t, ics(todo(props...)...))
	require.Len(t, todos, 1)
	return todos[0]
}
