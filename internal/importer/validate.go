package importer

import (
	"fmt"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/emersion/go-ical"
)

// CardinalityViolation reports a property whose occurrence count on a
// component contradicts its rule.
type CardinalityViolation struct {
	Property string
	Expected domain.RuleSpec
	Actual   int
}

func (v CardinalityViolation) Error() string {
	return fmt.Sprintf("%s: expected %s, found %d", v.Property, v.Expected.Describe(), v.Actual)
}

// ValidateComponent checks comp against rules and returns every violation,
// in rule declaration order. Properties on comp that the table does not
// mention are not constrained.
func ValidateComponent(comp *ical.Component, rules domain.RuleTable) []CardinalityViolation {
	var violations []CardinalityViolation
	for _, r := range rules {
		count := len(comp.Props[r.Property])
		if !r.Spec.Allows(count) {
			violations = append(violations, CardinalityViolation{
				Property: r.Property,
				Expected: r.Spec,
				Actual:   count,
			})
		}
	}
	return violations
}

// ConsistencyIssue is a cross-property problem the cardinality table cannot
// express. Issues are advisory; time-range filtering still applies its own
// precedence when they occur.
type ConsistencyIssue struct {
	Properties []string
	Message    string
}

func (i ConsistencyIssue) String() string {
	return i.Message
}

// CheckConsistency reports DUE and DURATION set together, and DURATION set
// without DTSTART (RFC 5545 section 3.6.2).
func CheckConsistency(comp *ical.Component) []ConsistencyIssue {
	var issues []ConsistencyIssue

	hasDue := len(comp.Props[PropDue]) > 0
	hasDuration := len(comp.Props[PropDuration]) > 0
	hasStart := len(comp.Props[PropDTStart]) > 0

	if hasDue && hasDuration {
		issues = append(issues, ConsistencyIssue{
			Properties: []string{PropDue, PropDuration},
			Message:    "DUE and DURATION must not both be set; DURATION takes precedence for time-range filtering",
		})
	}
	if hasDuration && !hasStart {
		issues = append(issues, ConsistencyIssue{
			Properties: []string{PropDuration, PropDTStart},
			Message:    "DURATION requires DTSTART; it is ignored for time-range filtering",
		})
	}
	return issues
}

// ComponentReport is the validation outcome for one VTODO.
type ComponentReport struct {
	Index      int
	UID        string
	Violations []CardinalityViolation
	Issues     []ConsistencyIssue
}

// OK reports whether the component has no cardinality violations.
// Consistency issues do not count.
func (r ComponentReport) OK() bool {
	return len(r.Violations) == 0
}

// ValidateTodos validates every VTODO in cals against rules.
func ValidateTodos(cals []*ical.Calendar, rules domain.RuleTable) []ComponentReport {
	todos := Todos(cals...)
	reports := make([]ComponentReport, 0, len(todos))
	for i, comp := range todos {
		reports = append(reports, ComponentReport{
			Index:      i,
			UID:        textValue(comp, PropUID),
			Violations: ValidateComponent(comp, rules),
			Issues:     CheckConsistency(comp),
		})
	}
	return reports
}
