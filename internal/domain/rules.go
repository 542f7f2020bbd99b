package domain

// PropertyRule binds a property name to its cardinality constraint.
type PropertyRule struct {
	Property string   `json:"property" yaml:"property"`
	Spec     RuleSpec `json:"spec" yaml:"spec"`
}

// RuleTable is an ordered list of property rules. Order is the declaration
// order and only matters for deterministic enumeration.
type RuleTable []PropertyRule

// Lookup returns the constraint for name. Names absent from the table carry
// no constraint: the result is (RuleAny, false).
func (t RuleTable) Lookup(name string) (RuleSpec, bool) {
	for _, r := range t {
		if r.Property == name {
			return r.Spec, true
		}
	}
	return RuleAny, false
}

// Properties returns the property names in declaration order.
func (t RuleTable) Properties() []string {
	names := make([]string, len(t))
	for i, r := range t {
		names[i] = r.Property
	}
	return names
}

var taskValidationRules = RuleTable{
	{"UID", RuleExactlyOne},
	{"DTSTAMP", RuleExactlyOne},

	{"CLASS", RuleOptional},
	{"COMPLETED", RuleOptional},
	{"CREATED", RuleOptional},
	{"DESCRIPTION", RuleOptional},
	{"DTSTART", RuleOptional},
	{"GEO", RuleOptional},
	{"LAST-MODIFICATION", RuleOptional},
	{"LOCATION", RuleOptional},
	{"ORGANIZER", RuleOptional},
	{"PERCENT", RuleOptional},
	{"PRIORITY", RuleOptional},
	{"RECURRENCE-ID", RuleOptional},
	{"SEQUENCE", RuleOptional},
	{"STATUS", RuleOptional},
	{"SUMMARY", RuleOptional},
	{"URL", RuleOptional},

	{"RRULE", RuleOptional},
	{"DUE", RuleOptional},
	{"DURATION", RuleOptional},

	{"ATTACH", RuleAny},
	{"ATTENDEE", RuleAny},
	{"CATEGORIES", RuleAny},
	{"COMMENT", RuleAny},
	{"CONTACT", RuleAny},
	{"EXDATE", RuleAny},
	{"REQUEST-STATUS", RuleAny},
	{"RELATED", RuleAny},
	{"RESOURCES", RuleAny},
	{"RDATE", RuleAny},
}

// TaskValidationRules returns the cardinality table for VTODO components.
//
// The table does not express the cross-field constraint that DUE and
// DURATION must not both be set; validators check that separately.
func TaskValidationRules() RuleTable {
	out := make(RuleTable, len(taskValidationRules))
	copy(out, taskValidationRules)
	return out
}
