package domain

import "fmt"

// RuleSpec is the cardinality constraint attached to a component property.
type RuleSpec int

const (
	RuleForbidden  RuleSpec = iota // must not appear
	RuleExactlyOne                 // must appear exactly once
	RuleOptional                   // may appear at most once
	RuleAtLeastOne                 // must appear one or more times
	RuleAny                        // may appear any number of times
)

// String returns the marker used in validation rule listings.
func (r RuleSpec) String() string {
	switch r {
	case RuleForbidden:
		return "0"
	case RuleExactlyOne:
		return "1"
	case RuleOptional:
		return "?"
	case RuleAtLeastOne:
		return "+"
	case RuleAny:
		return "*"
	}
	return fmt.Sprintf("RuleSpec(%d)", int(r))
}

// Describe returns a human readable form such as "exactly one".
func (r RuleSpec) Describe() string {
	switch r {
	case RuleForbidden:
		return "forbidden"
	case RuleExactlyOne:
		return "exactly one"
	case RuleOptional:
		return "at most one"
	case RuleAtLeastOne:
		return "at least one"
	case RuleAny:
		return "any"
	}
	return "unknown"
}

// Allows reports whether a property occurring count times satisfies r.
func (r RuleSpec) Allows(count int) bool {
	switch r {
	case RuleForbidden:
		return count == 0
	case RuleExactlyOne:
		return count == 1
	case RuleOptional:
		return count <= 1
	case RuleAtLeastOne:
		return count >= 1
	case RuleAny:
		return true
	}
	return false
}

// ParseRuleSpec converts a marker ("0", "1", "?", "+", "*") back into a RuleSpec.
func ParseRuleSpec(s string) (RuleSpec, error) {
	switch s {
	case "0":
		return RuleForbidden, nil
	case "1":
		return RuleExactlyOne, nil
	case "?":
		return RuleOptional, nil
	case "+":
		return RuleAtLeastOne, nil
	case "*":
		return RuleAny, nil
	}
	return 0, fmt.Errorf("invalid rule marker %q", s)
}

// MarshalText renders the marker form so rule tables serialize compactly.
func (r RuleSpec) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RuleSpec) UnmarshalText(b []byte) error {
	v, err := ParseRuleSpec(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// TaskStatus is the raw VTODO STATUS value. It is stored and displayed but
// never interpreted by time-range filtering.
type TaskStatus string

const (
	TaskNeedsAction TaskStatus = "NEEDS-ACTION"
	TaskCompleted   TaskStatus = "COMPLETED"
	TaskInProcess   TaskStatus = "IN-PROCESS"
	TaskCancelled   TaskStatus = "CANCELLED"
)
