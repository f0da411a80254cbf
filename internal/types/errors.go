package types

import (
	"fmt"
	"strings"
)

// SchemaViolationError reports that a ProfileRecord could not be
// finalized: a field group was assigned twice, never assigned, a project
// bucket broke the parallel-array invariant, or a required identity
// field failed validation. It is the one condition fatal to a profile's
// persistence.
type SchemaViolationError struct {
	Name      string   // person the record was being built for
	Missing   []string // field groups never assigned
	Duplicate string   // field group assigned more than once
	Message   string   // other integrity failure
	Cause     error
}

func (e *SchemaViolationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "schema violation for %q:", e.Name)
	if e.Duplicate != "" {
		fmt.Fprintf(&sb, " field group %q assigned twice", e.Duplicate)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&sb, " missing field groups: %s", strings.Join(e.Missing, ", "))
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, " %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}
