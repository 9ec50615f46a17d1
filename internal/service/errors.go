package service

import (
	"fmt"
	"strings"
)

// ScheduleValidationError lists every problem found in a schedule file
// before anything was written.
type ScheduleValidationError struct {
	Problems []error
}

func (e *ScheduleValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ScheduleValidationError) Unwrap() []error { return e.Problems }
