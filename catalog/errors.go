package catalog

import (
	"fmt"
	"strings"
)

// MalformedPlaceholderError reports an unparseable translation value,
// naming the key, locale and byte offset of the offending construct.
type MalformedPlaceholderError struct {
	Key    string
	Locale string
	Offset int
	Err    error
}

func (e *MalformedPlaceholderError) Error() string {
	return fmt.Sprintf("malformed placeholder in %q [%s]: %v", e.Key, e.Locale, e.Err)
}

func (e *MalformedPlaceholderError) Unwrap() error {
	return e.Err
}

// ValidationFailedError carries the full report of a validation run that
// found at least one fatal problem. Its message enumerates every problem,
// warnings included, so one run surfaces everything at once.
type ValidationFailedError struct {
	Report *Report
}

func (e *ValidationFailedError) Error() string {
	fatal, warnings := e.Report.Counts()
	var b strings.Builder
	fmt.Fprintf(&b, "validation failed: %d fatal problem(s), %d warning(s)", fatal, warnings)
	for _, p := range e.Report.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	return b.String()
}
