package domain

import (
	"fmt"
	"strconv"
)

// Severity classifies a diagnostic. Diagnostics are advisory; neither
// severity is a failure.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is an annotation attached to one line of the editor buffer
type Diagnostic struct {
	Line     int      `json:"line"` // 1-based
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Key identifies the diagnostic within a scan result
func (d Diagnostic) Key() string {
	return strconv.Itoa(d.Line) + "-" + d.Message
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// IssueSummary renders the editor header text for a scan result
func IssueSummary(diags []Diagnostic) string {
	if len(diags) == 0 {
		return "No issues"
	}
	return pluralize(len(diags), "issue")
}
