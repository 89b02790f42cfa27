// Package lint implements the editor's heuristic line checks.
//
// The checks are substring tests, not a parser. A keyword inside a string
// literal or comment still triggers its rule.
package lint

import (
	"strings"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

// Rule is a single line check
type Rule struct {
	Name     string
	Severity domain.Severity
	Message  string
	Match    func(line string) bool
}

// DefaultRules returns the rule list in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "console-log-semicolon",
			Severity: domain.SeverityWarning,
			Message:  "Missing semicolon",
			Match: func(line string) bool {
				return strings.Contains(line, "console.log") && !strings.Contains(line, ";")
			},
		},
		{
			Name:     "function-brace",
			Severity: domain.SeverityError,
			Message:  "Missing opening brace",
			Match: func(line string) bool {
				return strings.Contains(line, "function") && !strings.Contains(line, "{")
			},
		},
	}
}

// Linter runs a fixed rule list over a buffer
type Linter struct {
	rules []Rule
}

// New creates a linter. With no rules it uses DefaultRules.
func New(rules ...Rule) *Linter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Linter{rules: rules}
}

// Rules returns a copy of the linter's rule list
func (l *Linter) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Scan evaluates every rule against every line. Results are ordered by
// line, then by rule order. The result is never nil.
func (l *Linter) Scan(code string) []domain.Diagnostic {
	diags := make([]domain.Diagnostic, 0)
	for i, line := range strings.Split(code, "\n") {
		for _, r := range l.rules {
			if r.Match(line) {
				diags = append(diags, domain.Diagnostic{
					Line:     i + 1,
					Message:  r.Message,
					Severity: r.Severity,
				})
			}
		}
	}
	return diags
}

var std = New()

// Scan runs the default rules over code
func Scan(code string) []domain.Diagnostic {
	return std.Scan(code)
}

// Summary renders the editor header text for diags
func Summary(diags []domain.Diagnostic) string {
	return domain.IssueSummary(diags)
}

// Count tallies diagnostics by severity
func Count(diags []domain.Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
