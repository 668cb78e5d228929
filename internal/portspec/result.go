package portspec

import "fmt"

// Severity ranks an Issue for logging.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityWarn
)

func (s Severity) String() string {
	if s == SeverityWarn {
		return "warn"
	}
	return "debug"
}

// Issue describes one part of a spec that was dropped.
type Issue struct {
	Severity Severity
	Message  string
}

// Result is the outcome of parsing one spec: the surviving pairs plus
// whatever was skipped on the way.
type Result struct {
	Mapping Mapping
	Issues  []Issue
}

// Absent reports whether the spec produced no forwards.
func (r Result) Absent() bool {
	return r.Mapping.Len() == 0
}

func (r *Result) warnf(format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityWarn, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) debugf(format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityDebug, Message: fmt.Sprintf(format, args...)})
}
