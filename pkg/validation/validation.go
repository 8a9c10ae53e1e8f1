package validation

import (
	"fmt"
	"strings"
)

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelSchema     Level = "schema"
	LevelAnalytical Level = "analytical"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single finding. Field names the input path, for example
// "geometry.length", or an intermediate quantity such as "s".
type Result struct {
	Level       Level    `json:"level"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Field       string   `json:"field,omitempty"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report collects the findings for one pit input. Valid is false as soon as
// one error is recorded.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError records an error and marks the report invalid.
func (r *Report) AddError(result Result) { r.add(SeverityError, result) }

// AddWarning records a finding that does not block the calculation.
func (r *Report) AddWarning(result Result) { r.add(SeverityWarning, result) }

// AddInfo records an informational note.
func (r *Report) AddInfo(result Result) { r.add(SeverityInfo, result) }

func (r *Report) add(sev Severity, result Result) {
	result.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, result)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, result)
	default:
		r.Info = append(r.Info, result)
	}
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// Fields returns the input fields named by error results, in report order.
func (r *Report) Fields() []string {
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Field != "" {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// Err returns nil for a valid report, otherwise an error listing every
// error message.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
