package diagnostic

import (
	"fmt"
	"strings"

	"lua-exporter/internal/common"
)

// Codes of the diagnostics reported while preparing an export.
const (
	CodeDuplicateLeaf     = "duplicate_leaf"
	CodeDuplicateKeyField = "duplicate_key_field"
	CodeLeafIsKey         = "leaf_is_key"
	CodeUnknownField      = "unknown_field"
	CodeKeyFieldType      = "key_field_type"
	CodeEmptyKey          = "empty_key"
)

// Diagnostics holds the findings collected for one export rule.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Rule is the export rule text this relates to (if any).
	Rule string
	// Field names the field this relates to (if any).
	Field string
	// Err is the cause of an error diagnostic, kept for errors.Is.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	_ DiagnosticSeverity = iota

	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records err as an error diagnostic.
func (d *Diagnostics) AddError(code string, err error, rule, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  err.Error(),
		Rule:     rule,
		Field:    field,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, rule, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Rule:     rule,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
// The result unwraps to every recorded cause.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return joinedError(d.Errors)
}

type joinedError []Diagnostic

func (j joinedError) Error() string {
	parts := make([]string, 0, len(j))
	for _, e := range j {
		parts = append(parts, e.String())
	}

	return strings.Join(parts, "; ")
}

func (j joinedError) Unwrap() []error {
	var errs []error

	for _, e := range j {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}

	return errs
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Rule != "" {
		prefix = append(prefix, fmt.Sprintf("rule %q", d.Rule))
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
