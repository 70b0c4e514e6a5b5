package export

import (
	"lua-exporter/internal/common"
	"lua-exporter/internal/diagnostic"
)

// CodeUnitFailed marks the error diagnostic of a failed unit.
const CodeUnitFailed = "unit_failed"

// Mode distinguishes the two kinds of export unit.
type Mode int

const (
	_ Mode = iota

	ModeRows  // one entry per row
	ModeIndex // nested along an export rule
)

func (m Mode) String() string {
	switch m {
	case ModeRows:
		return "rows"
	case ModeIndex:
		return "index"
	default:
		return common.UnknownStr
	}
}

// Unit is the outcome of one export unit.
type Unit struct {
	Table string
	Mode  Mode
	// Rule is the export rule text of index units.
	Rule string
	// File is the logical output name, empty when the unit failed early.
	File  string
	Bytes int
	// Warnings are non-fatal findings on the rule.
	Warnings []diagnostic.Diagnostic
	Err      error
}

// OK reports whether the unit was written.
func (u Unit) OK() bool {
	return u.Err == nil
}

// Report collects the units of a run in execution order.
type Report struct {
	Units []Unit
}

func (r *Report) add(u Unit) {
	r.Units = append(r.Units, u)
}

// Failed returns the failed units.
func (r *Report) Failed() []Unit {
	var failed []Unit

	for _, u := range r.Units {
		if !u.OK() {
			failed = append(failed, u)
		}
	}

	return failed
}

// HasFailures reports whether any unit failed.
func (r *Report) HasFailures() bool {
	return !common.IsEmpty(r.Failed())
}

// Diagnostics merges the warnings of all units and records every failed
// unit as an error diagnostic attributed to its table.
func (r *Report) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	for _, u := range r.Units {
		d.Merge(diagnostic.Diagnostics{Warnings: u.Warnings})

		if !u.OK() {
			d.AddError(CodeUnitFailed, u.Err, "", u.Table)
		}
	}

	return d
}
