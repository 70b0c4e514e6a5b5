// Package literal renders the Lua building blocks every exporter shares:
// quoted strings, numbers, booleans, table keys and indentation.
//
// String escaping is minimal: only the double quote is escaped,
// so a backslash typed into a cell reaches the Lua source unchanged and keeps
// its Lua meaning (e.g. "\n").
package literal

import (
	"math"
	"strconv"
	"strings"
)

const (
	Nil   = "nil"
	True  = "true"
	False = "false"

	// EmptyString is the literal of an empty Lua string.
	EmptyString = `""`
)

// Quote wraps s in double quotes, escaping embedded double quotes.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Bool renders a Lua boolean.
func Bool(v bool) string {
	if v {
		return True
	}

	return False
}

// Int renders an integer in decimal.
func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Float renders the shortest decimal text that parses back to v.
// Integral values render without a fractional part (91, not 91.0).
func Float(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "math.huge"
	case math.IsInf(v, -1):
		return "-math.huge"
	case math.IsNaN(v):
		return "0/0"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IntKey renders a bracketed integer table key, e.g. [3].
func IntKey(v int64) string {
	return "[" + Int(v) + "]"
}

// FloatKey renders a bracketed float table key, e.g. [1.5].
func FloatKey(v float64) string {
	return "[" + Float(v) + "]"
}

// StringKey renders a bracketed string table key, e.g. ["name"].
func StringKey(s string) string {
	return "[" + Quote(s) + "]"
}

// Indent repeats unit level times.
func Indent(unit string, level int) string {
	if level <= 0 {
		return ""
	}

	return strings.Repeat(unit, level)
}

// ColumnName converts a 0-based column position to spreadsheet letters
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnName(col int) string {
	if col < 0 {
		return "?"
	}

	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}
