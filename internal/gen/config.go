package gen

import "lua-exporter/internal/literal"

// Config holds configuration for Lua generation.
type Config struct {
	// Indent is repeated once per nesting level of generated tables.
	Indent string
	// CommentPrefix starts every column info line.
	CommentPrefix string
	// DefineSeparator separates name, type and description in column info.
	DefineSeparator string
	// ChildIndent is repeated once per nesting level of column info names.
	ChildIndent string
	// NameWidth and TypeWidth are the minimum display widths of the name
	// and type columns in column info.
	NameWidth int
	TypeWidth int
	// LangEmptyString renders unresolved lang cells as "" instead of nil.
	LangEmptyString bool
	// ColumnInfo prepends the column info comment header.
	ColumnInfo bool
	// IntegrityCheck runs check expressions of export rules.
	IntegrityCheck bool
	// RowOffset is added to 1-based row numbers in messages so they match
	// the source sheet.
	RowOffset int
	// IdentValidator decides which strings may be emitted as bare keys.
	IdentValidator literal.IdentValidator
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Indent:          "\t",
		CommentPrefix:   "-- ",
		DefineSeparator: "   ",
		ChildIndent:     "   ",
		NameWidth:       30,
		TypeWidth:       30,
		IdentValidator:  literal.ValidateIdent,
	}
}

// RowNumber converts a 0-based row ordinal to the number shown in messages.
func (c Config) RowNumber(row int) int {
	return row + 1 + c.RowOffset
}
