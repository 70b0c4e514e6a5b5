package schema

import (
	"errors"
	"fmt"

	"lua-exporter/internal/common"
)

// ErrInvalidTable is returned by Table.Validate for structurally broken tables.
var ErrInvalidTable = errors.New("invalid table")

// Cell is a single row value. Which members are meaningful depends on the
// type of the owning Field:
//   - int: Int
//   - float: Float
//   - string: Str
//   - bool: Bool
//   - lang: LangKey (raw key), Str (resolved text), Valid (key resolved)
//   - tableString: Str (raw cell text)
//   - dict, array: Valid (row holds a value; false renders as nil)
type Cell struct {
	Int     int64
	Float   float64
	Str     string
	Bool    bool
	LangKey string
	Valid   bool
}

func IntCell(v int64) Cell      { return Cell{Int: v} }
func FloatCell(v float64) Cell  { return Cell{Float: v} }
func StringCell(v string) Cell  { return Cell{Str: v} }
func BoolCell(v bool) Cell      { return Cell{Bool: v} }
func RawCell(v string) Cell     { return Cell{Str: v} }
func PresenceCell(ok bool) Cell { return Cell{Valid: ok} }

// LangCell builds a lang cell; ok reports whether key resolved to text.
func LangCell(key, text string, ok bool) Cell {
	return Cell{LangKey: key, Str: text, Valid: ok}
}

// Field describes one column of a table together with its row values.
type Field struct {
	// Name is the variable name used in the generated table.
	Name string
	// Type selects how cells are rendered.
	Type DataType
	// TypeString is the declared type text shown in column info.
	// Empty means Type.String().
	TypeString string
	// Column is the 0-based column position in the source sheet.
	Column int
	// Desc is a free-form description shown in column info.
	Desc string
	// Cells holds one value per row.
	Cells []Cell
	// Children are the member fields of dict and array fields.
	Children []*Field
	// Format is the decoding definition of tableString fields.
	Format *TableStringFormat
}

// TypeText returns the declared type text.
func (f *Field) TypeText() string {
	if f.TypeString != "" {
		return f.TypeString
	}

	return f.Type.String()
}

// Table is a named set of fields sharing one row count.
type Table struct {
	Name   string
	Fields []*Field
	// Exports lists index export rules, e.g. "byName:name".
	Exports []string
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.Fields) == 0 {
		return 0
	}

	return len(t.Fields[0].Cells)
}

// PrimaryField returns the field keying row exports, or nil.
func (t *Table) PrimaryField() *Field {
	f, _ := common.First(t.Fields)
	return f
}

// FieldByName looks up a top-level field.
func (t *Table) FieldByName(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// FieldNames returns top-level field names in column order.
func (t *Table) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}

	return names
}

// Validate checks the structural invariants every exporter relies on:
// unique field names per level, a known type for every field, a format for
// every tableString field and identical row counts across all fields.
func (t *Table) Validate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("%w: table %q has no fields", ErrInvalidTable, t.Name)
	}

	return validateFields(t.Name, t.Fields, t.RowCount())
}

func validateFields(path string, fields []*Field, rows int) error {
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if f == nil {
			return fmt.Errorf("%w: %s has a nil field", ErrInvalidTable, path)
		}

		fieldPath := path + "." + f.Name

		if f.Name == "" {
			return fmt.Errorf("%w: %s has a field without name (column %d)", ErrInvalidTable, path, f.Column+1)
		}

		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("%w: duplicate field %s", ErrInvalidTable, fieldPath)
		}

		seen[f.Name] = struct{}{}

		if !f.Type.IsValid() {
			return fmt.Errorf("%w: field %s has unknown type %s", ErrInvalidTable, fieldPath, f.Type)
		}

		if len(f.Cells) != rows {
			return fmt.Errorf("%w: field %s has %d rows, expected %d", ErrInvalidTable, fieldPath, len(f.Cells), rows)
		}

		if f.Type == TypeTableString && f.Format == nil {
			return fmt.Errorf("%w: tableString field %s has no format definition", ErrInvalidTable, fieldPath)
		}

		if f.Type.IsComposite() {
			if len(f.Children) == 0 {
				return fmt.Errorf("%w: %s field %s has no children", ErrInvalidTable, f.Type, fieldPath)
			}

			if err := validateFields(fieldPath, f.Children, rows); err != nil {
				return err
			}
		}
	}

	return nil
}

// LangMap is an in-memory localization table.
type LangMap map[string]string

// Lookup returns the localized text for key.
func (m LangMap) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
