// Package check holds the data checks run on index key fields: the
// not-empty check every string and lang key must pass, and integrity
// checks on a finished nested index.
package check

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lua-exporter/internal/literal"
	"lua-exporter/schema"
)

// ErrEmptyKey reports rows whose key value would render empty or nil.
var ErrEmptyKey = errors.New("empty key value")

// NotEmpty verifies that no row of a string or lang key field is empty.
// String values are trimmed first; lang values need both a non-empty raw key
// and non-empty resolved text. All offending rows are listed. Other types
// always pass.
func NotEmpty(f *schema.Field, rowOffset int) error {
	var bad []string

	for row, c := range f.Cells {
		var reason string

		switch f.Type {
		case schema.TypeString:
			if strings.TrimSpace(c.Str) == "" {
				reason = "empty"
			}
		case schema.TypeLang:
			switch {
			case strings.TrimSpace(c.LangKey) == "":
				reason = "empty lang key"
			case !c.Valid:
				reason = "lang key " + literal.Quote(c.LangKey) + " not found"
			case strings.TrimSpace(c.Str) == "":
				reason = "lang key " + literal.Quote(c.LangKey) + " resolves to empty text"
			}
		case schema.TypeInt, schema.TypeFloat, schema.TypeBool, schema.TypeTableString, schema.TypeDict, schema.TypeArray:
			return nil
		default:
			panic(fmt.Sprintf("bug: unknown data type %d", f.Type))
		}

		if reason != "" {
			bad = append(bad, "row "+strconv.Itoa(row+1+rowOffset)+" ("+reason+")")
		}
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: field %q (column %s): %s",
			ErrEmptyKey, f.Name, literal.ColumnName(f.Column), strings.Join(bad, ", "))
	}

	return nil
}
