// Package index folds table rows into a nested map keyed by the values of
// an ordered list of key fields.
package index

import (
	"errors"
	"fmt"
	"strings"

	"lua-exporter/internal/literal"
	"lua-exporter/schema"
)

var (
	// ErrDuplicateKey reports two rows sharing a full key path.
	ErrDuplicateKey = errors.New("duplicate index key")
	// ErrInvalidKey reports a key value no table lookup can match, such as NaN.
	ErrInvalidKey = errors.New("invalid index key")
)

// Build groups all rows of the key fields into a nested index, one level
// per key field. ruleText only decorates errors; rowOffset shifts the
// reported 1-based row numbers.
func Build(ruleText string, keys []*schema.Field, rowOffset int) (*Node, error) {
	if len(keys) == 0 {
		panic("bug: index built without key fields")
	}

	root := newBranch()
	rows := len(keys[0].Cells)

	for row := range rows {
		node := root

		for depth, f := range keys {
			k := KeyOf(f, row)
			if !k.Valid() {
				return nil, fmt.Errorf("%w: rule %q: row %d, column %s (field %q): NaN cannot key a table",
					ErrInvalidKey, ruleText, row+1+rowOffset, literal.ColumnName(f.Column), f.Name)
			}

			last := depth == len(keys)-1

			child := node.Child(k)

			switch {
			case child == nil && last:
				node.insert(k, newLeaf(row))
			case child == nil:
				child = newBranch()
				node.insert(k, child)
				node = child
			case last:
				return nil, fmt.Errorf("%w: rule %q: rows %d and %d share key %s",
					ErrDuplicateKey, ruleText, child.Row+1+rowOffset, row+1+rowOffset, pathString(keys, row))
			default:
				node = child
			}
		}
	}

	return root, nil
}

func pathString(keys []*schema.Field, row int) string {
	parts := make([]string, 0, len(keys))
	for _, f := range keys {
		parts = append(parts, f.Name+"="+KeyOf(f, row).String())
	}

	return strings.Join(parts, ", ")
}
