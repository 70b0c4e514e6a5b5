package gen

import (
	"fmt"
	"strings"

	"lua-exporter/internal/literal"
	"lua-exporter/schema"
)

// writeField appends "name = value,\n" for one row of f, indented to level.
func (g *Generator) writeField(b *strings.Builder, f *schema.Field, row, level int) error {
	value, err := g.value(f, row, level)
	if err != nil {
		return fmt.Errorf("row %d, column %s (field %q): %w",
			g.config.RowNumber(row), literal.ColumnName(f.Column), f.Name, err)
	}

	b.WriteString(literal.Indent(g.config.Indent, level))
	b.WriteString(f.Name)
	b.WriteString(" = ")
	b.WriteString(value)
	b.WriteString(",\n")

	return nil
}

func (g *Generator) value(f *schema.Field, row, level int) (string, error) {
	c := f.Cells[row]

	switch f.Type {
	case schema.TypeInt:
		return literal.Int(c.Int), nil
	case schema.TypeFloat:
		return literal.Float(c.Float), nil
	case schema.TypeString:
		return literal.Quote(c.Str), nil
	case schema.TypeBool:
		return literal.Bool(c.Bool), nil
	case schema.TypeLang:
		switch {
		case c.Valid:
			return literal.Quote(c.Str), nil
		case g.config.LangEmptyString:
			return literal.EmptyString, nil
		default:
			return literal.Nil, nil
		}
	case schema.TypeTableString:
		return g.tables.Render(f.Format, c.Str, level)
	case schema.TypeDict, schema.TypeArray:
		if !c.Valid {
			return literal.Nil, nil
		}

		var b strings.Builder

		b.WriteString("{\n")

		for _, child := range f.Children {
			if err := g.writeField(&b, child, row, level+1); err != nil {
				return "", err
			}
		}

		b.WriteString(literal.Indent(g.config.Indent, level))
		b.WriteString("}")

		return b.String(), nil
	default:
		panic(fmt.Sprintf("bug: field %q has unknown data type %d", f.Name, f.Type))
	}
}
