package gen

import (
	"errors"
	"fmt"
	"strings"

	"lua-exporter/internal/index"
	"lua-exporter/internal/literal"
	"lua-exporter/internal/rule"
	"lua-exporter/internal/tablestring"
	"lua-exporter/schema"
)

// ErrPrimaryKeyType is returned when a row export is keyed by a field that
// is neither int nor string.
var ErrPrimaryKeyType = errors.New("primary field must be int or string")

// GeneratedFile is one rendered Lua file.
type GeneratedFile struct {
	// Name is the logical file name, without extension.
	Name string
	// Content is the Lua source.
	Content []byte
}

// Generator renders tables with a fixed configuration.
type Generator struct {
	config Config
	tables *tablestring.Engine
}

// NewGenerator creates a Generator. lang resolves lang elements of
// tableString cells and may be nil when no table uses them.
func NewGenerator(config Config, lang tablestring.Localizer) *Generator {
	if config.IdentValidator == nil {
		config.IdentValidator = literal.ValidateIdent
	}

	if config.Indent == "" {
		config.Indent = "\t"
	}

	return &Generator{
		config: config,
		tables: tablestring.New(lang, config.IdentValidator, config.Indent),
	}
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() Config {
	return g.config
}

// ExportRows renders t in row mode: one entry per row keyed by the primary
// (first) field, holding every other field.
func (g *Generator) ExportRows(t *schema.Table) (*GeneratedFile, error) {
	primary := t.PrimaryField()
	if primary == nil {
		return nil, fmt.Errorf("table %q has no fields", t.Name)
	}

	if primary.Type != schema.TypeInt && primary.Type != schema.TypeString {
		return nil, fmt.Errorf("%w: table %q field %q is %s", ErrPrimaryKeyType, t.Name, primary.Name, primary.Type)
	}

	var b strings.Builder

	b.WriteString("return {\n")

	for row := range t.RowCount() {
		key, err := g.primaryKey(primary, row)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}

		b.WriteString(literal.Indent(g.config.Indent, 1))
		b.WriteString(key)
		b.WriteString(" = {\n")

		for _, f := range t.Fields[1:] {
			if err := g.writeField(&b, f, row, 2); err != nil {
				return nil, fmt.Errorf("table %q: %w", t.Name, err)
			}
		}

		b.WriteString(literal.Indent(g.config.Indent, 1))
		b.WriteString("},\n")
	}

	b.WriteString("}\n")

	content := b.String()
	if g.config.ColumnInfo {
		content = g.rowColumnInfo(t) + "\n" + content
	}

	return &GeneratedFile{Name: t.Name, Content: []byte(content)}, nil
}

func (g *Generator) primaryKey(f *schema.Field, row int) (string, error) {
	c := f.Cells[row]

	if f.Type == schema.TypeInt {
		return literal.IntKey(c.Int), nil
	}

	if err := g.config.IdentValidator(c.Str); err != nil {
		return "", fmt.Errorf("row %d, column %s (field %q): primary key: %w",
			g.config.RowNumber(row), literal.ColumnName(f.Column), f.Name, err)
	}

	return c.Str, nil
}

// ExportIndex renders the nested index root built for r. Leaves hold the
// rule's leaf fields of the row they point at.
func (g *Generator) ExportIndex(r *rule.Rule, root *index.Node) (*GeneratedFile, error) {
	if root.Kind != index.Branch {
		panic("bug: index root is not a branch")
	}

	var b strings.Builder

	b.WriteString("return {\n")

	if err := g.writeBranch(&b, root, r.Leaves, 1); err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.Text, err)
	}

	b.WriteString("}\n")

	content := b.String()
	if g.config.ColumnInfo {
		content = g.indexColumnInfo(r) + "\n" + content
	}

	return &GeneratedFile{Name: r.FileName, Content: []byte(content)}, nil
}

func (g *Generator) writeBranch(b *strings.Builder, n *index.Node, leaves []*schema.Field, level int) error {
	indent := literal.Indent(g.config.Indent, level)

	for _, k := range n.Keys() {
		b.WriteString(indent)
		b.WriteString(k.Literal())
		b.WriteString(" = {\n")

		child := n.Child(k)

		switch child.Kind {
		case index.Leaf:
			for _, f := range leaves {
				if err := g.writeField(b, f, child.Row, level+1); err != nil {
					return err
				}
			}
		case index.Branch:
			if err := g.writeBranch(b, child, leaves, level+1); err != nil {
				return err
			}
		default:
			panic(fmt.Sprintf("bug: node of unknown kind %d", child.Kind))
		}

		b.WriteString(indent)
		b.WriteString("},\n")
	}

	return nil
}
