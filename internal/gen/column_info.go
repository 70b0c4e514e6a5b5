package gen

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"lua-exporter/internal/literal"
	"lua-exporter/internal/rule"
	"lua-exporter/schema"
)

// rowColumnInfo lists every field of t.
func (g *Generator) rowColumnInfo(t *schema.Table) string {
	var b strings.Builder

	for _, f := range t.Fields {
		g.writeFieldInfo(&b, f, 0)
	}

	return b.String()
}

// indexColumnInfo lists the key fields of r at increasing depth followed by
// a braced block of its leaf fields.
func (g *Generator) indexColumnInfo(r *rule.Rule) string {
	var b strings.Builder

	level := 0
	for _, f := range r.KeyFields() {
		g.writeFieldInfo(&b, f, level)
		level++
	}

	g.writeBrace(&b, "{", level)

	for _, f := range r.Leaves {
		g.writeFieldInfo(&b, f, level+1)
	}

	g.writeBrace(&b, "}", level)

	return b.String()
}

func (g *Generator) writeBrace(b *strings.Builder, brace string, level int) {
	b.WriteString(g.config.CommentPrefix)
	b.WriteString(literal.Indent(g.config.ChildIndent, level))
	b.WriteString(brace)
	b.WriteString("\n")
}

func (g *Generator) writeFieldInfo(b *strings.Builder, f *schema.Field, level int) {
	name := literal.Indent(g.config.ChildIndent, level) + f.Name

	line := g.config.CommentPrefix +
		runewidth.FillRight(name, g.config.NameWidth) + g.config.DefineSeparator +
		runewidth.FillRight(f.TypeText(), g.config.TypeWidth) + g.config.DefineSeparator +
		f.Desc

	b.WriteString(strings.TrimRight(line, " "))
	b.WriteString("\n")

	if f.Type.IsComposite() {
		for _, child := range f.Children {
			g.writeFieldInfo(b, child, level+1)
		}
	}
}
