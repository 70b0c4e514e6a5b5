package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lua-exporter/schema"
)

func render(t *testing.T, g *Generator, f *schema.Field, row, level int) string {
	t.Helper()

	var b strings.Builder

	require.NoError(t, g.writeField(&b, f, row, level))

	return b.String()
}

func TestWriteField_Primitives(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultConfig(), nil)

	tests := []struct {
		field *schema.Field
		want  string
	}{
		{&schema.Field{Name: "n", Type: schema.TypeInt, Cells: []schema.Cell{schema.IntCell(-42)}}, "\tn = -42,\n"},
		{&schema.Field{Name: "f", Type: schema.TypeFloat, Cells: []schema.Cell{schema.FloatCell(0.1)}}, "\tf = 0.1,\n"},
		{&schema.Field{Name: "s", Type: schema.TypeString, Cells: []schema.Cell{schema.StringCell(`123"456`)}}, "\ts = \"123\\\"456\",\n"},
		{&schema.Field{Name: "b", Type: schema.TypeBool, Cells: []schema.Cell{schema.BoolCell(false)}}, "\tb = false,\n"},
		{&schema.Field{Name: "l", Type: schema.TypeLang, Cells: []schema.Cell{schema.LangCell("k", `say "hi"`, true)}}, "\tl = \"say \\\"hi\\\"\",\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render(t, g, tt.field, 0, 1), tt.field.Name)
	}
}

func TestWriteField_StringRoundTrip(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultConfig(), nil)

	for _, s := range []string{"", "plain", `"`, `a""b`, `"quoted"`, "多语言"} {
		f := &schema.Field{Name: "s", Type: schema.TypeString, Cells: []schema.Cell{schema.StringCell(s)}}

		out := render(t, g, f, 0, 0)
		lit := strings.TrimSuffix(strings.TrimPrefix(out, "s = "), ",\n")

		require.True(t, strings.HasPrefix(lit, `"`) && strings.HasSuffix(lit, `"`) && len(lit) >= 2, out)
		assert.Equal(t, s, strings.ReplaceAll(lit[1:len(lit)-1], `\"`, `"`))
	}
}

func TestWriteField_LangMissing(t *testing.T) {
	t.Parallel()

	f := &schema.Field{Name: "title", Type: schema.TypeLang, Cells: []schema.Cell{schema.LangCell("k", "", false)}}

	assert.Equal(t, "title = nil,\n", render(t, NewGenerator(DefaultConfig(), nil), f, 0, 0))

	cfg := DefaultConfig()
	cfg.LangEmptyString = true
	assert.Equal(t, "title = \"\",\n", render(t, NewGenerator(cfg, nil), f, 0, 0))
}

func TestWriteField_Composite(t *testing.T) {
	t.Parallel()

	format, err := schema.ParseTableStringFormat("tableString[k:#seq|v:#1(lang)]")
	require.NoError(t, err)

	// A dict whose child is itself a dict, plus an array and a tableString.
	pos := &schema.Field{
		Name: "pos", Type: schema.TypeDict,
		Cells: []schema.Cell{schema.PresenceCell(true), schema.PresenceCell(false)},
		Children: []*schema.Field{
			{Name: "x", Type: schema.TypeInt, Cells: []schema.Cell{schema.IntCell(3), schema.IntCell(0)}},
			{
				Name: "extra", Type: schema.TypeDict,
				Cells: []schema.Cell{schema.PresenceCell(true), schema.PresenceCell(true)},
				Children: []*schema.Field{
					{Name: "tags", Type: schema.TypeArray,
						Cells: []schema.Cell{schema.PresenceCell(true), schema.PresenceCell(true)},
						Children: []*schema.Field{
							{Name: "[1]", Type: schema.TypeString, Cells: []schema.Cell{schema.StringCell("a"), schema.StringCell("b")}},
						}},
					{Name: "names", Type: schema.TypeTableString, Format: format,
						Cells: []schema.Cell{schema.RawCell("hi"), schema.RawCell("")}},
				},
			},
		},
	}

	g := NewGenerator(DefaultConfig(), schema.LangMap{"hi": "Hello"})

	want := "\tpos = {\n" +
		"\t\tx = 3,\n" +
		"\t\textra = {\n" +
		"\t\t\ttags = {\n" +
		"\t\t\t\t[1] = \"a\",\n" +
		"\t\t\t},\n" +
		"\t\t\tnames = {\n" +
		"\t\t\t\t[1] = \"Hello\",\n" +
		"\t\t\t},\n" +
		"\t\t},\n" +
		"\t},\n"
	assert.Equal(t, want, render(t, g, pos, 0, 1))

	assert.Equal(t, "\tpos = nil,\n", render(t, g, pos, 1, 1), "invalid row renders nil without recursing")
}

func TestWriteField_NestedErrorContext(t *testing.T) {
	t.Parallel()

	format, err := schema.ParseTableStringFormat("tableString[k:#seq|v:#1(lang)]")
	require.NoError(t, err)

	f := &schema.Field{
		Name: "pos", Type: schema.TypeDict, Column: 0,
		Cells: []schema.Cell{schema.PresenceCell(true)},
		Children: []*schema.Field{
			{Name: "names", Type: schema.TypeTableString, Column: 1, Format: format, Cells: []schema.Cell{schema.RawCell("nope")}},
		},
	}

	var b strings.Builder

	err = NewGenerator(DefaultConfig(), schema.LangMap{}).writeField(&b, f, 0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row 1, column A (field "pos"): row 1, column B (field "names")`)
	assert.Contains(t, err.Error(), `lang key "nope" not found`)
}

func TestWriteField_UnknownTypePanics(t *testing.T) {
	t.Parallel()

	f := &schema.Field{Name: "x", Type: schema.DataType(99), Cells: []schema.Cell{{}}}

	var b strings.Builder

	assert.Panics(t, func() { _ = NewGenerator(DefaultConfig(), nil).writeField(&b, f, 0, 0) })
}
