package gen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lua-exporter/internal/index"
	"lua-exporter/internal/literal"
	"lua-exporter/internal/rule"
	"lua-exporter/internal/tablestring"
	"lua-exporter/schema"
)

// scoreTable is [id:int, name:string, score:float] with rows
// (1,"Ann",88.5) and (2,"Bo",91).
func scoreTable() *schema.Table {
	return &schema.Table{
		Name: "score",
		Fields: []*schema.Field{
			{Name: "id", Type: schema.TypeInt, Column: 0, Desc: "id",
				Cells: []schema.Cell{schema.IntCell(1), schema.IntCell(2)}},
			{Name: "name", Type: schema.TypeString, Column: 1, Desc: "player name",
				Cells: []schema.Cell{schema.StringCell("Ann"), schema.StringCell("Bo")}},
			{Name: "score", Type: schema.TypeFloat, Column: 2,
				Cells: []schema.Cell{schema.FloatCell(88.5), schema.FloatCell(91)}},
		},
	}
}

func assertLua(t *testing.T, want string, got *GeneratedFile) {
	t.Helper()

	if diff := cmp.Diff(want, string(got.Content)); diff != "" {
		t.Errorf("generated Lua mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRows_EndToEnd(t *testing.T) {
	t.Parallel()

	g := NewGenerator(DefaultConfig(), nil)

	file, err := g.ExportRows(scoreTable())
	require.NoError(t, err)

	assert.Equal(t, "score", file.Name)
	assertLua(t, "return {\n"+
		"\t[1] = {\n"+
		"\t\tname = \"Ann\",\n"+
		"\t\tscore = 88.5,\n"+
		"\t},\n"+
		"\t[2] = {\n"+
		"\t\tname = \"Bo\",\n"+
		"\t\tscore = 91,\n"+
		"\t},\n"+
		"}\n", file)
}

func TestExportIndex_EndToEnd(t *testing.T) {
	t.Parallel()

	tbl := scoreTable()

	r, err := rule.Parse("byName:name", tbl, 0)
	require.NoError(t, err)

	root, err := index.Build(r.Text, r.KeyFields(), 0)
	require.NoError(t, err)

	file, err := NewGenerator(DefaultConfig(), nil).ExportIndex(r, root)
	require.NoError(t, err)

	assert.Equal(t, "byName", file.Name)
	assertLua(t, "return {\n"+
		"\t[\"Ann\"] = {\n"+
		"\t\tid = 1,\n"+
		"\t\tscore = 88.5,\n"+
		"\t},\n"+
		"\t[\"Bo\"] = {\n"+
		"\t\tid = 2,\n"+
		"\t\tscore = 91,\n"+
		"\t},\n"+
		"}\n", file)
}

func TestExportIndex_TwoLevels(t *testing.T) {
	t.Parallel()

	tbl := &schema.Table{
		Name: "reward",
		Fields: []*schema.Field{
			{Name: "kind", Type: schema.TypeInt, Cells: []schema.Cell{schema.IntCell(1), schema.IntCell(1), schema.IntCell(2)}},
			{Name: "rate", Type: schema.TypeFloat, Column: 1, Cells: []schema.Cell{schema.FloatCell(0.5), schema.FloatCell(1.5), schema.FloatCell(0.5)}},
			{Name: "count", Type: schema.TypeInt, Column: 2, Cells: []schema.Cell{schema.IntCell(10), schema.IntCell(20), schema.IntCell(30)}},
			{Name: "on", Type: schema.TypeBool, Column: 3, Cells: []schema.Cell{schema.BoolCell(true), schema.BoolCell(false), schema.BoolCell(true)}},
		},
	}

	r, err := rule.Parse("reward:kind-rate{on}", tbl, 0)
	require.NoError(t, err)

	root, err := index.Build(r.Text, r.KeyFields(), 0)
	require.NoError(t, err)

	file, err := NewGenerator(DefaultConfig(), nil).ExportIndex(r, root)
	require.NoError(t, err)

	assertLua(t, "return {\n"+
		"\t[1] = {\n"+
		"\t\t[0.5] = {\n"+
		"\t\t\ton = true,\n"+
		"\t\t},\n"+
		"\t\t[1.5] = {\n"+
		"\t\t\ton = false,\n"+
		"\t\t},\n"+
		"\t},\n"+
		"\t[2] = {\n"+
		"\t\t[0.5] = {\n"+
		"\t\t\ton = true,\n"+
		"\t\t},\n"+
		"\t},\n"+
		"}\n", file)
}

func TestExportRows_StringPrimary(t *testing.T) {
	t.Parallel()

	tbl := &schema.Table{
		Name: "const",
		Fields: []*schema.Field{
			{Name: "key", Type: schema.TypeString, Cells: []schema.Cell{schema.StringCell("maxLevel")}},
			{Name: "value", Type: schema.TypeInt, Column: 1, Cells: []schema.Cell{schema.IntCell(60)}},
		},
	}

	file, err := NewGenerator(DefaultConfig(), nil).ExportRows(tbl)
	require.NoError(t, err)
	assertLua(t, "return {\n\tmaxLevel = {\n\t\tvalue = 60,\n\t},\n}\n", file)

	tbl.Fields[0].Cells[0] = schema.StringCell("max level")

	_, err = NewGenerator(DefaultConfig(), nil).ExportRows(tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, literal.ErrInvalidIdent)
	assert.Contains(t, err.Error(), "row 1, column A")
}

func TestExportRows_PrimaryKeyType(t *testing.T) {
	t.Parallel()

	tbl := &schema.Table{
		Name:   "bad",
		Fields: []*schema.Field{{Name: "rate", Type: schema.TypeFloat, Cells: []schema.Cell{schema.FloatCell(1)}}},
	}

	_, err := NewGenerator(DefaultConfig(), nil).ExportRows(tbl)
	require.ErrorIs(t, err, ErrPrimaryKeyType)

	_, err = NewGenerator(DefaultConfig(), nil).ExportRows(&schema.Table{Name: "empty"})
	require.Error(t, err)
}

func TestExportRows_EmptyTable(t *testing.T) {
	t.Parallel()

	tbl := &schema.Table{
		Name:   "none",
		Fields: []*schema.Field{{Name: "id", Type: schema.TypeInt}},
	}

	file, err := NewGenerator(DefaultConfig(), nil).ExportRows(tbl)
	require.NoError(t, err)
	assertLua(t, "return {\n}\n", file)
}

func TestExportRows_RowOffsetInErrors(t *testing.T) {
	t.Parallel()

	format, err := schema.ParseTableStringFormat("tableString[k:#seq|v:#1(int)]")
	require.NoError(t, err)

	tbl := &schema.Table{
		Name: "item",
		Fields: []*schema.Field{
			{Name: "id", Type: schema.TypeInt, Cells: []schema.Cell{schema.IntCell(1), schema.IntCell(2)}},
			{Name: "list", Type: schema.TypeTableString, Column: 27, Format: format,
				Cells: []schema.Cell{schema.RawCell("1;2"), schema.RawCell("1;x")}},
		},
	}

	cfg := DefaultConfig()
	cfg.RowOffset = 4

	_, err = NewGenerator(cfg, nil).ExportRows(tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, tablestring.ErrTableString)
	assert.Contains(t, err.Error(), `table "item": row 6, column AB (field "list"): invalid tableString: entry 2 (x)`)
}

func TestExportRows_ColumnInfo(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ColumnInfo = true
	cfg.NameWidth = 8
	cfg.TypeWidth = 6

	tbl := scoreTable()
	tbl.Fields[1].Desc = "名字"

	file, err := NewGenerator(cfg, nil).ExportRows(tbl)
	require.NoError(t, err)

	want := "-- id         int      id\n" +
		"-- name       string   名字\n" +
		"-- score      float\n" +
		"\n" +
		"return {\n"
	assert.Equal(t, want, string(file.Content[:len(want)]))
}

func TestExportIndex_ColumnInfo(t *testing.T) {
	t.Parallel()

	tbl := scoreTable()
	tbl.Fields = append(tbl.Fields, &schema.Field{
		Name: "pos", Type: schema.TypeDict, Column: 3, Desc: "位置",
		Cells: []schema.Cell{schema.PresenceCell(true), schema.PresenceCell(false)},
		Children: []*schema.Field{
			{Name: "x", Type: schema.TypeInt, Column: 4, Cells: []schema.Cell{schema.IntCell(1), schema.IntCell(0)}},
		},
	})

	r, err := rule.Parse("byName:id-name{score,pos}", tbl, 0)
	require.NoError(t, err)

	root, err := index.Build(r.Text, r.KeyFields(), 0)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.ColumnInfo = true
	cfg.NameWidth = 14
	cfg.TypeWidth = 6
	cfg.ChildIndent = "  "
	cfg.DefineSeparator = " | "

	file, err := NewGenerator(cfg, nil).ExportIndex(r, root)
	require.NoError(t, err)

	want := "-- id             | int    | id\n" +
		"--   name         | string | player name\n" +
		"--     {\n" +
		"--       score    | float  |\n" +
		"--       pos      | dict   | 位置\n" +
		"--         x      | int    |\n" +
		"--     }\n" +
		"\n" +
		"return {\n"
	assert.Equal(t, want, string(file.Content[:len(want)]))
}

func TestGenerator_Defaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.IdentValidator = nil
	cfg.Indent = ""

	g := NewGenerator(cfg, nil)
	assert.Equal(t, "\t", g.Config().Indent)
	assert.NotNil(t, g.Config().IdentValidator)
	assert.Equal(t, 7, g.Config().RowNumber(6))
}
