package tablestring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lua-exporter/schema"
)

func mustFormat(t *testing.T, def string) *schema.TableStringFormat {
	t.Helper()

	f, err := schema.ParseTableStringFormat(def)
	require.NoError(t, err)

	return f
}

func newEngine() *Engine {
	return New(schema.LangMap{
		"hello": "Hello",
		"bad":   "a,b",
	}, nil, "")
}

func TestRender_SeqKeys(t *testing.T) {
	t.Parallel()

	f := mustFormat(t, "tableString[k:#seq|v:#1(int)]")

	got, err := newEngine().Render(f, "10;20;;30;", 0)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t[1] = 10,\n\t[2] = 20,\n\t[3] = 30,\n}", got)
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	f := mustFormat(t, "tableString[k:#seq|v:#true]")

	got, err := newEngine().Render(f, "", 1)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t}", got)
}

func TestRender_IntKeyTrueValue(t *testing.T) {
	t.Parallel()

	f := mustFormat(t, "tableString[k:#1(int)|v:#true]")

	got, err := newEngine().Render(f, " 3 ; 7", 1)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\t[3] = true,\n\t\t[7] = true,\n\t}", got)
}

func TestRender_StringKeyTableValue(t *testing.T) {
	t.Parallel()

	f := mustFormat(t, "tableString[k:#1(string)|v:#table(on=#2(bool),rate=#3(float),name=#4(lang),tag=#5(string))]")

	got, err := newEngine().Render(f, "fire,1,0.5,hello, hot", 0)
	require.NoError(t, err)

	want := "{\n" +
		"\tfire = {\n" +
		"\t\ton = true,\n" +
		"\t\trate = 0.5,\n" +
		"\t\tname = \"Hello\",\n" +
		"\t\ttag = \" hot\",\n" +
		"\t},\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestRender_CustomIndent(t *testing.T) {
	t.Parallel()

	f := mustFormat(t, "tableString[k:#seq|v:#1(string)]")

	got, err := New(nil, nil, "  ").Render(f, "a;b", 1)
	require.NoError(t, err)
	assert.Equal(t, "{\n    [1] = \"a\",\n    [2] = \"b\",\n  }", got)
}

func TestRender_DuplicateKeys(t *testing.T) {
	t.Parallel()

	t.Run("int", func(t *testing.T) {
		t.Parallel()

		f := mustFormat(t, "tableString[k:#1(int)|v:#2(int)]")

		_, err := newEngine().Render(f, "1,10;2,20;1,30", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTableString)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.Contains(t, err.Error(), "entries 1 and 3")
		assert.Contains(t, err.Error(), "entry 3 (1,30)")
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		f := mustFormat(t, "tableString[k:#1(string)|v:#true]")

		_, err := newEngine().Render(f, "a;b; a", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.Contains(t, err.Error(), "entries 1 and 3")
	})
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		cell   string
		msg    string
	}{
		{"quote", "tableString[k:#seq|v:#true]", `a"b`, "must not contain"},
		{"backslash", "tableString[k:#seq|v:#true]", `a\b`, "must not contain"},
		{"slash", "tableString[k:#seq|v:#true]", "a/b", "must not contain"},
		{"index out of range", "tableString[k:#seq|v:#3(int)]", "1,2", "only 2 elements"},
		{"bad int", "tableString[k:#seq|v:#1(int)]", "1;x", "entry 2 (x)"},
		{"bad int key", "tableString[k:#1(int)|v:#true]", "1.5", `"1.5" is not an int`},
		{"bad float", "tableString[k:#seq|v:#1(float)]", "abc", "is not a float"},
		{"bad bool", "tableString[k:#seq|v:#1(bool)]", "true", "is not a bool"},
		{"bad ident", "tableString[k:#1(string)|v:#true]", "1abc", "not a valid name"},
		{"missing lang", "tableString[k:#seq|v:#1(lang)]", "nope", `lang key "nope" not found`},
		{"corrupting lang", "tableString[k:#seq|v:#1(lang)]", "bad", "must not contain"},
		{"table element", "tableString[k:#seq|v:#table(a=#1(int),b=#2(int))]", "1,x", "element b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newEngine().Render(mustFormat(t, tt.format), tt.cell, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTableString)
			assert.Contains(t, err.Error(), tt.msg)
			assert.NotErrorIs(t, err, ErrDuplicateKey)
		})
	}
}

func TestRender_NoLocalizer(t *testing.T) {
	t.Parallel()

	f := mustFormat(t, "tableString[k:#seq|v:#1(lang)]")

	_, err := New(nil, nil, "").Render(f, "hello", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no localization loaded")
}

func TestRender_NilFormatPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { _, _ = newEngine().Render(nil, "1", 0) })
}
