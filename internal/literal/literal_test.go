package literal

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unquote reverses Quote. It reports false if s is not a quoted literal.
func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}

	return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`), true
}

func TestQuote_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"Ann", `"Ann"`},
		{`123"456`, `"123\"456"`},
		{`""`, `"\"\""`},
		{`a\nb`, `"a\nb"`},
		{"多语言", `"多语言"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := Quote(tt.in)
			assert.Equal(t, tt.want, got)

			back, ok := unquote(got)
			require.True(t, ok)
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestUnquote_Rejects(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", `"`, "abc", `"abc`} {
		_, ok := unquote(s)
		assert.False(t, ok, s)
	}
}

func TestNumbers_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []int64{0, 1, -1, 42, math.MaxInt64, math.MinInt64} {
		back, err := strconv.ParseInt(Int(v), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}

	for _, v := range []float64{0, 88.5, 91, -0.125, 1e21, 3.141592653589793, 1e-7} {
		back, err := strconv.ParseFloat(Float(v), 64)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}

	assert.Equal(t, "91", Float(91))
	assert.Equal(t, "88.5", Float(88.5))
	assert.Equal(t, "math.huge", Float(math.Inf(1)))
	assert.Equal(t, "-math.huge", Float(math.Inf(-1)))
	assert.Equal(t, "0/0", Float(math.NaN()))
}

func TestBool(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", Bool(true))
	assert.Equal(t, "false", Bool(false))
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[7]", IntKey(7))
	assert.Equal(t, "[2.5]", FloatKey(2.5))
	assert.Equal(t, `["Ann"]`, StringKey("Ann"))
	assert.Equal(t, `["a\"b"]`, StringKey(`a"b`))
}

func TestIndent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Indent("\t", 0))
	assert.Equal(t, "", Indent("\t", -1))
	assert.Equal(t, "\t\t\t", Indent("\t", 3))
	assert.Equal(t, "    ", Indent("  ", 2))
}

func TestColumnName(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
		-1:  "?",
	}

	for col, want := range tests {
		assert.Equal(t, want, ColumnName(col), "column %d", col)
	}
}

func TestValidateIdent(t *testing.T) {
	t.Parallel()

	valid := []string{"a", "_", "name", "Name_2", "_private", "x1y2"}
	for _, s := range valid {
		assert.NoError(t, ValidateIdent(s), s)
	}

	invalid := []string{"", "1abc", "a-b", "a b", "名字", "end", "nil", "return"}
	for _, s := range invalid {
		err := ValidateIdent(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, ErrInvalidIdent)
	}
}
