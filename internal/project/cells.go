package project

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lua-exporter/schema"
)

// appendCell decodes one YAML value for f (and its children) and appends
// the resulting cells.
func appendCell(f *schema.Field, v any, present bool, lang schema.LangMap) error {
	c, err := decodeCell(f, v, lang)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}

	f.Cells = append(f.Cells, c)

	if !f.Type.IsComposite() {
		return nil
	}

	children := childValues(f, v, present && c.Valid)

	for i, child := range f.Children {
		cv, ok := children(i, child)
		if err := appendCell(child, cv, ok, lang); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

// childValues returns a lookup of child values of a composite cell.
func childValues(f *schema.Field, v any, valid bool) func(int, *schema.Field) (any, bool) {
	if !valid {
		return func(int, *schema.Field) (any, bool) { return nil, false }
	}

	switch val := v.(type) {
	case map[string]any:
		return func(_ int, child *schema.Field) (any, bool) {
			cv, ok := val[child.Name]
			return cv, ok
		}
	case []any:
		return func(i int, _ *schema.Field) (any, bool) {
			if i < len(val) {
				return val[i], true
			}

			return nil, false
		}
	default:
		panic(fmt.Sprintf("bug: composite field %q decoded from %T", f.Name, v))
	}
}

func decodeCell(f *schema.Field, v any, lang schema.LangMap) (schema.Cell, error) {
	switch f.Type {
	case schema.TypeInt:
		n, err := toInt(v)
		return schema.IntCell(n), err
	case schema.TypeFloat:
		x, err := toFloat(v)
		return schema.FloatCell(x), err
	case schema.TypeString, schema.TypeTableString:
		s, err := toString(v)
		return schema.StringCell(s), err
	case schema.TypeBool:
		b, err := toBool(v)
		return schema.BoolCell(b), err
	case schema.TypeLang:
		key, err := toString(v)
		if err != nil {
			return schema.Cell{}, err
		}

		text, ok := lang.Lookup(key)

		return schema.LangCell(key, text, ok && key != ""), nil
	case schema.TypeDict:
		return presence(v, f.Type, isMap)
	case schema.TypeArray:
		return presence(v, f.Type, isList)
	default:
		panic(fmt.Sprintf("bug: field %q has unknown data type %d", f.Name, f.Type))
	}
}

// presence marks a composite cell valid when v has the expected shape.
// null and -1 mark it invalid.
func presence(v any, t schema.DataType, shaped func(any) bool) (schema.Cell, error) {
	if v == nil {
		return schema.PresenceCell(false), nil
	}

	if n, err := toInt(v); err == nil && n == -1 {
		return schema.PresenceCell(false), nil
	}

	if !shaped(v) {
		return schema.Cell{}, fmt.Errorf("%v is not a valid %s value", v, t)
	}

	return schema.PresenceCell(true), nil
}

func isMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int", n)
		}

		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an int", n)
		}

		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an int", n)
		}

		return i, nil
	default:
		return 0, fmt.Errorf("%v is not an int", v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a float", n)
		}

		return x, nil
	default:
		return 0, fmt.Errorf("%v is not a float", v)
	}
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), nil
	default:
		return "", fmt.Errorf("%v is not a string", v)
	}
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case string:
		switch strings.TrimSpace(b) {
		case "1":
			return true, nil
		case "0", "":
			return false, nil
		}
	}

	return false, fmt.Errorf("%v is not a bool, use true/false or 1/0", v)
}
