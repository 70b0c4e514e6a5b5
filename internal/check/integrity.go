package check

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lua-exporter/internal/common"
	"lua-exporter/internal/index"
	"lua-exporter/schema"
)

// ErrIntegrity reports a nested index that fails an integrity check.
var ErrIntegrity = errors.New("integrity check failed")

// Level pairs a key field with the check expression written after it in an
// export rule. An empty Expr means the level is not checked.
type Level struct {
	Field *schema.Field
	Expr  string
}

// Checker verifies a finished nested index before it is emitted.
type Checker interface {
	Check(root *index.Node, levels []Level) error
}

// SetChecker is the default Checker. A level expression lists the exact key
// set every group at that level must hold:
//
//	{1,2,3}     int keys 1, 2 and 3
//	{1..5,10}   inclusive int ranges may be mixed with values
//	{a,b}       string or lang keys
//
// Missing and unexpected keys both fail.
type SetChecker struct{}

var _ Checker = SetChecker{}

func (SetChecker) Check(root *index.Node, levels []Level) error {
	for depth, lv := range levels {
		if strings.TrimSpace(lv.Expr) == "" {
			continue
		}

		want, err := ParseSet(lv.Field.Type, lv.Expr)
		if err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrIntegrity, lv.Field.Name, err)
		}

		if err := checkDepth(root, depth, nil, func(path []index.Key, n *index.Node) error {
			return compareSet(path, n, want)
		}); err != nil {
			return fmt.Errorf("%w: field %q %s: %w", ErrIntegrity, lv.Field.Name, lv.Expr, err)
		}
	}

	return nil
}

// checkDepth calls fn on every branch found depth levels below n.
func checkDepth(n *index.Node, depth int, path []index.Key, fn func([]index.Key, *index.Node) error) error {
	if depth == 0 {
		return fn(path, n)
	}

	for _, k := range n.Keys() {
		child := n.Child(k)
		if child.Kind != index.Branch {
			continue
		}

		if err := checkDepth(child, depth-1, append(path[:len(path):len(path)], k), fn); err != nil {
			return err
		}
	}

	return nil
}

func compareSet(path []index.Key, n *index.Node, want []index.Key) error {
	expected := make(map[index.Key]struct{}, len(want))
	for _, k := range want {
		expected[k] = struct{}{}
	}

	var unexpected, missing []string

	for _, k := range n.Keys() {
		if _, ok := expected[k]; !ok {
			unexpected = append(unexpected, k.String())
		}
	}

	for _, k := range want {
		if n.Child(k) == nil {
			missing = append(missing, k.String())
		}
	}

	if len(unexpected) == 0 && len(missing) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}

	if len(unexpected) > 0 {
		parts = append(parts, "unexpected "+strings.Join(unexpected, ", "))
	}

	return fmt.Errorf("group %s: %s", groupName(path), strings.Join(parts, "; "))
}

func groupName(path []index.Key) string {
	if len(path) == 0 {
		return "<root>"
	}

	parts := make([]string, 0, len(path))
	for _, k := range path {
		parts = append(parts, k.Literal())
	}

	return strings.Join(parts, "")
}

const maxRangeSize = 1 << 16

// ParseSet parses a "{v1,v2,lo..hi}" expression into the keys it names,
// typed after the key field type. Ranges are only allowed for int fields.
func ParseSet(t schema.DataType, expr string) ([]index.Key, error) {
	s := strings.TrimSpace(expr)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("expression %q must look like {v1,v2,...}", expr)
	}

	var keys []index.Key

	add := func(k index.Key) { keys = append(keys, k) }

	for _, part := range strings.Split(s[1:len(s)-1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch t {
		case schema.TypeInt:
			if lo, hi, ok := strings.Cut(part, ".."); ok {
				from, err1 := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
				to, err2 := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)

				if err1 != nil || err2 != nil || from > to {
					return nil, fmt.Errorf("invalid int range %q", part)
				}

				span := uint64(to) - uint64(from)
				if span >= maxRangeSize {
					return nil, fmt.Errorf("int range %q is wider than %d values", part, maxRangeSize)
				}

				for i := range span + 1 {
					add(index.IntKey(from + int64(i)))
				}

				continue
			}

			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not an int", part)
			}

			add(index.IntKey(v))
		case schema.TypeFloat:
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a float", part)
			}

			add(index.FloatKey(v))
		case schema.TypeString, schema.TypeLang:
			add(index.StringKey(part))
		case schema.TypeBool, schema.TypeTableString, schema.TypeDict, schema.TypeArray:
			return nil, fmt.Errorf("%s fields cannot be checked", t)
		default:
			panic(fmt.Sprintf("bug: unknown data type %d", t))
		}
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("expression %q names no values", expr)
	}

	keys, _ = common.Unique(keys)

	return keys, nil
}
