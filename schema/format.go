package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lua-exporter/internal/literal"
)

// ErrFormatDefine is returned for malformed tableString format definitions.
var ErrFormatDefine = errors.New("invalid tableString format definition")

// KeyType selects how keys of tableString entries are produced.
type KeyType int

const (
	_ KeyType = iota

	KeySeq         // 1-based entry ordinal
	KeyDataInIndex // typed element of the entry
)

// ValueType selects how values of tableString entries are produced.
type ValueType int

const (
	_ ValueType = iota

	ValueTrue        // literal true
	ValueDataInIndex // typed element of the entry
	ValueTable       // inline table built from several elements
)

// DataInIndex extracts the Index-th (1-based) comma separated element of an
// entry and parses it as Type.
type DataInIndex struct {
	Index int
	Type  DataType
}

func (d DataInIndex) String() string {
	return "#" + strconv.Itoa(d.Index) + "(" + d.Type.String() + ")"
}

type KeyDefine struct {
	Type KeyType
	Data DataInIndex
}

// TableElement is one named member of a table value.
type TableElement struct {
	Name string
	Data DataInIndex
}

type ValueDefine struct {
	Type     ValueType
	Data     DataInIndex
	Elements []TableElement
}

// TableStringFormat governs decoding of one tableString cell.
type TableStringFormat struct {
	Key   KeyDefine
	Value ValueDefine
}

// String renders the format back into its definition syntax.
func (f *TableStringFormat) String() string {
	var b strings.Builder

	b.WriteString("tableString[k:")

	switch f.Key.Type {
	case KeySeq:
		b.WriteString("#seq")
	case KeyDataInIndex:
		b.WriteString(f.Key.Data.String())
	}

	b.WriteString("|v:")

	switch f.Value.Type {
	case ValueTrue:
		b.WriteString("#true")
	case ValueDataInIndex:
		b.WriteString(f.Value.Data.String())
	case ValueTable:
		b.WriteString("#table(")

		for i, el := range f.Value.Elements {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteString(el.Name + "=" + el.Data.String())
		}

		b.WriteByte(')')
	}

	b.WriteByte(']')

	return b.String()
}

// ParseTableStringFormat parses a definition such as
//
//	tableString[k:#seq|v:#true]
//	tableString[k:#1(int)|v:#2(string)]
//	tableString[k:#1(string)|v:#table(type=#2(int),count=#3(int))]
func ParseTableStringFormat(def string) (*TableStringFormat, error) {
	s := strings.TrimSpace(def)

	open := strings.IndexByte(s, '[')
	if open < 0 || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w %q: expected tableString[k:<key>|v:<value>]", ErrFormatDefine, def)
	}

	if t, ok := ParseDataType(s[:open]); !ok || t != TypeTableString {
		return nil, fmt.Errorf("%w %q: not a tableString type", ErrFormatDefine, def)
	}

	parts := strings.Split(s[open+1:len(s)-1], "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w %q: expected exactly one k: and one v: part", ErrFormatDefine, def)
	}

	var keyPart, valuePart string

	for _, p := range parts {
		name, spec, ok := strings.Cut(strings.TrimSpace(p), ":")
		if !ok {
			return nil, fmt.Errorf("%w %q: part %q has no ':'", ErrFormatDefine, def, p)
		}

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "k":
			keyPart = strings.TrimSpace(spec)
		case "v":
			valuePart = strings.TrimSpace(spec)
		default:
			return nil, fmt.Errorf("%w %q: unknown part %q", ErrFormatDefine, def, name)
		}
	}

	if keyPart == "" || valuePart == "" {
		return nil, fmt.Errorf("%w %q: both k: and v: must be declared", ErrFormatDefine, def)
	}

	key, err := parseKeyDefine(keyPart)
	if err != nil {
		return nil, fmt.Errorf("%w %q: key: %w", ErrFormatDefine, def, err)
	}

	value, err := parseValueDefine(valuePart)
	if err != nil {
		return nil, fmt.Errorf("%w %q: value: %w", ErrFormatDefine, def, err)
	}

	return &TableStringFormat{Key: key, Value: value}, nil
}

func parseKeyDefine(s string) (KeyDefine, error) {
	if strings.EqualFold(s, "#seq") {
		return KeyDefine{Type: KeySeq}, nil
	}

	d, err := parseDataInIndex(s)
	if err != nil {
		return KeyDefine{}, err
	}

	if d.Type != TypeInt && d.Type != TypeString {
		return KeyDefine{}, fmt.Errorf("key type must be int or string, got %s", d.Type)
	}

	return KeyDefine{Type: KeyDataInIndex, Data: d}, nil
}

func parseValueDefine(s string) (ValueDefine, error) {
	if strings.EqualFold(s, "#true") {
		return ValueDefine{Type: ValueTrue}, nil
	}

	const tablePrefix = "#table("
	if len(s) >= len(tablePrefix) && strings.EqualFold(s[:len(tablePrefix)], tablePrefix) {
		if !strings.HasSuffix(s, ")") {
			return ValueDefine{}, fmt.Errorf("unterminated %q", s)
		}

		elements, err := parseTableElements(s[len(tablePrefix) : len(s)-1])
		if err != nil {
			return ValueDefine{}, err
		}

		return ValueDefine{Type: ValueTable, Elements: elements}, nil
	}

	d, err := parseDataInIndex(s)
	if err != nil {
		return ValueDefine{}, err
	}

	return ValueDefine{Type: ValueDataInIndex, Data: d}, nil
}

func parseTableElements(s string) ([]TableElement, error) {
	var elements []TableElement

	seen := map[string]struct{}{}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, spec, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("table element %q must look like name=#N(type)", part)
		}

		name = strings.TrimSpace(name)
		if err := literal.ValidateIdent(name); err != nil {
			return nil, fmt.Errorf("table element %q: %w", part, err)
		}

		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("table element name %q declared twice", name)
		}

		seen[name] = struct{}{}

		d, err := parseDataInIndex(strings.TrimSpace(spec))
		if err != nil {
			return nil, fmt.Errorf("table element %q: %w", name, err)
		}

		elements = append(elements, TableElement{Name: name, Data: d})
	}

	if len(elements) == 0 {
		return nil, errors.New("#table() declares no elements")
	}

	return elements, nil
}

// parseDataInIndex parses "#N(type)".
func parseDataInIndex(s string) (DataInIndex, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasPrefix(s, "#") || open < 0 || !strings.HasSuffix(s, ")") {
		return DataInIndex{}, fmt.Errorf("%q must look like #N(type)", s)
	}

	idx, err := strconv.Atoi(strings.TrimSpace(s[1:open]))
	if err != nil || idx < 1 {
		return DataInIndex{}, fmt.Errorf("%q: element index must be a positive integer", s)
	}

	t, ok := ParseDataType(s[open+1 : len(s)-1])
	if !ok || !t.IsElement() {
		return DataInIndex{}, fmt.Errorf("%q: element type must be int, float, string, bool or lang", s)
	}

	return DataInIndex{Index: idx, Type: t}, nil
}
