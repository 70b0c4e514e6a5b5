package tablestring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lua-exporter/internal/literal"
	"lua-exporter/schema"
)

var (
	// ErrTableString is wrapped by every decoding failure.
	ErrTableString = errors.New("invalid tableString")
	// ErrDuplicateKey reports two entries of one cell producing the same key.
	ErrDuplicateKey = errors.New("duplicate tableString key")
)

const (
	entrySeparator   = ";"
	elementSeparator = ","

	// forbiddenCellChars may not appear anywhere in a raw cell.
	forbiddenCellChars = `"\/`
	// forbiddenLangChars may not appear in localized text used inside a cell.
	forbiddenLangChars = `"\/,;`
)

// Localizer resolves lang keys to localized text.
type Localizer interface {
	Lookup(key string) (string, bool)
}

// Engine renders tableString cells. The zero value is not usable; build one
// with New.
type Engine struct {
	lang          Localizer
	validateIdent literal.IdentValidator
	indent        string
}

// New creates an Engine. A nil validator falls back to literal.ValidateIdent,
// an empty indent to a tab.
func New(lang Localizer, validate literal.IdentValidator, indent string) *Engine {
	if validate == nil {
		validate = literal.ValidateIdent
	}

	if indent == "" {
		indent = "\t"
	}

	return &Engine{lang: lang, validateIdent: validate, indent: indent}
}

// Render decodes cell per format and returns the table literal. The opening
// brace is not indented; entries are indented at level+1 and the closing
// brace at level, so the result can follow "name = " directly.
func (e *Engine) Render(format *schema.TableStringFormat, cell string, level int) (string, error) {
	if format == nil {
		panic("bug: tableString rendered without a format definition")
	}

	if strings.ContainsAny(cell, forbiddenCellChars) {
		return "", fmt.Errorf("%w: cell %q must not contain '\"', '\\' or '/'", ErrTableString, cell)
	}

	var b strings.Builder

	b.WriteString("{\n")

	// key text -> 0-based entry ordinal that produced it
	seen := map[string]int{}
	ordinal := 0

	for _, entry := range strings.Split(cell, entrySeparator) {
		if entry == "" {
			continue
		}

		key, err := e.key(format.Key, entry, ordinal, seen)
		if err != nil {
			return "", fmt.Errorf("%w: entry %d (%s): key: %w", ErrTableString, ordinal+1, entry, err)
		}

		value, err := e.value(format.Value, entry, level+1)
		if err != nil {
			return "", fmt.Errorf("%w: entry %d (%s): value: %w", ErrTableString, ordinal+1, entry, err)
		}

		b.WriteString(literal.Indent(e.indent, level+1))
		b.WriteString(key)
		b.WriteString(" = ")
		b.WriteString(value)
		b.WriteString(",\n")

		ordinal++
	}

	b.WriteString(literal.Indent(e.indent, level))
	b.WriteString("}")

	return b.String(), nil
}

func (e *Engine) key(def schema.KeyDefine, entry string, ordinal int, seen map[string]int) (string, error) {
	switch def.Type {
	case schema.KeySeq:
		return literal.IntKey(int64(ordinal + 1)), nil
	case schema.KeyDataInIndex:
		raw, err := e.element(def.Data, entry)
		if err != nil {
			return "", err
		}

		var key string

		switch def.Data.Type {
		case schema.TypeInt:
			n, err := parseInt(raw)
			if err != nil {
				return "", err
			}

			key = literal.IntKey(n)
		case schema.TypeString:
			key = strings.TrimSpace(raw)
			if err := e.validateIdent(key); err != nil {
				return "", fmt.Errorf("string key is not a valid name: %w", err)
			}
		default:
			panic(fmt.Sprintf("bug: tableString key of type %s", def.Data.Type))
		}

		if prev, dup := seen[key]; dup {
			return "", fmt.Errorf("%w: entries %d and %d both have key %s", ErrDuplicateKey, prev+1, ordinal+1, key)
		}

		seen[key] = ordinal

		return key, nil
	default:
		panic(fmt.Sprintf("bug: unknown tableString key type %d", def.Type))
	}
}

func (e *Engine) value(def schema.ValueDefine, entry string, level int) (string, error) {
	switch def.Type {
	case schema.ValueTrue:
		return literal.True, nil
	case schema.ValueDataInIndex:
		return e.typed(def.Data, entry)
	case schema.ValueTable:
		var b strings.Builder

		b.WriteString("{\n")

		for _, el := range def.Elements {
			v, err := e.typed(el.Data, entry)
			if err != nil {
				return "", fmt.Errorf("element %s: %w", el.Name, err)
			}

			b.WriteString(literal.Indent(e.indent, level+1))
			b.WriteString(el.Name)
			b.WriteString(" = ")
			b.WriteString(v)
			b.WriteString(",\n")
		}

		b.WriteString(literal.Indent(e.indent, level))
		b.WriteString("}")

		return b.String(), nil
	default:
		panic(fmt.Sprintf("bug: unknown tableString value type %d", def.Type))
	}
}

// element extracts the d.Index-th non-empty element of entry. Elements are
// trimmed unless the target type is string.
func (e *Engine) element(d schema.DataInIndex, entry string) (string, error) {
	var elements []string

	for _, el := range strings.Split(strings.TrimSpace(entry), elementSeparator) {
		if el != "" {
			elements = append(elements, el)
		}
	}

	if d.Index < 1 || d.Index > len(elements) {
		return "", fmt.Errorf("%s: entry has only %d elements", d, len(elements))
	}

	el := elements[d.Index-1]
	if d.Type != schema.TypeString {
		el = strings.TrimSpace(el)
	}

	return el, nil
}

// typed extracts an element and renders it as a Lua value of d.Type.
func (e *Engine) typed(d schema.DataInIndex, entry string) (string, error) {
	raw, err := e.element(d, entry)
	if err != nil {
		return "", err
	}

	switch d.Type {
	case schema.TypeBool:
		switch raw {
		case "1":
			return literal.True, nil
		case "0":
			return literal.False, nil
		default:
			return "", fmt.Errorf("%s: %q is not a bool, use 1 for true and 0 for false", d, raw)
		}
	case schema.TypeInt:
		n, err := parseInt(raw)
		if err != nil {
			return "", fmt.Errorf("%s: %w", d, err)
		}

		return literal.Int(n), nil
	case schema.TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("%s: %q is not a float", d, raw)
		}

		return literal.Float(f), nil
	case schema.TypeString:
		return literal.Quote(raw), nil
	case schema.TypeLang:
		text, err := e.localize(raw)
		if err != nil {
			return "", fmt.Errorf("%s: %w", d, err)
		}

		return literal.Quote(text), nil
	case schema.TypeTableString, schema.TypeDict, schema.TypeArray:
		panic(fmt.Sprintf("bug: tableString element of type %s", d.Type))
	default:
		panic(fmt.Sprintf("bug: unknown data type %d", d.Type))
	}
}

func (e *Engine) localize(key string) (string, error) {
	if e.lang == nil {
		return "", fmt.Errorf("lang key %q: no localization loaded", key)
	}

	text, ok := e.lang.Lookup(key)
	if !ok {
		return "", fmt.Errorf("lang key %q not found", key)
	}

	if strings.ContainsAny(text, forbiddenLangChars) {
		return "", fmt.Errorf("lang key %q resolves to %q, which must not contain '\"', '\\', '/', ',' or ';'", key, text)
	}

	return text, nil
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an int", s)
	}

	return n, nil
}
