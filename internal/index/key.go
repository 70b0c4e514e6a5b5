package index

import (
	"fmt"
	"math"

	"lua-exporter/internal/literal"
	"lua-exporter/schema"
)

// KeyKind tags the active member of a Key.
type KeyKind int

const (
	_ KeyKind = iota

	KeyInt
	KeyFloat
	KeyString
)

// Key is one level of a nested index path. It is comparable and used
// directly as a map key; float keys compare by exact value.
type Key struct {
	Kind  KeyKind
	Int   int64
	Float float64
	Str   string
}

func IntKey(v int64) Key     { return Key{Kind: KeyInt, Int: v} }
func FloatKey(v float64) Key { return Key{Kind: KeyFloat, Float: v} }
func StringKey(v string) Key { return Key{Kind: KeyString, Str: v} }

// KeyOf returns the key field f contributes for row. String keys use the
// raw cell text, lang keys the resolved text.
func KeyOf(f *schema.Field, row int) Key {
	c := f.Cells[row]

	switch f.Type {
	case schema.TypeInt:
		return IntKey(c.Int)
	case schema.TypeFloat:
		return FloatKey(c.Float)
	case schema.TypeString, schema.TypeLang:
		return StringKey(c.Str)
	case schema.TypeBool, schema.TypeTableString, schema.TypeDict, schema.TypeArray:
		panic(fmt.Sprintf("bug: %s field %q used as index key", f.Type, f.Name))
	default:
		panic(fmt.Sprintf("bug: unknown data type %d", f.Type))
	}
}

// Valid reports whether k can be found again once stored. NaN never
// equals itself, so a NaN float key is invalid.
func (k Key) Valid() bool {
	return k.Kind != KeyFloat || !math.IsNaN(k.Float)
}

// Literal renders the key as a bracketed Lua table key.
func (k Key) Literal() string {
	switch k.Kind {
	case KeyInt:
		return literal.IntKey(k.Int)
	case KeyFloat:
		return literal.FloatKey(k.Float)
	case KeyString:
		return literal.StringKey(k.Str)
	default:
		panic(fmt.Sprintf("bug: key of unknown kind %d", k.Kind))
	}
}

// String renders the bare key value for messages.
func (k Key) String() string {
	switch k.Kind {
	case KeyInt:
		return literal.Int(k.Int)
	case KeyFloat:
		return literal.Float(k.Float)
	case KeyString:
		return literal.Quote(k.Str)
	default:
		return fmt.Sprintf("Key(%d)", k.Kind)
	}
}
