package schema

import "strings"

//go:generate go tool stringer -type=DataType -linecomment -output=datatype_string.go

type DataType int

const (
	_ DataType = iota // skip zero value, use it as a default (invalid) value for DataType

	TypeInt         // int
	TypeFloat       // float
	TypeString      // string
	TypeBool        // bool
	TypeLang        // lang
	TypeTableString // tableString
	TypeDict        // dict
	TypeArray       // array

	// TypeTotal is a constant that represents the total number of types defined
	TypeTotal = int(iota)
)

// ParseDataType resolves a declared type name. Matching is case-insensitive.
// The tableString type may carry its format definition, e.g. "tableString[k:#seq|v:#true]".
func ParseDataType(s string) (DataType, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '['); i > 0 {
		s = s[:i]
	}

	for t := TypeInt; int(t) < TypeTotal; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, true
		}
	}

	return 0, false
}

func (t DataType) IsValid() bool {
	return t > 0 && int(t) < TypeTotal
}

// IsComposite reports whether the type has child fields.
func (t DataType) IsComposite() bool {
	switch t {
	default:
		return false
	case TypeDict, TypeArray:
		return true
	}
}

// IsIndexable reports whether values of the type may be used as index keys.
func (t DataType) IsIndexable() bool {
	switch t {
	default:
		return false
	case TypeInt, TypeFloat, TypeString, TypeLang:
		return true
	}
}

// IsElement reports whether the type may be extracted from a tableString entry.
func (t DataType) IsElement() bool {
	switch t {
	default:
		return false
	case TypeInt, TypeFloat, TypeString, TypeBool, TypeLang:
		return true
	}
}
