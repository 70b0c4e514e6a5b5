package literal

import (
	"errors"
	"fmt"
)

// ErrInvalidIdent is returned for names that cannot be used as bare Lua keys.
var ErrInvalidIdent = errors.New("invalid identifier")

// IdentValidator decides whether a string may be emitted as a bare table key.
type IdentValidator func(name string) error

var reserved = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "goto": {}, "if": {}, "in": {},
	"local": {}, "nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {},
	"then": {}, "true": {}, "until": {}, "while": {},
}

// ValidateIdent accepts Lua identifiers: a letter or underscore followed by
// letters, digits or underscores, excluding reserved words.
func ValidateIdent(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdent)
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return fmt.Errorf("%w %q: must start with a letter or underscore", ErrInvalidIdent, s)
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return fmt.Errorf("%w %q: only letters, digits and underscores are allowed", ErrInvalidIdent, s)
		}
	}

	if _, ok := reserved[s]; ok {
		return fmt.Errorf("%w %q: reserved word", ErrInvalidIdent, s)
	}

	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
