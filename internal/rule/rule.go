// Package rule parses index export rules of the form
//
//	fileName:key1(check1)-key2-...{leaf1,leaf2,...}
//
// and resolves their key and leaf fields against a table. Check
// expressions and the leaf list are optional; without a leaf list every
// field that is not a key becomes a leaf.
package rule

import (
	"errors"
	"fmt"
	"strings"

	"lua-exporter/internal/check"
	"lua-exporter/internal/diagnostic"
	"lua-exporter/internal/match"
	"lua-exporter/schema"
)

var (
	// ErrMalformedRule reports a rule string that does not follow the grammar.
	ErrMalformedRule = errors.New("malformed export rule")
	// ErrUnknownField reports a rule naming a field the table does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrKeyFieldType reports a key field whose type cannot key an index.
	ErrKeyFieldType = errors.New("field type cannot be used as index key")
)

const maxSuggestions = 3

// KeySpec is one nesting level of a rule.
type KeySpec struct {
	Field *schema.Field
	// Check is the integrity check expression written after the field
	// name, without its parentheses. Empty when none was given.
	Check string
}

// Rule is a parsed and resolved export rule.
type Rule struct {
	Text     string
	FileName string
	Keys     []KeySpec
	Leaves   []*schema.Field
	// Diagnostics carries non-fatal findings such as duplicate leaves.
	Diagnostics diagnostic.Diagnostics
}

// KeyFields returns the key fields in nesting order.
func (r *Rule) KeyFields() []*schema.Field {
	fields := make([]*schema.Field, 0, len(r.Keys))
	for _, k := range r.Keys {
		fields = append(fields, k.Field)
	}

	return fields
}

// Levels returns the key fields paired with their check expressions.
func (r *Rule) Levels() []check.Level {
	levels := make([]check.Level, 0, len(r.Keys))
	for _, k := range r.Keys {
		levels = append(levels, check.Level{Field: k.Field, Expr: k.Check})
	}

	return levels
}

// HasChecks reports whether any key carries a check expression.
func (r *Rule) HasChecks() bool {
	for _, k := range r.Keys {
		if k.Check != "" {
			return true
		}
	}

	return false
}

// Parse parses text and resolves it against t. String and lang key fields
// must hold a non-empty value in every row; rowOffset shifts the row
// numbers those errors report.
func Parse(text string, t *schema.Table, rowOffset int) (*Rule, error) {
	s := strings.TrimSpace(text)

	fileName, rest, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("%w %q: missing ':' after the file name", ErrMalformedRule, text)
	}

	r := &Rule{Text: text, FileName: strings.TrimSpace(fileName)}
	if r.FileName == "" {
		return nil, fmt.Errorf("%w %q: empty file name", ErrMalformedRule, text)
	}

	keyPart, leafPart, hasLeaves, err := splitLeaves(rest)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformedRule, text, err)
	}

	specs, err := splitKeys(keyPart)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformedRule, text, err)
	}

	r.resolveKeys(specs, t)

	if hasLeaves {
		r.resolveLeaves(leafPart, t)
	} else {
		r.defaultLeaves(t)
	}

	for _, k := range r.Keys {
		if err := check.NotEmpty(k.Field, rowOffset); err != nil {
			r.Diagnostics.AddError(diagnostic.CodeEmptyKey, fmt.Errorf("key %w", err), text, k.Field.Name)
		}
	}

	if r.Diagnostics.HasErrors() {
		return nil, r.Diagnostics.Error()
	}

	if hasLeaves && len(r.Leaves) == 0 {
		return nil, fmt.Errorf("%w %q: empty leaf list", ErrMalformedRule, text)
	}

	return r, nil
}

// splitLeaves separates the key portion from an optional {leaf,...} suffix.
// Braces inside parentheses belong to check expressions.
func splitLeaves(s string) (keys, leaves string, hasLeaves bool, err error) {
	depth := 0
	open := -1

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", "", false, errors.New("unmatched parenthesis")
			}
		case '{':
			if depth == 0 && open < 0 {
				open = i
			} else if depth == 0 {
				return "", "", false, errors.New("unmatched brace")
			}
		case '}':
			if depth == 0 && open < 0 {
				return "", "", false, errors.New("unmatched brace")
			}
		}
	}

	if depth != 0 {
		return "", "", false, errors.New("unmatched parenthesis")
	}

	if open < 0 {
		return s, "", false, nil
	}

	tail := strings.TrimSpace(s[open+1:])
	if !strings.HasSuffix(tail, "}") || strings.Count(tail, "}") != 1 {
		return "", "", false, errors.New("unmatched brace")
	}

	return s[:open], tail[:len(tail)-1], true, nil
}

type keySpec struct {
	name  string
	check string
}

// splitKeys splits the key portion on '-' outside parentheses.
func splitKeys(s string) ([]keySpec, error) {
	var (
		specs []keySpec
		depth int
		start int
	)

	flush := func(end int) error {
		part := strings.TrimSpace(s[start:end])
		if part == "" {
			return nil
		}

		spec, err := parseKeySpec(part)
		if err != nil {
			return err
		}

		specs = append(specs, spec)

		return nil
	}

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case '-':
			if depth == 0 {
				if err := flush(i); err != nil {
					return nil, err
				}

				start = i + 1
			}
		}
	}

	if err := flush(len(s)); err != nil {
		return nil, err
	}

	if len(specs) == 0 {
		return nil, errors.New("no key fields")
	}

	return specs, nil
}

func parseKeySpec(part string) (keySpec, error) {
	open := strings.IndexByte(part, '(')
	if open < 0 {
		return keySpec{name: part}, nil
	}

	if !strings.HasSuffix(part, ")") {
		return keySpec{}, fmt.Errorf("key %q: text after check expression", part)
	}

	name := strings.TrimSpace(part[:open])
	if name == "" {
		return keySpec{}, fmt.Errorf("key %q: missing field name", part)
	}

	return keySpec{name: name, check: strings.TrimSpace(part[open+1 : len(part)-1])}, nil
}

// resolveKeys records every key that cannot be resolved as an error
// diagnostic so one run reports them all.
func (r *Rule) resolveKeys(specs []keySpec, t *schema.Table) {
	seen := map[string]struct{}{}

	for _, spec := range specs {
		f, err := lookup(spec.name, t)
		if err != nil {
			r.Diagnostics.AddError(diagnostic.CodeUnknownField, fmt.Errorf("key: %w", err), r.Text, spec.name)

			continue
		}

		if !f.Type.IsIndexable() {
			r.Diagnostics.AddError(diagnostic.CodeKeyFieldType,
				fmt.Errorf("%w: key field is %s, expected int, float, string or lang", ErrKeyFieldType, f.Type),
				r.Text, f.Name)

			continue
		}

		if _, dup := seen[f.Name]; dup {
			r.Diagnostics.AddWarning(diagnostic.CodeDuplicateKeyField,
				"field is used as key more than once", r.Text, f.Name)
		}

		seen[f.Name] = struct{}{}

		r.Keys = append(r.Keys, KeySpec{Field: f, Check: spec.check})
	}
}

func (r *Rule) resolveLeaves(list string, t *schema.Table) {
	keys := r.keySet()
	seen := map[string]struct{}{}

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		f, err := lookup(name, t)
		if err != nil {
			r.Diagnostics.AddError(diagnostic.CodeUnknownField, fmt.Errorf("leaf: %w", err), r.Text, name)

			continue
		}

		if _, dup := seen[name]; dup {
			r.Diagnostics.AddWarning(diagnostic.CodeDuplicateLeaf,
				"leaf listed more than once, exported once", r.Text, name)

			continue
		}

		seen[name] = struct{}{}

		if _, isKey := keys[name]; isKey {
			r.Diagnostics.AddWarning(diagnostic.CodeLeafIsKey,
				"leaf is also a key field", r.Text, name)
		}

		r.Leaves = append(r.Leaves, f)
	}
}

func (r *Rule) defaultLeaves(t *schema.Table) {
	keys := r.keySet()

	for _, f := range t.Fields {
		if _, isKey := keys[f.Name]; !isKey {
			r.Leaves = append(r.Leaves, f)
		}
	}
}

func (r *Rule) keySet() map[string]struct{} {
	keys := make(map[string]struct{}, len(r.Keys))
	for _, k := range r.Keys {
		keys[k.Field.Name] = struct{}{}
	}

	return keys
}

func lookup(name string, t *schema.Table) (*schema.Field, error) {
	if f := t.FieldByName(name); f != nil {
		return f, nil
	}

	if s := match.Suggest(name, t.FieldNames(), maxSuggestions); len(s) > 0 {
		return nil, fmt.Errorf("%w %q in table %q, did you mean %s?", ErrUnknownField, name, t.Name, strings.Join(s, " or "))
	}

	return nil, fmt.Errorf("%w %q in table %q", ErrUnknownField, name, t.Name)
}
