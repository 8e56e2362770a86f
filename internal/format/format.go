// Package format implements the flat {key} template language used for
// commit lines, changelog documents and tag messages. Templates support
// literal substitution only: no loops, no conditionals, no expressions.
// Literal braces are written as {{ and }}.
package format

import (
	"fmt"
	"sort"
	"strings"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// FormatError reports a key that was referenced by a template but missing
// from the values supplied at render time. This is a deeper failure than
// Validate: validation checks against the set of known keys, rendering
// enforces against the values actually provided, which can diverge when a
// key was declared valid but its value omitted.
type FormatError struct {
	Key string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("no value supplied for format key '%s'", e.Key)
}

// Keys returns the distinct placeholder names referenced by the template in
// first-appearance order. Duplicate references collapse to one entry.
func Keys(template string) ([]string, error) {
	var keys []string
	seen := make(map[string]bool)
	err := scan(template, func(segment string, isKey bool) error {
		if isKey && !seen[segment] {
			seen[segment] = true
			keys = append(keys, segment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Validate checks the template references only keys from the available set.
// An empty template or a template referencing unknown keys is a validation
// error; the error enumerates both the offending keys and the full valid
// set to guide fixing a misconfigured template.
func Validate(template string, available []string) error {
	if template == "" {
		return relerrors.NewValidationError("no format template provided")
	}

	keys, err := Keys(template)
	if err != nil {
		return err
	}

	valid := make(map[string]bool, len(available))
	for _, key := range available {
		valid[key] = true
	}

	var unsupported []string
	for _, key := range keys {
		if !valid[key] {
			unsupported = append(unsupported, key)
		}
	}
	if len(unsupported) == 0 {
		return nil
	}

	sort.Strings(unsupported)
	validSorted := append([]string(nil), available...)
	sort.Strings(validSorted)

	return relerrors.NewValidationError(
		fmt.Sprintf("found invalid keys in format string: %s. Valid keys are: %s.",
			quoteJoin(unsupported), quoteJoin(validSorted)),
		"Remove the invalid placeholders or replace them with one of the valid keys.",
	)
}

// Render substitutes the template's placeholders with the supplied values.
// A placeholder with no corresponding value fails with a FormatError.
func Render(template string, values map[string]string) (string, error) {
	if template == "" {
		return "", relerrors.NewValidationError("no format template provided")
	}

	var sb strings.Builder
	err := scan(template, func(segment string, isKey bool) error {
		if !isKey {
			sb.WriteString(segment)
			return nil
		}
		value, ok := values[segment]
		if !ok {
			return &FormatError{Key: segment}
		}
		sb.WriteString(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// scan walks the template once, invoking emit for each literal segment
// (isKey=false) and each placeholder name (isKey=true). Malformed brace
// sequences are validation errors.
func scan(template string, emit func(segment string, isKey bool) error) error {
	var literal strings.Builder
	for i := 0; i < len(template); {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return relerrors.NewValidationError(
					fmt.Sprintf("unterminated placeholder in format string: '%s'", template[i:]))
			}
			key := template[i+1 : i+1+end]
			if key == "" {
				return relerrors.NewValidationError(
					"empty placeholder '{}' in format string")
			}
			if literal.Len() > 0 {
				if err := emit(literal.String(), false); err != nil {
					return err
				}
				literal.Reset()
			}
			if err := emit(key, true); err != nil {
				return err
			}
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return relerrors.NewValidationError(
				"single '}' encountered in format string")
		default:
			literal.WriteByte(c)
			i++
		}
	}
	if literal.Len() > 0 {
		return emit(literal.String(), false)
	}
	return nil
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}
