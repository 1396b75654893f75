/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode.go
Description: Answer set decoder for the Draco guide pipeline. Parses one raw
solver model (an unordered set of ground literals) into a structured mapping
keyed by predicate name. Unknown predicates are retained verbatim under their
own key so callers can inspect everything the solver derived. An empty model
decodes to an empty mapping, which is a valid terminal state.
*/

package decode

import (
	"fmt"
	"strings"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// Tuple is one argument tuple of a ground literal
type Tuple []string

// AnswerSet maps predicate names to the argument tuples observed for them.
// Zero-arity atoms appear with one empty tuple.
type AnswerSet map[string][]Tuple

// First returns the first tuple recorded for a predicate
func (a AnswerSet) First(predicate string) (Tuple, bool) {
	tuples, ok := a[predicate]
	if !ok || len(tuples) == 0 {
		return nil, false
	}
	return tuples[0], true
}

// Has reports whether the predicate occurs in the answer set
func (a AnswerSet) Has(predicate string) bool {
	_, ok := a[predicate]
	return ok
}

// Atoms returns the total number of decoded atoms
func (a AnswerSet) Atoms() int {
	n := 0
	for _, tuples := range a {
		n += len(tuples)
	}
	return n
}

// Decode parses a raw model into an AnswerSet
func Decode(model interfaces.RawModel) (AnswerSet, error) {
	set := make(AnswerSet)
	for _, literal := range model {
		predicate, args, err := parseLiteral(literal)
		if err != nil {
			return nil, err
		}
		set[predicate] = append(set[predicate], args)
	}
	return set, nil
}

// parseLiteral splits one ground literal into predicate and argument terms
func parseLiteral(literal string) (string, Tuple, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(literal), "."))
	if trimmed == "" {
		return "", nil, fmt.Errorf("empty literal")
	}

	open := strings.IndexByte(trimmed, '(')
	if open < 0 {
		return trimmed, Tuple{}, nil
	}
	if !strings.HasSuffix(trimmed, ")") {
		return "", nil, fmt.Errorf("unterminated literal %q", literal)
	}

	predicate := trimmed[:open]
	if predicate == "" {
		return "", nil, fmt.Errorf("missing predicate in literal %q", literal)
	}

	args, err := splitArgs(trimmed[open+1 : len(trimmed)-1])
	if err != nil {
		return "", nil, fmt.Errorf("literal %q: %w", literal, err)
	}
	return predicate, args, nil
}

// splitArgs splits an argument list on top-level commas, honoring nested
// terms and quoted strings. Quoted arguments keep their content unquoted.
func splitArgs(s string) (Tuple, error) {
	var args Tuple
	var current strings.Builder
	depth := 0
	inQuote := false
	escaped := false

	flush := func() {
		args = append(args, unquote(strings.TrimSpace(current.String())))
		current.Reset()
	}

	for _, r := range s {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inQuote {
				escaped = true
			}
			current.WriteRune(r)
		case '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case '(':
			if !inQuote {
				depth++
			}
			current.WriteRune(r)
		case ')':
			if !inQuote {
				depth--
				if depth < 0 {
					return nil, fmt.Errorf("unbalanced parentheses")
				}
			}
			current.WriteRune(r)
		case ',':
			if inQuote || depth > 0 {
				current.WriteRune(r)
			} else {
				flush()
			}
		default:
			current.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated string literal")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	flush()
	return args, nil
}

// unquote strips the surrounding quotes of a quoted term and unescapes it
func unquote(term string) string {
	if len(term) < 2 || term[0] != '"' || term[len(term)-1] != '"' {
		return term
	}
	inner := term[1 : len(term)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `\\`, `\`)
	return inner
}
