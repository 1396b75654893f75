/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fact.go
Description: Ground fact representation for the Draco guide pipeline. A Fact is a
validated literal record (predicate plus rendered argument terms) rather than raw
text, checked for syntactic well-formedness at construction and rendered to the
clingo ground syntax on demand.
*/

package facts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Predicate vocabulary emitted by the encoder
const (
	PredData      = "data"      // data(Value, Field, Row)
	PredFieldType = "fieldtype" // fieldtype(Field, Type)
)

// symbolPattern matches a bare clingo symbol: lowercase start, then
// letters, digits, underscores
var symbolPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)

// Fact is one ground literal in the fixed predicate vocabulary.
// Args hold already-rendered terms (symbols, integers, quoted strings).
type Fact struct {
	Predicate string
	Args      []string
}

// NewFact creates a validated fact. The predicate must be a bare symbol
// and every argument term must be non-empty.
func NewFact(predicate string, args ...string) (Fact, error) {
	if !symbolPattern.MatchString(predicate) {
		return Fact{}, fmt.Errorf("invalid predicate %q: must be a lowercase symbol", predicate)
	}
	for i, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return Fact{}, fmt.Errorf("empty argument %d for predicate %q", i, predicate)
		}
	}
	return Fact{Predicate: predicate, Args: args}, nil
}

// String renders the fact in ground clingo syntax, e.g. data(41, expr, 0).
func (f Fact) String() string {
	if len(f.Args) == 0 {
		return f.Predicate + "."
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(f.Args, ", "))
}

// SymbolTerm renders a string as a clingo term: lowercased, bare when the
// result is a valid symbol, quoted otherwise. BRCA1 becomes brca1.
func SymbolTerm(s string) string {
	lower := strings.ToLower(s)
	if symbolPattern.MatchString(lower) {
		return lower
	}
	return QuotedTerm(s)
}

// QuotedTerm renders a string as a quoted clingo literal
func QuotedTerm(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// IntTerm renders an integer term
func IntTerm(n int64) string {
	return strconv.FormatInt(n, 10)
}

// BoolTerm renders a boolean as the fixed nominal encoding true/false
func BoolTerm(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
