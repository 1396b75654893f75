/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encoder.go
Description: Fact encoder for the Draco guide pipeline. Converts a schema and a
table of records into an ordered, deterministic sequence of ground facts in the
data/fieldtype vocabulary. Applies the documented lossy coercions: nulls are
omitted, floats are truncated toward zero (reported to the caller), strings are
lowercased into symbols or quoted, booleans become nominal true/false literals.
*/

package facts

import (
	"errors"
	"fmt"
	"math"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
	"github.com/evcruz3/draco-guide/pkg/logging"
)

// ErrEmptyTable is returned when there is nothing to encode
var ErrEmptyTable = errors.New("empty input")

// Truncation records one lossy float-to-integer coercion.
// Truncation is toward zero: -2.7 becomes -2, 41.7 becomes 41.
type Truncation struct {
	Row   int
	Field string
	From  float64
	To    int64
}

// FactSet is the ordered, immutable output of one encoding pass
type FactSet struct {
	Facts       []Fact
	Truncations []Truncation
}

// Render returns the facts as ordered ground literal strings
func (fs *FactSet) Render() []string {
	lines := make([]string, len(fs.Facts))
	for i, f := range fs.Facts {
		lines[i] = f.String()
	}
	return lines
}

// String joins the rendered facts with newlines
func (fs *FactSet) String() string {
	out := ""
	for i, f := range fs.Facts {
		if i > 0 {
			out += "\n"
		}
		out += f.String()
	}
	return out
}

// Encoder converts schema+table pairs into fact sets
type Encoder struct {
	logger *logging.Logger
}

// NewEncoder creates an encoder. The logger may be nil; truncations are
// still reported through the FactSet either way.
func NewEncoder(logger *logging.Logger) *Encoder {
	return &Encoder{logger: logger}
}

// Encode emits one data(value, field, row) fact per non-null cell, ordered
// by row index then schema declaration order, followed by one
// fieldtype(field, type) fact per schema field. Identical (schema, table)
// pairs always yield byte-identical fact sets.
func (e *Encoder) Encode(schema *interfaces.Schema, table interfaces.Table) (*FactSet, error) {
	if schema == nil || len(schema.Fields) == 0 || len(table) == 0 {
		return nil, ErrEmptyTable
	}

	fs := &FactSet{}

	for r, row := range table {
		for _, field := range schema.Fields {
			value, present := row[field.Name]
			if !present || value == nil {
				continue // null cells emit no fact
			}

			term, trunc, err := e.encodeValue(field.Name, r, value)
			if err != nil {
				return nil, err
			}
			if trunc != nil {
				fs.Truncations = append(fs.Truncations, *trunc)
				if e.logger != nil {
					e.logger.LogTruncation(trunc.Field, trunc.Row, trunc.From, trunc.To)
				}
			}

			fact, err := NewFact(PredData, term, SymbolTerm(field.Name), IntTerm(int64(r)))
			if err != nil {
				return nil, fmt.Errorf("failed to encode cell (%s, row %d): %w", field.Name, r, err)
			}
			fs.Facts = append(fs.Facts, fact)
		}
	}

	for _, field := range schema.Fields {
		fact, err := NewFact(PredFieldType, SymbolTerm(field.Name), string(field.Type))
		if err != nil {
			return nil, fmt.Errorf("failed to encode field type for %s: %w", field.Name, err)
		}
		fs.Facts = append(fs.Facts, fact)
	}

	if e.logger != nil {
		e.logger.LogEncoding(len(fs.Facts), len(table), len(fs.Truncations))
	}

	return fs, nil
}

// encodeValue renders one cell value as a clingo term, applying the
// documented coercions in order
func (e *Encoder) encodeValue(field string, row int, value interface{}) (string, *Truncation, error) {
	switch v := value.(type) {
	case bool:
		return BoolTerm(v), nil, nil
	case int:
		return IntTerm(int64(v)), nil, nil
	case int32:
		return IntTerm(int64(v)), nil, nil
	case int64:
		return IntTerm(v), nil, nil
	case uint:
		return IntTerm(int64(v)), nil, nil
	case uint32:
		return IntTerm(int64(v)), nil, nil
	case uint64:
		if v > math.MaxInt64 {
			return "", nil, fmt.Errorf("value %d out of integer term range for field %s (row %d)", v, field, row)
		}
		return IntTerm(int64(v)), nil, nil
	case float32:
		return e.truncate(field, row, float64(v))
	case float64:
		return e.truncate(field, row, v)
	case string:
		return SymbolTerm(v), nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported value type %T for field %s (row %d)", value, field, row)
	}
}

// truncate coerces a float toward zero. The coercion is deterministic;
// a Truncation record is attached whenever precision is actually lost.
// Values the integer term cannot hold are rejected, never saturated.
func (e *Encoder) truncate(field string, row int, v float64) (string, *Truncation, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", nil, fmt.Errorf("non-finite value %v for field %s (row %d)", v, field, row)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which already overflows.
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return "", nil, fmt.Errorf("value %v out of integer term range for field %s (row %d)", v, field, row)
	}
	truncated := int64(math.Trunc(v))
	if v != math.Trunc(v) {
		return IntTerm(truncated), &Truncation{Row: row, Field: field, From: v, To: truncated}, nil
	}
	return IntTerm(truncated), nil, nil
}
