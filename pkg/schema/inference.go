/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inference.go
Description: Schema inference engine for the Draco guide pipeline. Profiles a table
of records and infers per-field semantic types (nominal, ordinal, quantitative,
temporal) and statistics (cardinality, min/max, null count) for fact encoding.
*/

package schema

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// ErrEmptyInput is returned when the table has no rows or no fields
var ErrEmptyInput = errors.New("empty input")

// DefaultOrdinalCardinalityThreshold marks numeric fields with fewer
// distinct values as ordinal rather than quantitative
const DefaultOrdinalCardinalityThreshold = 20

// DefaultTemporalFormats are the date/time layouts accepted during inference
var DefaultTemporalFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Inferencer profiles tables and produces immutable schemas.
// Inference is idempotent: the same table always yields an identical Schema.
type Inferencer struct {
	threshold int
	formats   []string
}

// NewInferencer creates an inferencer with the given ordinal cardinality
// threshold and temporal format set. Zero/nil arguments select the defaults.
func NewInferencer(threshold int, formats []string) *Inferencer {
	if threshold <= 0 {
		threshold = DefaultOrdinalCardinalityThreshold
	}
	if len(formats) == 0 {
		formats = DefaultTemporalFormats
	}
	return &Inferencer{threshold: threshold, formats: formats}
}

// fieldProfile accumulates per-field observations across rows
type fieldProfile struct {
	nonNull     int
	nulls       int
	distinct    map[string]struct{}
	min, max    float64
	hasRange    bool
	allNumeric  bool
	allIntegral bool
	allTemporal bool
}

func newFieldProfile() *fieldProfile {
	return &fieldProfile{
		distinct:    make(map[string]struct{}),
		allNumeric:  true,
		allIntegral: true,
		allTemporal: true,
	}
}

// FromTable infers a Schema from an in-memory table.
// Field order is deterministic: fields appear in first-appearance order,
// with keys within each row visited alphabetically.
func (in *Inferencer) FromTable(table interfaces.Table) (*interfaces.Schema, error) {
	if len(table) == 0 {
		return nil, ErrEmptyInput
	}

	order := []string{}
	profiles := make(map[string]*fieldProfile)

	for _, row := range table {
		for _, name := range sortedKeys(row) {
			if _, ok := profiles[name]; !ok {
				profiles[name] = newFieldProfile()
				order = append(order, name)
			}
		}
	}
	if len(order) == 0 {
		return nil, ErrEmptyInput
	}

	for _, row := range table {
		for _, name := range order {
			value, present := row[name]
			if !present || value == nil {
				profiles[name].nulls++
				continue
			}
			in.observe(profiles[name], value)
		}
	}

	fields := make([]interfaces.Field, 0, len(order))
	for _, name := range order {
		p := profiles[name]
		fields = append(fields, interfaces.Field{
			Name: name,
			Type: in.classify(p),
			Stats: interfaces.FieldStats{
				Distinct: len(p.distinct),
				Nulls:    p.nulls,
				Min:      p.min,
				Max:      p.max,
				HasRange: p.hasRange,
			},
		})
	}

	return &interfaces.Schema{Fields: fields}, nil
}

// observe updates a field profile with one non-null cell value
func (in *Inferencer) observe(p *fieldProfile, value interface{}) {
	p.nonNull++
	p.distinct[fmt.Sprintf("%v", value)] = struct{}{}

	if num, ok := numericValue(value); ok {
		if !p.hasRange || num < p.min {
			p.min = num
		}
		if !p.hasRange || num > p.max {
			p.max = num
		}
		p.hasRange = true
		p.allTemporal = false
		if !isIntegral(value) {
			p.allIntegral = false
		}
		return
	}
	p.allNumeric = false
	p.allIntegral = false

	if s, ok := value.(string); ok {
		if !in.parsesTemporal(s) {
			p.allTemporal = false
		}
		return
	}
	p.allTemporal = false
}

// classify applies the type inference policy to a finished profile:
// quantitative if all non-null values are numeric, temporal if all parse
// under the configured formats, ordinal if the values are integers with
// cardinality below the threshold, else nominal. Fields with no non-null
// values fall back to nominal.
func (in *Inferencer) classify(p *fieldProfile) interfaces.FieldType {
	if p.nonNull == 0 {
		return interfaces.FieldNominal
	}
	if p.allNumeric {
		if p.allIntegral && len(p.distinct) < in.threshold {
			return interfaces.FieldOrdinal
		}
		return interfaces.FieldQuantitative
	}
	if p.allTemporal {
		return interfaces.FieldTemporal
	}
	return interfaces.FieldNominal
}

// parsesTemporal reports whether s parses under any configured layout
func (in *Inferencer) parsesTemporal(s string) bool {
	for _, layout := range in.formats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isIntegral reports whether the cell value carries an integer Go type.
// JSON numbers decode as float64 and therefore never count as integral.
func isIntegral(v interface{}) bool {
	switch v.(type) {
	case int, int32, int64, uint, uint32, uint64:
		return true
	default:
		return false
	}
}

// numericValue extracts a numeric cell value as float64
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// sortedKeys returns the row keys in alphabetical order
func sortedKeys(row interfaces.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
