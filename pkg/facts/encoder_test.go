/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encoder_test.go
Description: Unit tests for the fact encoder. Covers the data/fieldtype
vocabulary, cell ordering, null omission, float truncation reporting, boolean
and string coercions, the fact-count relation, and encoding determinism.
*/

package facts_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcruz3/draco-guide/pkg/facts"
	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

func geneSchema() *interfaces.Schema {
	return &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "expr", Type: interfaces.FieldQuantitative},
		{Name: "gene", Type: interfaces.FieldNominal},
	}}
}

func TestEncodeGeneExpression(t *testing.T) {
	table := interfaces.Table{
		{"gene": "BRCA1", "expr": 41.7},
		{"gene": "TP53", "expr": 12.0},
	}

	fs, err := facts.NewEncoder(nil).Encode(geneSchema(), table)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"data(41, expr, 0).",
		"data(brca1, gene, 0).",
		"data(12, expr, 1).",
		"data(tp53, gene, 1).",
		"fieldtype(expr, quantitative).",
		"fieldtype(gene, nominal).",
	}, fs.Render())

	// 41.7 lost precision; 12.0 did not.
	require.Len(t, fs.Truncations, 1)
	assert.Equal(t, 0, fs.Truncations[0].Row)
	assert.Equal(t, "expr", fs.Truncations[0].Field)
	assert.Equal(t, 41.7, fs.Truncations[0].From)
	assert.Equal(t, int64(41), fs.Truncations[0].To)
}

func TestEncodeNullsEmitNoFact(t *testing.T) {
	table := interfaces.Table{
		{"gene": "BRCA1", "expr": nil},
		{"gene": nil, "expr": 3.5},
		{"expr": 2.0},
	}

	fs, err := facts.NewEncoder(nil).Encode(geneSchema(), table)
	require.NoError(t, err)

	rendered := fs.Render()
	assert.Equal(t, []string{
		"data(brca1, gene, 0).",
		"data(3, expr, 1).",
		"data(2, expr, 2).",
		"fieldtype(expr, quantitative).",
		"fieldtype(gene, nominal).",
	}, rendered)

	// Fact count = non-null cells + field count.
	assert.Len(t, fs.Facts, 3+len(geneSchema().Fields))
}

func TestEncodeTruncationTowardZero(t *testing.T) {
	s := &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "v", Type: interfaces.FieldQuantitative},
	}}
	table := interfaces.Table{
		{"v": -2.7},
		{"v": 2.7},
		{"v": -0.4},
	}

	fs, err := facts.NewEncoder(nil).Encode(s, table)
	require.NoError(t, err)

	assert.Equal(t, "data(-2, v, 0).", fs.Facts[0].String())
	assert.Equal(t, "data(2, v, 1).", fs.Facts[1].String())
	assert.Equal(t, "data(0, v, 2).", fs.Facts[2].String())
	assert.Len(t, fs.Truncations, 3)
}

func TestEncodeLosslessFloatNotRecorded(t *testing.T) {
	s := &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "v", Type: interfaces.FieldQuantitative},
	}}
	fs, err := facts.NewEncoder(nil).Encode(s, interfaces.Table{{"v": 12.0}})
	require.NoError(t, err)
	assert.Empty(t, fs.Truncations)
}

func TestEncodeNonFiniteFloatFails(t *testing.T) {
	s := &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "v", Type: interfaces.FieldQuantitative},
	}}

	_, err := facts.NewEncoder(nil).Encode(s, interfaces.Table{{"v": nan()}})
	assert.Error(t, err)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEncodeOutOfRangeValuesFail(t *testing.T) {
	s := &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "v", Type: interfaces.FieldQuantitative},
	}}
	encoder := facts.NewEncoder(nil)

	// Magnitudes beyond the integer term range are rejected, never
	// silently saturated.
	for _, v := range []interface{}{1e30, -1e30, float64(math.MaxInt64), uint64(math.MaxUint64)} {
		_, err := encoder.Encode(s, interfaces.Table{{"v": v}})
		require.Error(t, err, "value %v must not encode", v)
		assert.Contains(t, err.Error(), "out of integer term range")
	}

	// The extremes that do fit still encode exactly.
	fs, err := encoder.Encode(s, interfaces.Table{{"v": float64(math.MinInt64)}})
	require.NoError(t, err)
	assert.Equal(t, "data(-9223372036854775808, v, 0).", fs.Facts[0].String())
	assert.Empty(t, fs.Truncations)

	fs, err = encoder.Encode(s, interfaces.Table{{"v": uint64(math.MaxInt64)}})
	require.NoError(t, err)
	assert.Equal(t, "data(9223372036854775807, v, 0).", fs.Facts[0].String())
}

func TestEncodeBoolAndStrings(t *testing.T) {
	s := &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "active", Type: interfaces.FieldNominal},
		{Name: "label", Type: interfaces.FieldNominal},
	}}
	table := interfaces.Table{
		{"active": true, "label": "BRCA1"},
		{"active": false, "label": "two words"},
	}

	fs, err := facts.NewEncoder(nil).Encode(s, table)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"data(true, active, 0).",
		"data(brca1, label, 0).",
		"data(false, active, 1).",
		`data("two words", label, 1).`,
		"fieldtype(active, nominal).",
		"fieldtype(label, nominal).",
	}, fs.Render())
}

func TestEncodeUnsupportedValueType(t *testing.T) {
	s := &interfaces.Schema{Fields: []interfaces.Field{
		{Name: "v", Type: interfaces.FieldNominal},
	}}
	_, err := facts.NewEncoder(nil).Encode(s, interfaces.Table{{"v": []int{1}}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported value type")
}

func TestEncodeEmptyInput(t *testing.T) {
	encoder := facts.NewEncoder(nil)

	_, err := encoder.Encode(geneSchema(), nil)
	assert.ErrorIs(t, err, facts.ErrEmptyTable)

	_, err = encoder.Encode(nil, interfaces.Table{{"a": int64(1)}})
	assert.ErrorIs(t, err, facts.ErrEmptyTable)

	_, err = encoder.Encode(&interfaces.Schema{}, interfaces.Table{{"a": int64(1)}})
	assert.ErrorIs(t, err, facts.ErrEmptyTable)
}

func TestEncodeDeterministic(t *testing.T) {
	table := interfaces.Table{
		{"gene": "BRCA1", "expr": 41.7},
		{"gene": "TP53", "expr": 12.0},
	}
	encoder := facts.NewEncoder(nil)

	first, err := encoder.Encode(geneSchema(), table)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := encoder.Encode(geneSchema(), table)
		require.NoError(t, err)
		assert.Equal(t, first.String(), again.String())
		assert.Equal(t, first.Truncations, again.Truncations)
	}
}
