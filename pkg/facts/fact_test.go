/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fact_test.go
Description: Unit tests for the ground fact representation. Covers fact
construction validation, rendering, and the term coercion helpers.
*/

package facts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcruz3/draco-guide/pkg/facts"
)

func TestNewFactValidation(t *testing.T) {
	fact, err := facts.NewFact("data", "41", "expr", "0")
	require.NoError(t, err)
	assert.Equal(t, "data(41, expr, 0).", fact.String())

	_, err = facts.NewFact("Data", "x")
	assert.Error(t, err)

	_, err = facts.NewFact("da ta", "x")
	assert.Error(t, err)

	_, err = facts.NewFact("data", "")
	assert.Error(t, err)

	_, err = facts.NewFact("data", "  ")
	assert.Error(t, err)
}

func TestFactZeroArity(t *testing.T) {
	fact, err := facts.NewFact("flag")
	require.NoError(t, err)
	assert.Equal(t, "flag.", fact.String())
}

func TestSymbolTerm(t *testing.T) {
	assert.Equal(t, "brca1", facts.SymbolTerm("BRCA1"))
	assert.Equal(t, "gene", facts.SymbolTerm("gene"))
	assert.Equal(t, "x_1", facts.SymbolTerm("X_1"))
	// Not a valid symbol even lowercased: falls back to quoting.
	assert.Equal(t, `"two words"`, facts.SymbolTerm("two words"))
	assert.Equal(t, `"1st"`, facts.SymbolTerm("1st"))
}

func TestQuotedTerm(t *testing.T) {
	assert.Equal(t, `"plain"`, facts.QuotedTerm("plain"))
	assert.Equal(t, `"say \"hi\""`, facts.QuotedTerm(`say "hi"`))
	assert.Equal(t, `"a\\b"`, facts.QuotedTerm(`a\b`))
}

func TestIntAndBoolTerms(t *testing.T) {
	assert.Equal(t, "-41", facts.IntTerm(-41))
	assert.Equal(t, "0", facts.IntTerm(0))
	assert.Equal(t, "true", facts.BoolTerm(true))
	assert.Equal(t, "false", facts.BoolTerm(false))
}
