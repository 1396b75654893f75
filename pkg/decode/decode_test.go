/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode_test.go
Description: Unit tests for the answer set decoder. Covers literal parsing,
quoted and nested argument terms, zero-arity atoms, unknown predicate
retention, empty models, and malformed literal rejection.
*/

package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcruz3/draco-guide/pkg/decode"
	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

func TestDecodeModel(t *testing.T) {
	model := interfaces.RawModel{
		"mark(bar)",
		"field(x,gene)",
		"field(y,expr)",
		"type(x,nominal)",
	}

	set, err := decode.Decode(model)
	require.NoError(t, err)

	mark, ok := set.First("mark")
	require.True(t, ok)
	assert.Equal(t, decode.Tuple{"bar"}, mark)

	assert.Equal(t, []decode.Tuple{{"x", "gene"}, {"y", "expr"}}, set["field"])
	assert.Equal(t, 4, set.Atoms())
	assert.True(t, set.Has("type"))
	assert.False(t, set.Has("aggregate"))
}

func TestDecodeZeroArityAtom(t *testing.T) {
	set, err := decode.Decode(interfaces.RawModel{"saturated"})
	require.NoError(t, err)

	tuple, ok := set.First("saturated")
	require.True(t, ok)
	assert.Equal(t, decode.Tuple{}, tuple)
}

func TestDecodeTrailingPeriod(t *testing.T) {
	set, err := decode.Decode(interfaces.RawModel{"mark(point).", " cost(7). "})
	require.NoError(t, err)

	mark, _ := set.First("mark")
	assert.Equal(t, decode.Tuple{"point"}, mark)
	cost, _ := set.First("cost")
	assert.Equal(t, decode.Tuple{"7"}, cost)
}

func TestDecodeQuotedArguments(t *testing.T) {
	set, err := decode.Decode(interfaces.RawModel{
		`data("two words",label,1)`,
		`data("say \"hi\"",label,2)`,
	})
	require.NoError(t, err)

	tuples := set["data"]
	require.Len(t, tuples, 2)
	assert.Equal(t, decode.Tuple{"two words", "label", "1"}, tuples[0])
	assert.Equal(t, decode.Tuple{`say "hi"`, "label", "2"}, tuples[1])
}

func TestDecodeNestedTerms(t *testing.T) {
	set, err := decode.Decode(interfaces.RawModel{"pref(pair(x,y),3)"})
	require.NoError(t, err)

	tuple, ok := set.First("pref")
	require.True(t, ok)
	assert.Equal(t, decode.Tuple{"pair(x,y)", "3"}, tuple)
}

func TestDecodeUnknownPredicatesRetained(t *testing.T) {
	set, err := decode.Decode(interfaces.RawModel{
		"mark(bar)",
		"some_internal_helper(a,b,c)",
	})
	require.NoError(t, err)
	assert.True(t, set.Has("some_internal_helper"))
}

func TestDecodeEmptyModel(t *testing.T) {
	// An empty model is a valid terminal state and decodes cleanly.
	set, err := decode.Decode(interfaces.RawModel{})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Atoms())
}

func TestDecodeMalformedLiterals(t *testing.T) {
	cases := []string{
		"",
		"mark(bar",
		"(bar)",
		`data("unterminated,f,0)`,
		"data(a))",
	}
	for _, literal := range cases {
		_, err := decode.Decode(interfaces.RawModel{literal})
		assert.Error(t, err, "literal %q should not decode", literal)
	}
}
