/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: knowledge_test.go
Description: Unit tests for the embedded design knowledge base. Verifies the
constraint blocks embed correctly and the soft constraint weight table stays in
sync with its accessors.
*/

package knowledge_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcruz3/draco-guide/pkg/knowledge"
)

func TestBlocksEmbedded(t *testing.T) {
	blocks := knowledge.Blocks()
	require.Len(t, blocks, 3)
	for i, block := range blocks {
		assert.NotEmpty(t, block, "block %d", i)
		assert.False(t, strings.HasSuffix(block, "\n"))
	}

	// Program order: search space, hard constraints, soft constraints.
	assert.Contains(t, blocks[0], "markdomain")
	assert.Contains(t, blocks[1], ":-")
	assert.Contains(t, blocks[2], "violation")
	assert.Contains(t, blocks[2], "#minimize")
}

func TestSoftConstraintNamesSorted(t *testing.T) {
	names := knowledge.SoftConstraintNames()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	// Every named constraint appears in the soft block.
	for _, name := range names {
		assert.Contains(t, knowledge.Soft(), name)
	}
}

func TestWeightsReturnsCopy(t *testing.T) {
	weights := knowledge.Weights()
	require.NotEmpty(t, weights)

	for name, weight := range weights {
		assert.Positive(t, weight, "weight for %s", name)
	}

	weights["color_before_position"] = 99
	assert.NotEqual(t, 99, knowledge.Weights()["color_before_position"])
}
