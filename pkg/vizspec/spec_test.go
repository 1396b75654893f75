/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: spec_test.go
Description: Unit tests for the visualization specification document. Covers
path access, deep cloning, channel listing, and JSON/YAML file loading.
*/

package vizspec_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcruz3/draco-guide/pkg/vizspec"
)

func TestSpecGetSet(t *testing.T) {
	spec := vizspec.Spec{}
	spec.Set("bar", "mark")
	spec.Set("gene", "encoding", "x", "field")

	mark, ok := spec.Get("mark")
	require.True(t, ok)
	assert.Equal(t, "bar", mark)

	field, ok := spec.Get("encoding", "x", "field")
	require.True(t, ok)
	assert.Equal(t, "gene", field)

	_, ok = spec.Get("encoding", "y", "field")
	assert.False(t, ok)
	_, ok = spec.Get("mark", "nested")
	assert.False(t, ok)
}

func TestSpecCloneIsDeep(t *testing.T) {
	spec := vizspec.Spec{}
	spec.Set("gene", "encoding", "x", "field")

	clone := spec.Clone()
	clone.Set("expr", "encoding", "x", "field")

	original, _ := spec.Get("encoding", "x", "field")
	assert.Equal(t, "gene", original)

	var nilSpec vizspec.Spec
	assert.NotNil(t, nilSpec.Clone())
}

func TestSpecChannels(t *testing.T) {
	spec := vizspec.Spec{}
	assert.Empty(t, spec.Channels())

	spec.Set("gene", "encoding", "x", "field")
	spec.Set(map[string]interface{}{}, "encoding", "y")

	channels := spec.Channels()
	sort.Strings(channels)
	assert.Equal(t, []string{"x", "y"}, channels)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mark":"bar","encoding":{"x":{"field":"gene"}}}`), 0644))

	spec, err := vizspec.LoadFile(path)
	require.NoError(t, err)

	mark, _ := spec.Get("mark")
	assert.Equal(t, "bar", mark)
	field, _ := spec.Get("encoding", "x", "field")
	assert.Equal(t, "gene", field)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	content := "mark: point\nencoding:\n  x:\n    field: expr\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	spec, err := vizspec.LoadFile(path)
	require.NoError(t, err)

	mark, _ := spec.Get("mark")
	assert.Equal(t, "point", mark)
	field, _ := spec.Get("encoding", "x", "field")
	assert.Equal(t, "expr", field)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := vizspec.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = vizspec.LoadFile(path)
	assert.Error(t, err)
}
