/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: spec.go
Description: Visualization specification document for the Draco guide pipeline.
A Spec is a nested key/value document (mark type, per-channel encodings) treated
as opaque but inspectable and mergeable. It is not validated against the full
visualization grammar. Specs load from JSON or YAML files.
*/

package vizspec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Spec is a partial or complete visualization specification
type Spec map[string]interface{}

// Clone returns a deep copy of the spec
func (s Spec) Clone() Spec {
	if s == nil {
		return Spec{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		// A Spec is always JSON-serializable by construction; an
		// unmarshalable one is a programming error.
		panic(fmt.Sprintf("vizspec: unserializable spec: %v", err))
	}
	var out Spec
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("vizspec: clone round-trip failed: %v", err))
	}
	return out
}

// Get walks the document along path and returns the value found
func (s Spec) Get(path ...string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(s)
	for _, key := range path {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set writes a value at path, creating intermediate objects as needed
func (s Spec) Set(value interface{}, path ...string) {
	if len(path) == 0 {
		return
	}
	current := map[string]interface{}(s)
	for _, key := range path[:len(path)-1] {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[key] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}

// Channels returns the encoding channel names present in the spec.
// Order is not guaranteed; callers sort when order matters.
func (s Spec) Channels() []string {
	encoding, ok := s.Get("encoding")
	if !ok {
		return nil
	}
	node, ok := encoding.(map[string]interface{})
	if !ok {
		return nil
	}
	channels := make([]string, 0, len(node))
	for name := range node {
		channels = append(channels, name)
	}
	return channels
}

// String renders the spec as indented JSON
func (s Spec) String() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(s))
	}
	return string(data)
}

// LoadFile reads a spec from a JSON or YAML file, keyed by extension
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	var spec Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse YAML spec: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse JSON spec: %w", err)
		}
	}
	return spec, nil
}
