/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: knowledge.go
Description: Embedded visualization design knowledge base for the Draco guide
pipeline. Exposes the default ASP constraint system (search space helpers, hard
constraints, weighted soft constraints) used to complete partial specifications.
*/

package knowledge

import (
	_ "embed"
	"sort"
	"strings"
)

//go:embed asp/define.lp
var helpers string

//go:embed asp/constraints.lp
var constraints string

//go:embed asp/soft.lp
var soft string

// softWeights mirrors the weight/2 facts in asp/soft.lp
var softWeights = map[string]int{
	"color_before_position": 3,
	"shape_channel":         1,
	"quantitative_color":    2,
	"temporal_y":            1,
}

// Helpers returns the search space definition block
func Helpers() string {
	return helpers
}

// Constraints returns the hard constraint block
func Constraints() string {
	return constraints
}

// Soft returns the weighted soft constraint block
func Soft() string {
	return soft
}

// SoftConstraintNames lists the soft constraint names in sorted order
func SoftConstraintNames() []string {
	names := make([]string, 0, len(softWeights))
	for name := range softWeights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Weights returns a copy of the soft constraint weight table
func Weights() map[string]int {
	out := make(map[string]int, len(softWeights))
	for name, weight := range softWeights {
		out[name] = weight
	}
	return out
}

// Blocks returns the knowledge base blocks in program order
func Blocks() []string {
	return []string{
		strings.TrimRight(helpers, "\n"),
		strings.TrimRight(constraints, "\n"),
		strings.TrimRight(soft, "\n"),
	}
}
