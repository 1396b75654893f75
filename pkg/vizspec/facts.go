/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: facts.go
Description: Partial-spec fact encoding for the Draco guide pipeline. Renders the
caller-supplied fields of a partial specification as ground facts so the solver
search is pinned to them: a declared mark stays that mark, a filled channel
keeps its field. Declared but empty channels become open slots for the solver.
*/

package vizspec

import (
	"fmt"
	"sort"

	"github.com/evcruz3/draco-guide/pkg/facts"
)

// SpecFacts encodes the set portions of a partial spec as ground facts.
// Channels are visited alphabetically so the encoding is deterministic.
func SpecFacts(partial Spec) ([]facts.Fact, error) {
	var out []facts.Fact

	if mark, ok := partial.Get("mark"); ok {
		name, ok := mark.(string)
		if !ok {
			return nil, fmt.Errorf("mark must be a string, got %T", mark)
		}
		fact, err := facts.NewFact(PredMark, facts.SymbolTerm(name))
		if err != nil {
			return nil, err
		}
		out = append(out, fact)
	}

	channels := partial.Channels()
	sort.Strings(channels)

	for _, channel := range channels {
		fact, err := facts.NewFact(PredChannel, facts.SymbolTerm(channel))
		if err != nil {
			return nil, err
		}
		out = append(out, fact)

		for _, key := range []string{"field", "type", "aggregate"} {
			value, ok := partial.Get("encoding", channel, key)
			if !ok {
				continue
			}
			name, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("encoding.%s.%s must be a string, got %T", channel, key, value)
			}
			fact, err := facts.NewFact(key, facts.SymbolTerm(channel), facts.SymbolTerm(name))
			if err != nil {
				return nil, err
			}
			out = append(out, fact)
		}
	}

	return out, nil
}
