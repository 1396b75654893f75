/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: completer.go
Description: Specification completion for the Draco guide pipeline. Merges
solver-chosen attributes from a decoded answer set into a partial specification.
Fields already present in the partial spec are never overwritten; merging uses
RFC 7386 merge-patch semantics with the partial spec as the winning overlay.
Missing required fields flag the result as partially completed.
*/

package vizspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/evcruz3/draco-guide/pkg/decode"
)

// ErrNoAnswerSets is returned when completion is attempted with nothing to
// merge from
var ErrNoAnswerSets = errors.New("no answer sets to complete from")

// Selection chooses which answer set completes the spec
type Selection int

const (
	// SelectFirst takes the first enumerated answer set
	SelectFirst Selection = iota
	// SelectBestByScore takes the answer set with the lowest cost: the
	// cost(N) atom when present, otherwise the soft-constraint violation
	// count
	SelectBestByScore
)

// Answer-set predicates mapped onto grammar paths
const (
	PredMark      = "mark"      // mark(M) -> mark
	PredField     = "field"     // field(C, F) -> encoding.C.field
	PredType      = "type"      // type(C, T) -> encoding.C.type
	PredAggregate = "aggregate" // aggregate(C, A) -> encoding.C.aggregate
	PredBin       = "bin"       // bin(C, N) -> encoding.C.bin.maxbins
	PredChannel   = "channel"   // channel(C) declares an encoding slot
	PredCost      = "cost"      // cost(N) ranks models
	PredViolation = "violation" // violation(Name) counts toward the score
)

// Completion is the result of merging solver output into a partial spec
type Completion struct {
	Spec       Spec     // The merged specification
	Partial    bool     // True when required fields remain unset
	Missing    []string // Grammar paths still unset, dot-joined
	ModelIndex int      // Index of the chosen answer set
}

// Completer merges answer sets into partial specifications
type Completer struct {
	selection Selection
}

// NewCompleter creates a completer with the given selection policy
func NewCompleter(selection Selection) *Completer {
	return &Completer{selection: selection}
}

// Complete merges the chosen answer set into the partial spec. The partial
// spec itself is never mutated; every key it defines survives unchanged in
// the result.
func (c *Completer) Complete(partial Spec, sets []decode.AnswerSet) (*Completion, error) {
	if len(sets) == 0 {
		return nil, ErrNoAnswerSets
	}

	index := c.choose(sets)
	candidate := attributeDoc(sets[index])

	merged, err := merge(candidate, partial)
	if err != nil {
		return nil, fmt.Errorf("failed to merge completion: %w", err)
	}

	missing := MissingPaths(merged)
	return &Completion{
		Spec:       merged,
		Partial:    len(missing) > 0,
		Missing:    missing,
		ModelIndex: index,
	}, nil
}

// choose applies the selection policy
func (c *Completer) choose(sets []decode.AnswerSet) int {
	if c.selection != SelectBestByScore || len(sets) == 1 {
		return 0
	}
	best := 0
	bestScore := score(sets[0])
	for i, set := range sets[1:] {
		if s := score(set); s < bestScore {
			best = i + 1
			bestScore = s
		}
	}
	return best
}

// score ranks an answer set: explicit cost(N) atom wins, otherwise the
// number of violation atoms. Lower is better.
func score(set decode.AnswerSet) int {
	if tuple, ok := set.First(PredCost); ok && len(tuple) > 0 {
		if n, err := strconv.Atoi(tuple[0]); err == nil {
			return n
		}
	}
	return len(set[PredViolation])
}

// attributeDoc builds a nested document from the solver-chosen attributes
func attributeDoc(set decode.AnswerSet) Spec {
	doc := Spec{}

	if tuple, ok := set.First(PredMark); ok && len(tuple) == 1 {
		doc.Set(tuple[0], "mark")
	}

	channelAttr := func(predicate, key string) {
		for _, tuple := range set[predicate] {
			if len(tuple) != 2 {
				continue
			}
			doc.Set(tuple[1], "encoding", tuple[0], key)
		}
	}
	channelAttr(PredField, "field")
	channelAttr(PredType, "type")
	channelAttr(PredAggregate, "aggregate")

	for _, tuple := range set[PredBin] {
		if len(tuple) != 2 {
			continue
		}
		if n, err := strconv.Atoi(tuple[1]); err == nil {
			doc.Set(map[string]interface{}{"maxbins": n}, "encoding", tuple[0], "bin")
		}
	}

	// Declared but unfilled channels still appear as encoding slots so
	// completeness checking can see them.
	for _, tuple := range set[PredChannel] {
		if len(tuple) != 1 {
			continue
		}
		if _, ok := doc.Get("encoding", tuple[0]); !ok {
			doc.Set(map[string]interface{}{}, "encoding", tuple[0])
		}
	}

	return doc
}

// merge overlays the partial spec onto the candidate with merge-patch
// semantics: keys in the partial always win, candidate keys fill the gaps
func merge(candidate, partial Spec) (Spec, error) {
	base, err := json.Marshal(candidate)
	if err != nil {
		return nil, err
	}
	overlay, err := json.Marshal(partial)
	if err != nil {
		return nil, err
	}
	mergedData, err := jsonpatch.MergePatch(base, overlay)
	if err != nil {
		return nil, err
	}
	var merged Spec
	if err := json.Unmarshal(mergedData, &merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// MissingPaths lists the required grammar paths still unset in a spec:
// the mark type, and a field for every declared encoding channel
func MissingPaths(spec Spec) []string {
	var missing []string

	if _, ok := spec.Get("mark"); !ok {
		missing = append(missing, "mark")
	}

	channels := spec.Channels()
	sort.Strings(channels)
	for _, channel := range channels {
		if _, ok := spec.Get("encoding", channel, "field"); !ok {
			missing = append(missing, "encoding."+channel+".field")
		}
	}

	return missing
}
