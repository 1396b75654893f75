/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: result.go
Description: Tagged pipeline results and state machine states for the Draco guide
pipeline. Every invocation produces exactly one Result variant; partial success
is never silently coerced into a generic error.
*/

package pipeline

import "github.com/evcruz3/draco-guide/pkg/vizspec"

// State is one stage of the pipeline state machine
type State string

const (
	StateDraft   State = "draft"
	StateEncoded State = "encoded"
	StateProbed  State = "probed"
	StateSolving State = "solving"
)

// Kind tags the terminal outcome of one pipeline invocation
type Kind string

const (
	// KindCompleted carries a completed (possibly partially completed) spec
	KindCompleted Kind = "completed"
	// KindUnsatisfiable is a valid terminal state, not an error
	KindUnsatisfiable Kind = "unsatisfiable"
	// KindSolverFailed captures process crashes, timeouts, malformed output
	KindSolverFailed Kind = "solver_failed"
	// KindEncodingFailed captures empty/malformed input and unsupported values
	KindEncodingFailed Kind = "encoding_failed"
)

// Fallback paths surfaced on the result when solving returned zero models
const (
	FallbackIdentity = "identity"
	FallbackError    = "error"
	FallbackCustom   = "custom"
)

// Result is the single tagged outcome of a pipeline invocation
type Result struct {
	RunID string
	Kind  Kind

	// Completed outcome
	Spec    vizspec.Spec
	Partial bool     // Completion succeeded but some fields remain unset
	Missing []string // Grammar paths still unset, dot-joined
	Models  int      // Answer sets enumerated

	// Failure outcome
	Reason string

	// Fallback path taken when solving returned zero models; empty when
	// no fallback was needed
	Fallback string
}

// Completed reports whether the pipeline produced a spec
func (r *Result) Completed() bool {
	return r.Kind == KindCompleted
}

// Failed reports whether the pipeline ended in a failure variant
func (r *Result) Failed() bool {
	return r.Kind == KindSolverFailed || r.Kind == KindEncodingFailed
}
