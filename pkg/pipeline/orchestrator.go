/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: orchestrator.go
Description: Pipeline orchestrator for constraint-based visualization completion.
Sequences schema inference, fact encoding, satisfiability probing, bounded model
enumeration, and spec completion through an explicit state machine. Every
invocation returns exactly one tagged Result; encoding and solver errors are
captured at this boundary, never propagated as crashes.
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/evcruz3/draco-guide/pkg/decode"
	"github.com/evcruz3/draco-guide/pkg/facts"
	"github.com/evcruz3/draco-guide/pkg/interfaces"
	"github.com/evcruz3/draco-guide/pkg/knowledge"
	"github.com/evcruz3/draco-guide/pkg/logging"
	"github.com/evcruz3/draco-guide/pkg/schema"
	"github.com/evcruz3/draco-guide/pkg/solver"
	"github.com/evcruz3/draco-guide/pkg/vizspec"
)

// FallbackFunc is the custom default-completion policy applied when
// solving succeeds with zero models
type FallbackFunc func(partial vizspec.Spec) (vizspec.Spec, error)

// Pipeline orchestrates one table + partial spec through the completion
// state machine. A Pipeline is safe for concurrent Run calls: each run
// owns its own solver session and mutable state.
type Pipeline struct {
	config *interfaces.PipelineConfig
	logger *logging.Logger

	solver     interfaces.Solver
	inferencer *schema.Inferencer
	encoder    *facts.Encoder
	completer  *vizspec.Completer
	fallback   FallbackFunc

	cache *encodingCache

	mu          sync.RWMutex
	initialized bool
}

// NewPipeline creates an uninitialized pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{cache: newEncodingCache()}
}

// SetSolver injects a solver gateway. When unset, Initialize builds a
// process-backed solver from the configuration.
func (p *Pipeline) SetSolver(s interfaces.Solver) {
	p.solver = s
}

// SetLogger injects a logger. When unset, Initialize builds one from the
// configuration.
func (p *Pipeline) SetLogger(l *logging.Logger) {
	p.logger = l
}

// SetFallback installs the custom fallback callback; only consulted when
// FallbackPolicy is "custom"
func (p *Pipeline) SetFallback(fn FallbackFunc) {
	p.fallback = fn
}

// Initialize validates the configuration and prepares all components
func (p *Pipeline) Initialize(config *interfaces.PipelineConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if config == nil {
		config = DefaultConfig()
	}
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	if config.FallbackPolicy == FallbackCustom && p.fallback == nil {
		return fmt.Errorf("fallback policy is custom but no callback set - use SetFallback() before Initialize()")
	}
	p.config = config

	if p.logger == nil {
		logger, err := logging.NewLogger(&logging.LoggerConfig{
			Level:     logging.LogLevel(config.LogLevel),
			Format:    logging.LogFormatText,
			OutputDir: "",
			MaxFiles:  10,
			Timestamp: true,
		})
		if err != nil {
			return fmt.Errorf("failed to setup logger: %w", err)
		}
		p.logger = logger
	}

	p.inferencer = schema.NewInferencer(config.OrdinalCardinalityThreshold, config.TemporalFormats)
	p.encoder = facts.NewEncoder(p.logger)

	selection := vizspec.SelectFirst
	if config.Selection == "best" {
		selection = vizspec.SelectBestByScore
	}
	p.completer = vizspec.NewCompleter(selection)

	if p.solver == nil {
		p.solver = solver.NewProcessSolver(solver.Options{
			Path:         config.SolverPath,
			Args:         config.SolverArgs,
			ProbeTimeout: config.ProbeTimeout,
			SolveTimeout: config.SolveTimeout,
			Logger:       p.logger,
		})
	}

	p.initialized = true
	return nil
}

// Run drives one table + partial spec through the full state machine:
// Draft -> Encoded -> Probed -> {Unsatisfiable | Solving} ->
// {Completed | SolverFailed | EncodingFailed}.
func (p *Pipeline) Run(ctx context.Context, table interfaces.Table, partial vizspec.Spec, rules []string) *Result {
	p.mu.RLock()
	initialized := p.initialized
	p.mu.RUnlock()

	runID := uuid.New().String()
	if !initialized {
		return p.encodingFailed(runID, fmt.Errorf("pipeline not initialized - call Initialize() first"))
	}
	if partial == nil {
		partial = vizspec.Spec{}
	}

	p.transition(runID, StateDraft)

	// Draft -> Encoded
	program, err := p.encode(table, partial, rules)
	if err != nil {
		return p.encodingFailed(runID, err)
	}
	p.transition(runID, StateEncoded)

	// Encoded -> Probed. Probe failures become the SolverFailed terminal,
	// never a crash.
	sat, err := p.solver.Probe(ctx, program.Lines())
	if err != nil {
		return p.solverFailed(runID, err)
	}
	p.transition(runID, StateProbed)

	if !sat {
		// Solve is never invoked for an unsatisfiable program.
		return &Result{RunID: runID, Kind: KindUnsatisfiable}
	}

	// Probed -> Solving
	p.transition(runID, StateSolving)
	sets, err := p.enumerate(ctx, program)
	if err != nil {
		return p.solverFailed(runID, err)
	}

	if len(sets) == 0 {
		return p.applyFallback(runID, partial)
	}

	completion, err := p.completer.Complete(partial, sets)
	if err != nil {
		return p.solverFailed(runID, err)
	}

	p.logger.LogCompletion(runID, completion.Partial, completion.ModelIndex)
	return &Result{
		RunID:   runID,
		Kind:    KindCompleted,
		Spec:    completion.Spec,
		Partial: completion.Partial,
		Missing: completion.Missing,
		Models:  len(sets),
	}
}

// CompleteSpec completes a partial spec against a table with no extra
// caller rules
func (p *Pipeline) CompleteSpec(ctx context.Context, table interfaces.Table, partial vizspec.Spec) *Result {
	return p.Run(ctx, table, partial, nil)
}

// encode assembles the constraint program: data facts, knowledge base,
// partial-spec facts, then caller rules, in that order
func (p *Pipeline) encode(table interfaces.Table, partial vizspec.Spec, rules []string) (*facts.Program, error) {
	_, factSet, err := p.encodeTable(table)
	if err != nil {
		return nil, err
	}

	program := facts.NewProgram(factSet)
	for _, block := range knowledge.Blocks() {
		program.AddBlock(block)
	}

	specFacts, err := vizspec.SpecFacts(partial)
	if err != nil {
		return nil, err
	}
	for _, fact := range specFacts {
		if err := program.AddRule(fact.String()); err != nil {
			return nil, err
		}
	}

	if err := program.AddRules(rules); err != nil {
		return nil, err
	}
	return program, nil
}

// encodeTable runs schema inference and fact encoding, consulting the
// additive fingerprint cache first
func (p *Pipeline) encodeTable(table interfaces.Table) (*interfaces.Schema, *facts.FactSet, error) {
	key, ok := fingerprint(table)
	if ok {
		if s, fs, hit := p.cache.get(key); hit {
			return s, fs, nil
		}
	}

	inferred, err := p.inferencer.FromTable(table)
	if err != nil {
		return nil, nil, err
	}
	factSet, err := p.encoder.Encode(inferred, table)
	if err != nil {
		return nil, nil, err
	}

	if ok {
		p.cache.put(key, inferred, factSet)
	}
	return inferred, factSet, nil
}

// enumerate drains the model stream up to the configured limit and decodes
// each raw model. The stream is always closed, including on early error.
func (p *Pipeline) enumerate(ctx context.Context, program *facts.Program) ([]decode.AnswerSet, error) {
	stream, err := p.solver.Solve(ctx, program.Lines(), p.config.ModelLimit)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var sets []decode.AnswerSet
	for {
		model, ok := stream.Next()
		if !ok {
			break
		}
		set, err := decode.Decode(model)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", solver.ErrMalformedOutput, err)
		}
		sets = append(sets, set)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// applyFallback handles zero returned models according to the configured
// policy; the taken path is surfaced on the result
func (p *Pipeline) applyFallback(runID string, partial vizspec.Spec) *Result {
	p.logger.LogFallback(runID, p.config.FallbackPolicy)

	switch p.config.FallbackPolicy {
	case FallbackError:
		return &Result{
			RunID:    runID,
			Kind:     KindSolverFailed,
			Reason:   "no models returned",
			Fallback: FallbackError,
		}
	case FallbackCustom:
		spec, err := p.fallback(partial.Clone())
		if err != nil {
			return &Result{
				RunID:    runID,
				Kind:     KindSolverFailed,
				Reason:   fmt.Sprintf("fallback callback failed: %v", err),
				Fallback: FallbackCustom,
			}
		}
		missing := vizspec.MissingPaths(spec)
		return &Result{
			RunID:    runID,
			Kind:     KindCompleted,
			Spec:     spec,
			Partial:  len(missing) > 0,
			Missing:  missing,
			Fallback: FallbackCustom,
		}
	default:
		// Identity: return the partial spec unchanged.
		spec := partial.Clone()
		missing := vizspec.MissingPaths(spec)
		return &Result{
			RunID:    runID,
			Kind:     KindCompleted,
			Spec:     spec,
			Partial:  len(missing) > 0,
			Missing:  missing,
			Fallback: FallbackIdentity,
		}
	}
}

// transition logs a state machine transition
func (p *Pipeline) transition(runID string, state State) {
	p.logger.Debug("Pipeline state transition", map[string]interface{}{
		"run_id": runID,
		"state":  state,
	})
}

// encodingFailed wraps a schema-inference or fact-encoding error
func (p *Pipeline) encodingFailed(runID string, err error) *Result {
	if p.logger != nil {
		p.logger.Error("Encoding failed", map[string]interface{}{
			"run_id": runID,
			"reason": err.Error(),
		})
	}
	reason := err.Error()
	if errors.Is(err, schema.ErrEmptyInput) || errors.Is(err, facts.ErrEmptyTable) {
		reason = "empty input"
	}
	return &Result{RunID: runID, Kind: KindEncodingFailed, Reason: reason}
}

// solverFailed wraps an external-process failure; timeouts surface with
// the exact reason "timeout"
func (p *Pipeline) solverFailed(runID string, err error) *Result {
	p.logger.Error("Solver failed", map[string]interface{}{
		"run_id": runID,
		"reason": err.Error(),
	})
	reason := err.Error()
	if errors.Is(err, solver.ErrTimeout) {
		reason = "timeout"
	}
	return &Result{RunID: runID, Kind: KindSolverFailed, Reason: reason}
}
