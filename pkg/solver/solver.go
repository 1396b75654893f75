/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: solver.go
Description: Process-backed solver gateway for the Draco guide pipeline. Drives an
external clingo binary for satisfiability probes and bounded model enumeration.
All process quirks (exit codes, timeouts, malformed output) stay behind the
Solver interface; failures are returned as tagged errors, never propagated as
crashes.
*/

package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
	"github.com/evcruz3/draco-guide/pkg/logging"
)

// DefaultSolverPath is the clingo binary resolved through PATH
const DefaultSolverPath = "clingo"

// Options configures a ProcessSolver
type Options struct {
	Path         string        // Solver binary; DefaultSolverPath when empty
	Args         []string      // Extra arguments prepended to every call
	ProbeTimeout time.Duration // Wall-clock bound per probe; 0 means no bound
	SolveTimeout time.Duration // Wall-clock bound per solve; 0 means no bound
	Logger       *logging.Logger
}

// ProcessSolver implements interfaces.Solver over an external clingo
// process. One process is spawned per call; a ProcessSolver itself holds
// no session state and is safe for concurrent use.
type ProcessSolver struct {
	opts Options
}

// NewProcessSolver creates a solver gateway for the configured binary
func NewProcessSolver(opts Options) *ProcessSolver {
	if opts.Path == "" {
		opts.Path = DefaultSolverPath
	}
	return &ProcessSolver{opts: opts}
}

// Probe runs a cheap satisfiability check. Model output is suppressed
// (--quiet=2), so no model is materialized. Fails closed: every process
// error resolves to (false, err).
func (s *ProcessSolver) Probe(ctx context.Context, program []string) (bool, error) {
	if s.opts.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ProbeTimeout)
		defer cancel()
	}

	sessionID := uuid.New().String()
	start := time.Now()

	args := append(append([]string{}, s.opts.Args...), "--models=1", "--quiet=2", "-")
	cmd := exec.CommandContext(ctx, s.opts.Path, args...)
	cmd.Stdin = strings.NewReader(strings.Join(program, "\n") + "\n")

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return false, ErrTimeout
	}
	if err != nil && !isSolverExit(err) {
		return false, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}

	sat, perr := parseResult(output.String())
	if perr != nil {
		return false, perr
	}

	if s.opts.Logger != nil {
		s.opts.Logger.LogProbe(sessionID, sat, time.Since(start))
	}
	return sat, nil
}

// parseResult extracts the SATISFIABLE/UNSATISFIABLE verdict from solver
// output. UNSATISFIABLE is checked first because SATISFIABLE is one of its
// substrings.
func parseResult(output string) (bool, error) {
	for _, line := range strings.Split(output, "\n") {
		switch strings.TrimSpace(line) {
		case "UNSATISFIABLE":
			return false, nil
		case "SATISFIABLE":
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: no result line found", ErrMalformedOutput)
}

// isSolverExit reports whether the process ended with one of clingo's
// regular result exit codes (10 satisfiable, 20 unsatisfiable, 30
// satisfiable and search exhausted)
func isSolverExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	switch exitErr.ExitCode() {
	case 10, 20, 30:
		return true
	default:
		return false
	}
}

var _ interfaces.Solver = (*ProcessSolver)(nil)
