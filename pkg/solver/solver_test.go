/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: solver_test.go
Description: Unit tests for the process-backed solver gateway. Uses fake solver
scripts emitting canned clingo output to cover satisfiability probing, exit code
interpretation, timeouts, process failures, and malformed output handling.
*/

package solver_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcruz3/draco-guide/pkg/solver"
)

// fakeSolver writes an executable shell script standing in for clingo.
// Every script consumes stdin first so the program write never breaks.
func fakeSolver(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solver scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "clingo")
	script := "#!/bin/sh\ncat >/dev/null\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

var probeProgram = []string{"data(41, expr, 0).", "fieldtype(expr, quantitative)."}

func TestProbeSatisfiable(t *testing.T) {
	path := fakeSolver(t, "echo 'SATISFIABLE'\nexit 10\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	sat, err := gateway.Probe(context.Background(), probeProgram)
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestProbeUnsatisfiable(t *testing.T) {
	path := fakeSolver(t, "echo 'UNSATISFIABLE'\nexit 20\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	sat, err := gateway.Probe(context.Background(), probeProgram)
	require.NoError(t, err)
	assert.False(t, sat)
}

func TestProbeTimeout(t *testing.T) {
	// exec so the kill lands on the sleeping process itself, not a
	// shell parent that would leave it holding the output pipe.
	path := fakeSolver(t, "exec sleep 10\n")
	gateway := solver.NewProcessSolver(solver.Options{
		Path:         path,
		ProbeTimeout: 100 * time.Millisecond,
	})

	start := time.Now()
	_, err := gateway.Probe(context.Background(), probeProgram)
	assert.ErrorIs(t, err, solver.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestProbeProcessFailure(t *testing.T) {
	// Exit code 1 is not a solver result code.
	path := fakeSolver(t, "echo 'error: parse failure' >&2\nexit 1\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	_, err := gateway.Probe(context.Background(), probeProgram)
	assert.ErrorIs(t, err, solver.ErrSolverFailure)
}

func TestProbeMissingBinary(t *testing.T) {
	gateway := solver.NewProcessSolver(solver.Options{
		Path: filepath.Join(t.TempDir(), "no-such-binary"),
	})

	_, err := gateway.Probe(context.Background(), probeProgram)
	assert.ErrorIs(t, err, solver.ErrSolverFailure)
}

func TestProbeMalformedOutput(t *testing.T) {
	path := fakeSolver(t, "echo 'clingo version 5.6.2'\nexit 10\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	_, err := gateway.Probe(context.Background(), probeProgram)
	assert.ErrorIs(t, err, solver.ErrMalformedOutput)
}

func TestSolveEnumeratesModels(t *testing.T) {
	path := fakeSolver(t, `echo 'Answer: 1'
echo 'mark(bar) field(x,gene) type(x,nominal)'
echo 'Answer: 2'
echo 'mark(point) field(x,gene) type(x,nominal)'
echo 'SATISFIABLE'
exit 30
`)
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	stream, err := gateway.Solve(context.Background(), probeProgram, 5)
	require.NoError(t, err)
	defer stream.Close()

	first, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, []string{"mark(bar)", "field(x,gene)", "type(x,nominal)"}, []string(first))

	second, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, "mark(point)", second[0])

	_, ok = stream.Next()
	assert.False(t, ok)
	assert.NoError(t, stream.Err())
}

func TestSolveQuotedAtomsStayIntact(t *testing.T) {
	path := fakeSolver(t, `echo 'Answer: 1'
echo 'data("two words",label,0) mark(bar)'
echo 'SATISFIABLE'
exit 10
`)
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	stream, err := gateway.Solve(context.Background(), probeProgram, 1)
	require.NoError(t, err)
	defer stream.Close()

	model, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, []string{`data("two words",label,0)`, "mark(bar)"}, []string(model))
}

func TestSolveUnsatisfiableYieldsNoModels(t *testing.T) {
	path := fakeSolver(t, "echo 'UNSATISFIABLE'\nexit 20\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	stream, err := gateway.Solve(context.Background(), probeProgram, 1)
	require.NoError(t, err)
	defer stream.Close()

	_, ok := stream.Next()
	assert.False(t, ok)
	assert.NoError(t, stream.Err())
}

func TestSolveRejectsNonPositiveLimit(t *testing.T) {
	gateway := solver.NewProcessSolver(solver.Options{Path: "clingo"})

	_, err := gateway.Solve(context.Background(), probeProgram, 0)
	assert.ErrorIs(t, err, solver.ErrModelLimit)

	_, err = gateway.Solve(context.Background(), probeProgram, -3)
	assert.ErrorIs(t, err, solver.ErrModelLimit)
}

func TestSolveTimeout(t *testing.T) {
	path := fakeSolver(t, "exec sleep 10\n")
	gateway := solver.NewProcessSolver(solver.Options{
		Path:         path,
		SolveTimeout: 100 * time.Millisecond,
	})

	stream, err := gateway.Solve(context.Background(), probeProgram, 1)
	require.NoError(t, err)
	defer stream.Close()

	start := time.Now()
	_, ok := stream.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, stream.Err(), solver.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSolveProcessFailure(t *testing.T) {
	path := fakeSolver(t, "echo 'segfault' >&2\nexit 1\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	stream, err := gateway.Solve(context.Background(), probeProgram, 1)
	require.NoError(t, err)
	defer stream.Close()

	_, ok := stream.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, stream.Err(), solver.ErrSolverFailure)
	assert.Contains(t, stream.Err().Error(), "segfault")
}

func TestSolveMalformedOutput(t *testing.T) {
	path := fakeSolver(t, "echo 'something unexpected'\nexit 10\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	stream, err := gateway.Solve(context.Background(), probeProgram, 1)
	require.NoError(t, err)
	defer stream.Close()

	_, ok := stream.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, stream.Err(), solver.ErrMalformedOutput)
}

func TestStreamCloseReleasesSession(t *testing.T) {
	// The script emits one model then hangs; Close must terminate it
	// promptly instead of waiting for the sleep.
	path := fakeSolver(t, `echo 'Answer: 1'
echo 'mark(bar)'
exec sleep 30
`)
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	stream, err := gateway.Solve(context.Background(), probeProgram, 5)
	require.NoError(t, err)

	model, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, "mark(bar)", model[0])

	start := time.Now()
	require.NoError(t, stream.Close())
	assert.Less(t, time.Since(start), 5*time.Second)

	// Close is idempotent.
	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())

	_, ok = stream.Next()
	assert.False(t, ok)
	assert.NoError(t, stream.Err())
}

func TestSolveContextCancellation(t *testing.T) {
	path := fakeSolver(t, "exec sleep 30\n")
	gateway := solver.NewProcessSolver(solver.Options{Path: path})

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := gateway.Solve(ctx, probeProgram, 1)
	require.NoError(t, err)
	defer stream.Close()

	cancel()
	start := time.Now()
	_, ok := stream.Next()
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 5*time.Second)
	// Caller-driven cancellation is abandonment, not a failure.
	assert.NoError(t, stream.Err())
}
