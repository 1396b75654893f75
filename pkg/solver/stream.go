/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stream.go
Description: Bounded model enumeration for the solver gateway. Solve starts one
clingo process and exposes its answer sets as a lazy, finite ModelStream. The
process handle is released deterministically on every exit path: exhaustion,
early Close, context cancellation, or timeout. No orphaned solver processes.
*/

package solver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// Solve enumerates up to modelLimit answer sets for the program.
// The returned stream owns the solver session; callers must Close it
// (Close is idempotent, so `defer stream.Close()` is always safe).
func (s *ProcessSolver) Solve(ctx context.Context, program []string, modelLimit int) (interfaces.ModelStream, error) {
	if modelLimit <= 0 {
		return nil, ErrModelLimit
	}

	var cancel context.CancelFunc
	if s.opts.SolveTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.opts.SolveTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	args := append(append([]string{}, s.opts.Args...),
		fmt.Sprintf("--models=%d", modelLimit), "--verbose=0", "-")
	cmd := exec.CommandContext(ctx, s.opts.Path, args...)
	cmd.Stdin = strings.NewReader(strings.Join(program, "\n") + "\n")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}

	stream := &modelStream{
		models: make(chan interfaces.RawModel, modelLimit),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go s.pump(ctx, cmd, stdout, &stderr, stream, modelLimit, uuid.New().String())

	return stream, nil
}

// pump parses clingo text output into raw models and settles the stream's
// terminal state once the process exits
func (s *ProcessSolver) pump(ctx context.Context, cmd *exec.Cmd, stdout io.Reader, stderr *bytes.Buffer, stream *modelStream, modelLimit int, sessionID string) {
	start := time.Now()
	count := 0
	sawResult := false
	expectModel := false

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if expectModel {
			expectModel = false
			count++
			select {
			case stream.models <- splitAtoms(line):
			case <-ctx.Done():
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Answer:"):
			expectModel = true
		case trimmed == "SATISFIABLE" || trimmed == "UNSATISFIABLE" || trimmed == "UNKNOWN":
			sawResult = true
		}
	}

	werr := cmd.Wait()

	var terminal error
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		terminal = ErrTimeout
	case ctx.Err() == context.Canceled:
		// Caller abandoned the stream; not an error.
	case werr != nil && !isSolverExit(werr):
		terminal = fmt.Errorf("%w: %v (stderr: %s)", ErrSolverFailure, werr, strings.TrimSpace(stderr.String()))
	case scanner.Err() != nil:
		terminal = fmt.Errorf("%w: %v", ErrMalformedOutput, scanner.Err())
	case !sawResult && count == 0:
		terminal = fmt.Errorf("%w: no result line found", ErrMalformedOutput)
	}

	stream.settle(terminal)

	if s.opts.Logger != nil && terminal == nil {
		s.opts.Logger.LogSolve(sessionID, count, modelLimit, time.Since(start))
	}
}

// modelStream implements interfaces.ModelStream over a running solver
// process
type modelStream struct {
	models chan interfaces.RawModel
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// Next returns the next model, or false once the stream is settled
func (m *modelStream) Next() (interfaces.RawModel, bool) {
	model, ok := <-m.models
	return model, ok
}

// Err reports the terminal error; valid after Next has returned false
func (m *modelStream) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Close abandons the enumeration and releases the solver process.
// Safe to call at any point, any number of times.
func (m *modelStream) Close() error {
	m.closeOnce.Do(func() {
		m.cancel()
		for range m.models {
			// drain so the pump can finish
		}
		<-m.done
	})
	return nil
}

// settle records the terminal state and closes the stream; called exactly
// once by the pump
func (m *modelStream) settle(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
	close(m.models)
	close(m.done)
}

// splitAtoms splits one model line into ground literals, honoring quoted
// strings and nested terms so atoms like data("a b",f,0) stay intact
func splitAtoms(line string) interfaces.RawModel {
	var atoms []string
	var current strings.Builder
	depth := 0
	inQuote := false
	escaped := false

	for _, r := range line {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inQuote {
				escaped = true
			}
			current.WriteRune(r)
		case '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case '(':
			if !inQuote {
				depth++
			}
			current.WriteRune(r)
		case ')':
			if !inQuote {
				depth--
			}
			current.WriteRune(r)
		case ' ':
			if inQuote || depth > 0 {
				current.WriteRune(r)
			} else if current.Len() > 0 {
				atoms = append(atoms, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		atoms = append(atoms, current.String())
	}
	return atoms
}
