/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Sentinel errors for the solver gateway. Every external-process
failure mode is mapped onto one of these so callers can branch without string
matching.
*/

package solver

import "errors"

var (
	// ErrTimeout marks a probe or solve call that exceeded its wall-clock bound
	ErrTimeout = errors.New("timeout")

	// ErrModelLimit marks a solve call with a non-positive model limit;
	// unbounded enumeration is disallowed
	ErrModelLimit = errors.New("model limit must be positive")

	// ErrMalformedOutput marks solver output that could not be interpreted
	ErrMalformedOutput = errors.New("malformed solver output")

	// ErrSolverFailure marks a process-level failure (spawn error,
	// unexpected exit status, killed process)
	ErrSolverFailure = errors.New("solver process failure")
)
