/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces for the Draco guide pipeline. Defines the core types
and interfaces used across all packages to break import cycles and enable proper
modular design.
*/

package interfaces

import (
	"context"
	"time"
)

// Row is a single record: field name to value
type Row = map[string]interface{}

// Table is an in-memory table of records, one row per entry
type Table []Row

// FieldType is the semantic type of a field
type FieldType string

const (
	FieldNominal      FieldType = "nominal"
	FieldOrdinal      FieldType = "ordinal"
	FieldQuantitative FieldType = "quantitative"
	FieldTemporal     FieldType = "temporal"
)

// FieldStats holds per-field statistics gathered during schema inference
type FieldStats struct {
	Distinct int     // Cardinality of non-null values
	Nulls    int     // Number of null cells
	Min      float64 // Minimum numeric value (valid when HasRange)
	Max      float64 // Maximum numeric value (valid when HasRange)
	HasRange bool    // Whether Min/Max are meaningful
}

// Field describes one column of a table
type Field struct {
	Name  string
	Type  FieldType
	Stats FieldStats
}

// Schema is the ordered, immutable result of schema inference.
// Field names are unique; the field order is the declaration order used
// everywhere downstream (fact encoding, rendering).
type Schema struct {
	Fields []Field
}

// Field returns the named field and whether it exists
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declaration-ordered field names
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// RawModel is one solver-returned model: an unordered set of ground literals
type RawModel []string

// ModelStream is a lazy, finite sequence of raw models. Consuming it
// partially must not leak the underlying solver session: Close releases
// the session and is safe to call at any point, any number of times.
type ModelStream interface {
	// Next returns the next model, or false when the stream is exhausted
	// or has failed. After false, check Err.
	Next() (RawModel, bool)

	// Err reports the terminal error of the stream, if any. Exhaustion is
	// not an error.
	Err() error

	// Close releases the underlying solver session. Idempotent.
	Close() error
}

// Solver is the capability interface over the external reasoning engine.
// Implementations own exactly one session per call; a session must not be
// shared across concurrent callers.
type Solver interface {
	// Probe performs a cheap satisfiability check without materializing
	// models. It fails closed: any external-process error is returned as
	// an error, never a panic.
	Probe(ctx context.Context, program []string) (bool, error)

	// Solve enumerates up to modelLimit models. modelLimit must be
	// positive; unbounded enumeration is disallowed.
	Solve(ctx context.Context, program []string, modelLimit int) (ModelStream, error)
}

// PipelineConfig represents the configuration for the completion pipeline
type PipelineConfig struct {
	SolverPath string   // Path to the clingo binary
	SolverArgs []string // Extra arguments passed to every solver call

	ModelLimit   int           // Max models to enumerate per solve call
	SolveTimeout time.Duration // Wall-clock bound per solve call
	ProbeTimeout time.Duration // Wall-clock bound per probe call

	OrdinalCardinalityThreshold int      // Numeric fields below this cardinality are ordinal
	TemporalFormats             []string // Date/time layouts accepted as temporal

	FallbackPolicy string // "identity", "error", or "custom"
	Selection      string // "first" or "best": answer set selection policy

	LogLevel string
	LogFile  string
	JSONLogs bool
}
