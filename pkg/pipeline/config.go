/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration defaults and validation for the Draco guide pipeline.
The model limit is deliberately small by default; unbounded enumeration is
disallowed by construction.
*/

package pipeline

import (
	"fmt"
	"time"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
	"github.com/evcruz3/draco-guide/pkg/schema"
	"github.com/evcruz3/draco-guide/pkg/solver"
)

// DefaultConfig returns the recognized options with their defaults
func DefaultConfig() *interfaces.PipelineConfig {
	return &interfaces.PipelineConfig{
		SolverPath:                  solver.DefaultSolverPath,
		ModelLimit:                  1,
		SolveTimeout:                30 * time.Second,
		ProbeTimeout:                10 * time.Second,
		OrdinalCardinalityThreshold: schema.DefaultOrdinalCardinalityThreshold,
		TemporalFormats:             append([]string{}, schema.DefaultTemporalFormats...),
		FallbackPolicy:              FallbackIdentity,
		Selection:                   "first",
		LogLevel:                    "info",
	}
}

// validateConfig checks the recognized options for invalid values
func validateConfig(config *interfaces.PipelineConfig) error {
	if config.ModelLimit <= 0 {
		return fmt.Errorf("model_limit must be positive (unbounded enumeration is disallowed)")
	}
	if config.SolveTimeout < 0 || config.ProbeTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	switch config.FallbackPolicy {
	case FallbackIdentity, FallbackError, FallbackCustom:
		// ok
	default:
		return fmt.Errorf("unsupported fallback policy: %s", config.FallbackPolicy)
	}
	switch config.Selection {
	case "", "first", "best":
		// ok
	default:
		return fmt.Errorf("unsupported selection policy: %s", config.Selection)
	}
	return nil
}
