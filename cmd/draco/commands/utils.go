/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Draco guide commands. Provides common
configuration loading, logging setup, and pipeline configuration assembly used
across all command implementations.
*/

package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
	"github.com/evcruz3/draco-guide/pkg/logging"
	"github.com/evcruz3/draco-guide/pkg/pipeline"
	"github.com/evcruz3/draco-guide/pkg/schema"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("DRACO_GUIDE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the shared logger from the logging flags
func SetupLogging() (*logging.Logger, error) {
	format := logging.LogFormatText
	if viper.GetBool("json_logs") {
		format = logging.LogFormatJSON
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    format,
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  10,
		Timestamp: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// createPipelineConfig assembles a pipeline configuration from viper
func createPipelineConfig() *interfaces.PipelineConfig {
	config := pipeline.DefaultConfig()

	if path := viper.GetString("solver_path"); path != "" {
		config.SolverPath = path
	}
	config.SolverArgs = viper.GetStringSlice("solver_args")

	if limit := viper.GetInt("model_limit"); limit > 0 {
		config.ModelLimit = limit
	}
	if d := viper.GetDuration("solve_timeout"); d > 0 {
		config.SolveTimeout = d
	}
	if d := viper.GetDuration("probe_timeout"); d > 0 {
		config.ProbeTimeout = d
	}
	if threshold := viper.GetInt("ordinal_threshold"); threshold > 0 {
		config.OrdinalCardinalityThreshold = threshold
	}
	if policy := viper.GetString("fallback"); policy != "" {
		config.FallbackPolicy = policy
	}
	if selection := viper.GetString("selection"); selection != "" {
		config.Selection = selection
	}
	config.LogLevel = viper.GetString("log_level")
	config.JSONLogs = viper.GetBool("json_logs")

	return config
}

// newInferencer builds a schema inferencer from the profiling flags
func newInferencer() *schema.Inferencer {
	return schema.NewInferencer(viper.GetInt("ordinal_threshold"), nil)
}
