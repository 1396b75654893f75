/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Draco guide pipeline. Provides
commands for dataset profiling, fact encoding, constraint solving, and
visualization spec completion, with configuration management through viper.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/evcruz3/draco-guide/cmd/draco/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "draco-guide",
		Short: "Draco Guide - Constraint-based visualization completion pipeline",
		Long: `Draco Guide converts tabular data into a declarative fact representation,
submits it together with a partial visualization specification to an external
answer set solver, and decodes the solver's output into a completed, renderable
specification.`,
		Version: "1.0.0",
	}

	// Persistent flags shared by every command
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().String("log-dir", "", "Log output directory (empty = console only)")
	rootCmd.PersistentFlags().String("solver", "clingo", "Path to the clingo binary")
	rootCmd.PersistentFlags().StringSlice("solver-args", []string{}, "Extra arguments for every solver call")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("solver_path", rootCmd.PersistentFlags().Lookup("solver"))
	viper.BindPFlag("solver_args", rootCmd.PersistentFlags().Lookup("solver-args"))

	// schema command: profile a dataset
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Infer the schema of a dataset",
		Long: `Profile a CSV or JSON dataset and report the inferred semantic type and
statistics of every field. Inference is idempotent: the same dataset always
yields the same schema.`,
		RunE: commands.RunSchema,
	}
	schemaCmd.Flags().String("data", "", "Path to dataset file (required)")
	schemaCmd.Flags().Int("ordinal-threshold", 20, "Integer fields below this cardinality are ordinal")
	schemaCmd.MarkFlagRequired("data")
	viper.BindPFlag("data", schemaCmd.Flags().Lookup("data"))
	viper.BindPFlag("ordinal_threshold", schemaCmd.Flags().Lookup("ordinal-threshold"))
	rootCmd.AddCommand(schemaCmd)

	// facts command: emit the fact encoding of a dataset
	factsCmd := &cobra.Command{
		Use:   "facts",
		Short: "Encode a dataset as ground facts",
		Long: `Convert a dataset into the ordered data/fieldtype fact representation used
by the solver. Lossy float truncations are reported alongside the facts.`,
		RunE: commands.RunFacts,
	}
	factsCmd.Flags().String("data", "", "Path to dataset file (required)")
	factsCmd.Flags().Int("ordinal-threshold", 20, "Integer fields below this cardinality are ordinal")
	factsCmd.MarkFlagRequired("data")
	viper.BindPFlag("data", factsCmd.Flags().Lookup("data"))
	viper.BindPFlag("ordinal_threshold", factsCmd.Flags().Lookup("ordinal-threshold"))
	rootCmd.AddCommand(factsCmd)

	// solve command: run a constraint program
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a constraint program",
		Long: `Check the satisfiability of an ASP program and, when satisfiable, enumerate
a bounded number of answer sets, printed as decoded predicate mappings.`,
		RunE: commands.RunSolve,
	}
	solveCmd.Flags().String("program", "", "Path to ASP program file (required)")
	solveCmd.Flags().Int("models", 1, "Maximum models to enumerate")
	solveCmd.Flags().Duration("solve-timeout", 30*time.Second, "Wall-clock bound per solve call")
	solveCmd.Flags().Duration("probe-timeout", 10*time.Second, "Wall-clock bound per probe call")
	solveCmd.MarkFlagRequired("program")
	viper.BindPFlag("program", solveCmd.Flags().Lookup("program"))
	viper.BindPFlag("model_limit", solveCmd.Flags().Lookup("models"))
	viper.BindPFlag("solve_timeout", solveCmd.Flags().Lookup("solve-timeout"))
	viper.BindPFlag("probe_timeout", solveCmd.Flags().Lookup("probe-timeout"))
	rootCmd.AddCommand(solveCmd)

	// complete command: complete a partial spec against a dataset
	completeCmd := &cobra.Command{
		Use:   "complete",
		Short: "Complete a partial visualization spec",
		Long: `Run the full completion pipeline: infer the dataset schema, encode facts,
probe satisfiability, enumerate models, and merge the solver-chosen attributes
into the partial specification. Caller-supplied fields are never overwritten.`,
		RunE: commands.RunComplete,
	}
	completeCmd.Flags().String("data", "", "Path to dataset file (required)")
	completeCmd.Flags().String("spec", "", "Path to partial spec file, JSON or YAML (required)")
	completeCmd.Flags().Int("models", 1, "Maximum models to enumerate")
	completeCmd.Flags().String("selection", "first", "Answer set selection policy (first, best)")
	completeCmd.Flags().String("fallback", "identity", "Fallback policy for zero models (identity, error)")
	completeCmd.Flags().Duration("solve-timeout", 30*time.Second, "Wall-clock bound per solve call")
	completeCmd.Flags().Duration("probe-timeout", 10*time.Second, "Wall-clock bound per probe call")
	completeCmd.Flags().Int("ordinal-threshold", 20, "Integer fields below this cardinality are ordinal")
	completeCmd.MarkFlagRequired("data")
	completeCmd.MarkFlagRequired("spec")
	viper.BindPFlag("data", completeCmd.Flags().Lookup("data"))
	viper.BindPFlag("spec", completeCmd.Flags().Lookup("spec"))
	viper.BindPFlag("model_limit", completeCmd.Flags().Lookup("models"))
	viper.BindPFlag("selection", completeCmd.Flags().Lookup("selection"))
	viper.BindPFlag("fallback", completeCmd.Flags().Lookup("fallback"))
	viper.BindPFlag("solve_timeout", completeCmd.Flags().Lookup("solve-timeout"))
	viper.BindPFlag("probe_timeout", completeCmd.Flags().Lookup("probe-timeout"))
	viper.BindPFlag("ordinal_threshold", completeCmd.Flags().Lookup("ordinal-threshold"))
	rootCmd.AddCommand(completeCmd)

	// check command: built-in self-checks
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Perform built-in self-checks for system validation",
		Long: `Verify that the solver binary is resolvable, the knowledge base is intact,
and any configured dataset is readable. Useful for CI/CD integration.`,
		RunE: commands.PerformSelfCheck,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
