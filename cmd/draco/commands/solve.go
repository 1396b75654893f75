/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: solve.go
Description: Solve command implementation for the Draco guide. Runs a standalone
constraint program through the solver, probing for satisfiability first and then
enumerating up to the requested number of answer sets.
*/

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evcruz3/draco-guide/pkg/decode"
	"github.com/evcruz3/draco-guide/pkg/facts"
	"github.com/evcruz3/draco-guide/pkg/solver"
)

// RunSolve executes a constraint program file and prints its answer sets
func RunSolve(cmd *cobra.Command, args []string) error {
	fmt.Println("⚙️  Draco Guide - Constraint Solving")
	fmt.Println("===================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	path := viper.GetString("program")
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read program file: %w", err)
	}

	program := facts.NewProgram(nil)
	program.AddBlock(string(content))

	config := createPipelineConfig()
	gateway := solver.NewProcessSolver(solver.Options{
		Path:         config.SolverPath,
		Args:         config.SolverArgs,
		ProbeTimeout: config.ProbeTimeout,
		SolveTimeout: config.SolveTimeout,
		Logger:       logger,
	})

	ctx := context.Background()
	sat, err := gateway.Probe(ctx, program.Lines())
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	if !sat {
		fmt.Println("UNSATISFIABLE")
		return nil
	}

	stream, err := gateway.Solve(ctx, program.Lines(), config.ModelLimit)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	defer stream.Close()

	count := 0
	for {
		model, ok := stream.Next()
		if !ok {
			break
		}
		set, err := decode.Decode(model)
		if err != nil {
			return fmt.Errorf("failed to decode answer set: %w", err)
		}
		count++
		fmt.Printf("Answer %d (%d atoms):\n", count, set.Atoms())
		encoded, err := json.MarshalIndent(set, "  ", "  ")
		if err != nil {
			return fmt.Errorf("failed to render answer set: %w", err)
		}
		fmt.Printf("  %s\n", encoded)
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("solver failed: %w", err)
	}

	fmt.Printf("\nSATISFIABLE (%d of at most %d answer sets shown)\n", count, config.ModelLimit)
	return nil
}
