/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command implementation for the Draco guide. Verifies
that the solver binary is resolvable, the embedded knowledge base is intact,
and any configured dataset is readable.
*/

package commands

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evcruz3/draco-guide/pkg/dataset"
	"github.com/evcruz3/draco-guide/pkg/knowledge"
)

// PerformSelfCheck runs the built-in system validation checks
func PerformSelfCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Draco Guide - Self Check")
	fmt.Println("===========================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	failures := 0

	solverPath := viper.GetString("solver_path")
	if solverPath == "" {
		solverPath = "clingo"
	}
	if resolved, err := exec.LookPath(solverPath); err != nil {
		fmt.Printf("❌ Solver: %q not found in PATH\n", solverPath)
		failures++
	} else {
		fmt.Printf("✅ Solver: %s\n", resolved)
	}

	blocks := knowledge.Blocks()
	if len(blocks) == 0 {
		fmt.Println("❌ Knowledge base: no embedded constraint blocks")
		failures++
	} else {
		fmt.Printf("✅ Knowledge base: %d constraint blocks, %d soft constraints\n",
			len(blocks), len(knowledge.SoftConstraintNames()))
	}

	if dataPath := viper.GetString("data"); dataPath != "" {
		if table, err := dataset.LoadTable(dataPath); err != nil {
			fmt.Printf("❌ Dataset: %v\n", err)
			failures++
		} else {
			fmt.Printf("✅ Dataset: %s (%d rows)\n", dataPath, len(table))
		}
	}

	fmt.Println()
	if failures > 0 {
		return fmt.Errorf("self check failed: %d check(s) did not pass", failures)
	}
	fmt.Println("All checks passed.")
	return nil
}
