/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: complete.go
Description: Complete command implementation for the Draco guide. Runs the full
completion pipeline over a dataset and a partial visualization spec and prints
the completed spec or the terminal failure reason.
*/

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evcruz3/draco-guide/pkg/dataset"
	"github.com/evcruz3/draco-guide/pkg/pipeline"
	"github.com/evcruz3/draco-guide/pkg/vizspec"
)

// RunComplete completes a partial visualization spec against a dataset
func RunComplete(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Draco Guide - Spec Completion")
	fmt.Println("================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	table, err := dataset.LoadTable(viper.GetString("data"))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	partial, err := vizspec.LoadFile(viper.GetString("spec"))
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	pl := pipeline.NewPipeline()
	pl.SetLogger(logger)
	if err := pl.Initialize(createPipelineConfig()); err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	result := pl.CompleteSpec(context.Background(), table, partial)

	fmt.Printf("Run %s: %s\n\n", result.RunID, result.Kind)
	switch result.Kind {
	case pipeline.KindCompleted:
		fmt.Println(result.Spec.String())
		if result.Partial {
			fmt.Printf("\nStill unset: %s\n", strings.Join(result.Missing, ", "))
		}
		if result.Fallback != "" {
			fmt.Printf("\nFallback path: %s\n", result.Fallback)
		}
		fmt.Printf("\n%d answer set(s) enumerated\n", result.Models)
		return nil
	case pipeline.KindUnsatisfiable:
		fmt.Println("No visualization satisfies the constraints for this dataset and spec.")
		return nil
	default:
		return fmt.Errorf("pipeline failed (%s): %s", result.Kind, result.Reason)
	}
}
