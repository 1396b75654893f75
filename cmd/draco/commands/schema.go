/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: schema.go
Description: Schema command implementation for the Draco guide. Profiles a
dataset file and reports the inferred semantic type and statistics of every
field.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evcruz3/draco-guide/pkg/dataset"
	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// RunSchema profiles a dataset and prints the inferred schema
func RunSchema(cmd *cobra.Command, args []string) error {
	fmt.Println("📊 Draco Guide - Schema Analysis")
	fmt.Println("================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := viper.GetString("data")
	table, err := dataset.LoadTable(path)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	inferred, err := newInferencer().FromTable(table)
	if err != nil {
		return fmt.Errorf("schema inference failed: %w", err)
	}

	fmt.Printf("Dataset: %s (%d rows, %d fields)\n\n", path, len(table), len(inferred.Fields))
	for _, field := range inferred.Fields {
		fmt.Printf("  %s: %s\n", field.Name, field.Type)
		fmt.Printf("    distinct: %d, nulls: %d", field.Stats.Distinct, field.Stats.Nulls)
		if field.Stats.HasRange {
			fmt.Printf(", min: %g, max: %g", field.Stats.Min, field.Stats.Max)
		}
		fmt.Println()
	}

	return nil
}

// printSchemaSummary renders a one-line summary of a schema
func printSchemaSummary(s *interfaces.Schema) {
	for i, field := range s.Fields {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%s:%s", field.Name, field.Type)
	}
	fmt.Println()
}
