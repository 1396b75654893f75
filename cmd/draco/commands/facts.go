/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: facts.go
Description: Facts command implementation for the Draco guide. Encodes a dataset
into the ordered data/fieldtype fact representation and reports any lossy float
truncations.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evcruz3/draco-guide/pkg/dataset"
	"github.com/evcruz3/draco-guide/pkg/facts"
)

// RunFacts encodes a dataset and prints the resulting fact set
func RunFacts(cmd *cobra.Command, args []string) error {
	fmt.Println("🧩 Draco Guide - Fact Encoding")
	fmt.Println("==============================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	path := viper.GetString("data")
	table, err := dataset.LoadTable(path)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	inferred, err := newInferencer().FromTable(table)
	if err != nil {
		return fmt.Errorf("schema inference failed: %w", err)
	}

	fmt.Print("Schema: ")
	printSchemaSummary(inferred)
	fmt.Println()

	factSet, err := facts.NewEncoder(logger).Encode(inferred, table)
	if err != nil {
		return fmt.Errorf("fact encoding failed: %w", err)
	}

	for _, line := range factSet.Render() {
		fmt.Println(line)
	}

	if len(factSet.Truncations) > 0 {
		fmt.Printf("\n%d float value(s) truncated toward zero:\n", len(factSet.Truncations))
		for _, t := range factSet.Truncations {
			fmt.Printf("  row %d, field %s: %g -> %d\n", t.Row, t.Field, t.From, t.To)
		}
	}

	return nil
}
