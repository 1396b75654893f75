/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader.go
Description: Dataset loading for the Draco guide pipeline. Reads delimited (CSV)
and structured (JSON records) files into in-memory tables for schema inference
and fact encoding. Cell values are parsed into typed Go values; empty cells
become nulls.
*/

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// LoadTable reads a table from a CSV or JSON file, keyed by extension
func LoadTable(path string) (interfaces.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// loadCSV reads a header-first CSV file into a table
func loadCSV(path string) (interfaces.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // short rows pad with nulls
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("CSV file %s has no header row", path)
	}

	header := records[0]
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field name %q in %s", name, path)
		}
		seen[name] = struct{}{}
	}

	table := make(interfaces.Table, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(interfaces.Row, len(header))
		for i, name := range header {
			if i >= len(record) {
				row[name] = nil
				continue
			}
			row[name] = parseCell(record[i])
		}
		table = append(table, row)
	}

	return table, nil
}

// loadJSON reads an array of records into a table
func loadJSON(path string) (interfaces.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var table []map[string]interface{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse JSON records: %w", err)
	}

	out := make(interfaces.Table, len(table))
	for i, row := range table {
		out[i] = row
	}
	return out, nil
}

// parseCell converts a raw CSV cell into a typed value.
// Empty cells become nil (null); integers and floats keep their numeric
// type so that schema inference can distinguish ordinal candidates.
func parseCell(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return b
	}
	return trimmed
}
