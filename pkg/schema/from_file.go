/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: from_file.go
Description: File-based schema inference. Loads a CSV or JSON dataset and runs
the same inference as FromTable, so file-based and in-memory analysis always
agree.
*/

package schema

import (
	"fmt"

	"github.com/evcruz3/draco-guide/pkg/dataset"
	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// FromFile infers a Schema from a CSV or JSON dataset file
func (in *Inferencer) FromFile(path string) (*interfaces.Schema, error) {
	table, err := dataset.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return in.FromTable(table)
}
