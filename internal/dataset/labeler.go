// Package dataset implements the offline training-data pipeline: labeling a
// factor-annotated CSV with the threshold rule, and loading a labeled corpus
// into (feature vector, label) examples for the trainer.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Debottam1234567890/Scam-Detector/internal/features"
)

// DefaultThreshold is the cutoff applied to the sum of the 10 factor-column
// scores when deriving a binary label. Whether 3.0 is deliberate calibration
// or a placeholder is unknown; it is exposed here as a named tunable rather
// than buried in the labeling loop.
const DefaultThreshold = 3.0

// LabeledRecord is one input row plus the derived label and, when the row
// was malformed, a note describing what went wrong. Malformed rows still get
// a label (0) so that every input row yields exactly one output row.
type LabeledRecord struct {
	Fields  []string
	Label   int
	Problem string
}

// coerceInvalidNumericToZero parses a factor cell as a non-negative decimal
// number, treating anything unparseable (or negative) as 0.0. This silent
// coercion is a deliberate, preserved policy: it affects the label
// distribution of the produced dataset and is pinned by tests.
func coerceInvalidNumericToZero(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FactorIndices resolves the positions of the 10 factor columns in a CSV
// header. Column order in the file is arbitrary; vector order is not.
func FactorIndices(header []string) ([features.NumCategories]int, error) {
	var idx [features.NumCategories]int
	cols := features.Columns()
	for i, want := range cols {
		idx[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				idx[i] = j
				break
			}
		}
		if idx[i] == -1 {
			return idx, fmt.Errorf("dataset: factor column %q not found in header", want)
		}
	}
	return idx, nil
}

// LabelRecords derives a binary label for every record: 1 when the sum of
// the factor columns is >= threshold, else 0. Processing is total over the
// input: a record too short to index is labeled 0 with a Problem note
// instead of aborting the batch, and output order matches input order.
func LabelRecords(header []string, records [][]string, threshold float64) ([]LabeledRecord, error) {
	idx, err := FactorIndices(header)
	if err != nil {
		return nil, err
	}

	out := make([]LabeledRecord, 0, len(records))
	for _, rec := range records {
		lr := LabeledRecord{Fields: rec}

		total := 0.0
		for _, col := range idx {
			if col >= len(rec) {
				lr.Problem = fmt.Sprintf("record has %d fields, factor column %d missing", len(rec), col)
				total = 0
				break
			}
			total += coerceInvalidNumericToZero(rec[col])
		}

		if lr.Problem == "" && total >= threshold {
			lr.Label = 1
		}
		out = append(out, lr)
	}
	return out, nil
}
