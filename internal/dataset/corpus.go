package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Debottam1234567890/Scam-Detector/internal/features"
)

// Named conditions for the training corpus file, so callers can pick an
// explicit fallback policy per condition instead of inspecting raw I/O
// errors.
var (
	// ErrNotFound means the corpus file does not exist.
	ErrNotFound = errors.New("dataset: file not found")
	// ErrUnreadable means the file exists but could not be opened or parsed.
	ErrUnreadable = errors.New("dataset: file unreadable")
	// ErrEmpty means the file parsed but holds no usable examples.
	ErrEmpty = errors.New("dataset: no examples")
)

// Example is one supervised training pair.
type Example struct {
	Features features.Vector
	Label    int
}

// ScamTag is the literal a row's tag column is compared against
// (case-insensitively) on the direct-tag path.
const ScamTag = "scam"

// Load reads a labeled corpus of [message, tag] rows, skipping the header.
// The tag is compared case-insensitively against ScamTag: a match labels the
// example 1, anything else 0. Features are extracted from the message text
// with the canonical category table.
func Load(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Header row.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var examples []Example
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if len(rec) < 2 {
			continue
		}

		label := 0
		if strings.EqualFold(strings.TrimSpace(rec[1]), ScamTag) {
			label = 1
		}
		examples = append(examples, Example{
			Features: features.Extract(rec[0]),
			Label:    label,
		})
	}

	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return examples, nil
}

// ReadCSV loads a whole CSV file, returning the header and the remaining
// records. Used by the offline labeler.
func ReadCSV(path string) (header []string, records [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return all[0], all[1:], nil
}

// WriteLabeled writes the labeled records back out as CSV, appending a
// "Label" column to the header and the derived label to every row.
func WriteLabeled(path string, header []string, records []LabeledRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append(append([]string{}, header...), "Label")); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}
	for _, rec := range records {
		row := append(append([]string{}, rec.Fields...), fmt.Sprintf("%d", rec.Label))
		if err := w.Write(row); err != nil {
			return fmt.Errorf("dataset: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
