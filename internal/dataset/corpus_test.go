package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpus(t *testing.T) {
	path := writeFile(t, "corpus.csv",
		"message,tag\n"+
			"\"Send money now, urgent!\",scam\n"+
			"\"See you at lunch\",legit\n"+
			"\"You won the lottery, claim your prize\",SCAM\n"+
			"\"Meeting moved to 3pm\",Scam \n")

	examples, err := Load(path)
	require.NoError(t, err)
	require.Len(t, examples, 4)

	// The tag compare is case-insensitive and whitespace-tolerant.
	assert.Equal(t, 1, examples[0].Label)
	assert.Equal(t, 0, examples[1].Label)
	assert.Equal(t, 1, examples[2].Label)
	assert.Equal(t, 1, examples[3].Label)

	// Features come from the message text.
	assert.Greater(t, examples[0].Features[1], 0.0, "money request should fire")
	assert.Equal(t, 0.0, examples[1].Features.Sum())
}

func TestLoadCorpusSkipsShortRows(t *testing.T) {
	path := writeFile(t, "corpus.csv",
		"message,tag\n"+
			"orphan-message\n"+
			"\"wire the fee immediately\",scam\n")

	examples, err := Load(path)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, 1, examples[0].Label)
}

func TestLoadCorpusMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorpusEmpty(t *testing.T) {
	// A file with only a header has no usable examples.
	path := writeFile(t, "corpus.csv", "message,tag\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmpty)

	// So does a zero-byte file.
	path = writeFile(t, "empty.csv", "")
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestWriteLabeledRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "labeled.csv")

	header := []string{"message_id", "urgency"}
	records := []LabeledRecord{
		{Fields: []string{"m1", "0.5"}, Label: 1},
		{Fields: []string{"m2", "0.0"}, Label: 0},
	}
	require.NoError(t, WriteLabeled(out, header, records))

	gotHeader, gotRecords, err := ReadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"message_id", "urgency", "Label"}, gotHeader)
	require.Len(t, gotRecords, 2)
	assert.Equal(t, []string{"m1", "0.5", "1"}, gotRecords[0])
	assert.Equal(t, []string{"m2", "0.0", "0"}, gotRecords[1])
}

func TestReadCSVMissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ErrNotFound)
}
