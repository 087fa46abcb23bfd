// The labeler derives binary scam labels for a factor-annotated dataset: it
// sums the 10 factor columns of every row and labels the row 1 when the sum
// reaches the threshold. Malformed rows are reported and labeled 0 so the
// output always has one row per input row.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/Debottam1234567890/Scam-Detector/internal/dataset"
)

func main() {
	input := flag.String("in", "dataset.csv", "input CSV with the 10 factor columns")
	output := flag.String("out", "labeled_dataset.csv", "output CSV with the appended Label column")
	threshold := flag.Float64("threshold", dataset.DefaultThreshold, "scam-score cutoff (label 1 when sum >= threshold)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	header, records, err := dataset.ReadCSV(*input)
	if err != nil {
		log.WithError(err).Fatalf("Failed to read %s", *input)
	}
	log.Infof("Loaded %d rows from %s", len(records), *input)

	labeled, err := dataset.LabelRecords(header, records, *threshold)
	if err != nil {
		log.WithError(err).Fatal("Failed to label dataset")
	}

	scams := 0
	for _, rec := range labeled {
		if rec.Problem != "" {
			log.WithField("problem", rec.Problem).Warn("Malformed row labeled 0")
		}
		if rec.Label == 1 {
			scams++
		}
	}

	if err := dataset.WriteLabeled(*output, header, labeled); err != nil {
		log.WithError(err).Fatalf("Failed to write %s", *output)
	}

	log.Infof("Labeled dataset saved as %s (%d scam, %d benign, threshold %.1f)",
		*output, scams, len(labeled)-scams, *threshold)
}
