// Package trainer fits the classifier from a labeled corpus: deterministic
// train/test split, forest training, held-out evaluation and artifact
// persistence, plus the startup bootstrap with its degraded fallback.
package trainer

import (
	"math/rand"

	"github.com/Debottam1234567890/Scam-Detector/internal/dataset"
	"github.com/Debottam1234567890/Scam-Detector/internal/forest"
)

// TestFraction is the held-out share of the corpus used for the diagnostic
// classification report.
const TestFraction = 0.2

// ClassMetrics are the per-class entries of the classification report.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is diagnostic output only; nothing downstream consumes it
// programmatically.
type Report struct {
	Accuracy  float64         `json:"accuracy"`
	Classes   [2]ClassMetrics `json:"classes"`
	TrainSize int             `json:"train_size"`
	TestSize  int             `json:"test_size"`
}

// Split partitions examples deterministically: a seeded shuffle of a copy,
// then the last testFrac share becomes the test set. Repeated calls with the
// same input produce bit-for-bit identical partitions.
func Split(examples []dataset.Example, testFrac float64, seed int64) (train, test []dataset.Example) {
	shuffled := make([]dataset.Example, len(examples))
	copy(shuffled, examples)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := len(shuffled) - int(float64(len(shuffled))*testFrac)
	return shuffled[:cut], shuffled[cut:]
}

// Train fits a forest on the 80% partition and evaluates on the held-out
// 20%. With a corpus too small to split, everything trains and the report
// is empty.
func Train(examples []dataset.Example, opts forest.Options) (*forest.Forest, Report, error) {
	opts = normalize(opts)
	train, test := Split(examples, TestFraction, opts.Seed)
	if len(train) == 0 {
		train, test = examples, nil
	}

	X := make([][]float64, len(train))
	y := make([]int, len(train))
	for i, ex := range train {
		X[i] = ex.Features.Slice()
		y[i] = ex.Label
	}

	model, err := forest.Train(X, y, opts)
	if err != nil {
		return nil, Report{}, err
	}

	report := evaluate(model, test)
	report.TrainSize = len(train)
	return model, report, nil
}

func normalize(opts forest.Options) forest.Options {
	if opts.Trees <= 0 {
		opts.Trees = forest.DefaultTrees
	}
	if opts.Seed == 0 {
		opts.Seed = forest.DefaultSeed
	}
	return opts
}

// evaluate computes per-class precision/recall/F1 and accuracy on the test
// partition.
func evaluate(model *forest.Forest, test []dataset.Example) Report {
	var r Report
	r.TestSize = len(test)
	if len(test) == 0 {
		return r
	}

	// confusion[actual][predicted]
	var confusion [2][2]int
	correct := 0
	for _, ex := range test {
		pred, err := model.Predict(ex.Features.Slice())
		if err != nil {
			continue
		}
		confusion[ex.Label][pred]++
		if pred == ex.Label {
			correct++
		}
	}
	r.Accuracy = float64(correct) / float64(len(test))

	for c := 0; c < 2; c++ {
		tp := confusion[c][c]
		fp := confusion[1-c][c]
		fn := confusion[c][1-c]

		m := ClassMetrics{Support: confusion[c][0] + confusion[c][1]}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes[c] = m
	}
	return r
}
