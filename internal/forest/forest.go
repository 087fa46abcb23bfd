// Package forest implements a random-forest binary classifier: an ensemble
// of CART decision trees fit on bootstrap samples with per-split feature
// subsampling. Training is deterministic for a given seed, and a fitted
// forest is immutable, so concurrent Predict calls need no locking.
package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Options control training. Zero values take the defaults below.
type Options struct {
	Trees           int   // number of trees, default 100
	Seed            int64 // RNG seed, default 42
	MaxDepth        int   // 0 means unlimited
	MinSamplesSplit int   // default 2
}

const (
	DefaultTrees = 100
	DefaultSeed  = 42
)

func (o Options) withDefaults() Options {
	if o.Trees <= 0 {
		o.Trees = DefaultTrees
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MinSamplesSplit < 2 {
		o.MinSamplesSplit = 2
	}
	return o
}

// Node is one decision-tree node in flattened form. Leaf nodes carry the
// predicted class; internal nodes route x[Feature] <= Threshold to Left.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Class     int     `json:"c"`
	Leaf      bool    `json:"leaf"`
}

// Tree is a single fitted decision tree.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is the fitted model artifact. It is never mutated after training;
// retraining produces a new Forest.
type Forest struct {
	Trees       []Tree  `json:"trees"`
	NumFeatures int     `json:"num_features"`
	NumClasses  int     `json:"num_classes"`
	Seed        int64   `json:"seed"`
	Options     Options `json:"options"`
}

var (
	// ErrNoData is returned when training is attempted on an empty corpus.
	ErrNoData = errors.New("forest: no training data")
	// ErrDimension is returned when an input vector has the wrong length.
	ErrDimension = errors.New("forest: feature dimension mismatch")
)

// Train fits a forest on the given matrix. All rows must share one length,
// and labels must be in {0,1}.
func Train(X [][]float64, y []int, opts Options) (*Forest, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, ErrNoData
	}
	width := len(X[0])
	for _, row := range X {
		if len(row) != width {
			return nil, ErrDimension
		}
	}
	for _, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("forest: label %d out of range", label)
		}
	}

	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))
	mtry := int(math.Sqrt(float64(width)))
	if mtry < 1 {
		mtry = 1
	}

	f := &Forest{
		Trees:       make([]Tree, opts.Trees),
		NumFeatures: width,
		NumClasses:  2,
		Seed:        opts.Seed,
		Options:     opts,
	}

	for t := range f.Trees {
		// Bootstrap sample with replacement.
		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.Intn(len(X))
		}
		b := &builder{
			X:    X,
			y:    y,
			opts: opts,
			mtry: mtry,
			rng:  rng,
		}
		b.grow(sample, 0)
		f.Trees[t] = Tree{Nodes: b.nodes}
	}
	return f, nil
}

// Predict returns the majority-vote class for x.
func (f *Forest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return best, nil
}

// PredictProba returns the per-class probability distribution: the fraction
// of trees voting for each class.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.NumFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), f.NumFeatures)
	}
	if len(f.Trees) == 0 {
		return nil, ErrNoData
	}

	votes := make([]float64, f.NumClasses)
	for i := range f.Trees {
		votes[f.Trees[i].classify(x)]++
	}
	for c := range votes {
		votes[c] /= float64(len(f.Trees))
	}
	return votes, nil
}

func (t *Tree) classify(x []float64) int {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Class
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// builder accumulates the flattened node slice of one tree during growth.
type builder struct {
	X    [][]float64
	y    []int
	opts Options
	mtry int
	rng  *rand.Rand

	nodes []Node
}

// grow builds the subtree for the given sample indices and returns the index
// of its root node.
func (b *builder) grow(sample []int, depth int) int {
	counts := b.classCounts(sample)
	majority := 0
	if counts[1] > counts[0] {
		majority = 1
	}

	pure := counts[0] == 0 || counts[1] == 0
	depthLimited := b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth
	if pure || depthLimited || len(sample) < b.opts.MinSamplesSplit {
		return b.leaf(majority)
	}

	feature, threshold, ok := b.bestSplit(sample, counts)
	if !ok {
		return b.leaf(majority)
	}

	var left, right []int
	for _, i := range sample {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(majority)
	}

	// Reserve the node slot before recursing so children land after it.
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold})
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[idx].Left = l
	b.nodes[idx].Right = r
	return idx
}

func (b *builder) leaf(class int) int {
	b.nodes = append(b.nodes, Node{Leaf: true, Class: class})
	return len(b.nodes) - 1
}

func (b *builder) classCounts(sample []int) [2]int {
	var counts [2]int
	for _, i := range sample {
		counts[b.y[i]]++
	}
	return counts
}

// bestSplit searches mtry randomly chosen features for the threshold with
// the lowest weighted Gini impurity. Candidate thresholds are midpoints
// between consecutive distinct feature values in the sample.
func (b *builder) bestSplit(sample []int, counts [2]int) (feature int, threshold float64, ok bool) {
	parent := gini(counts, len(sample))
	bestImpurity := parent

	width := len(b.X[0])
	candidates := b.rng.Perm(width)[:b.mtry]

	values := make([]float64, 0, len(sample))
	for _, feat := range candidates {
		values = values[:0]
		for _, i := range sample {
			values = append(values, b.X[i][feat])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			mid := (values[v] + values[v-1]) / 2

			var lc, rc [2]int
			ln := 0
			for _, i := range sample {
				if b.X[i][feat] <= mid {
					lc[b.y[i]]++
					ln++
				} else {
					rc[b.y[i]]++
				}
			}
			rn := len(sample) - ln
			if ln == 0 || rn == 0 {
				continue
			}

			weighted := (float64(ln)*gini(lc, ln) + float64(rn)*gini(rc, rn)) / float64(len(sample))
			if weighted < bestImpurity {
				bestImpurity = weighted
				feature = feat
				threshold = mid
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func gini(counts [2]int, n int) float64 {
	if n == 0 {
		return 0
	}
	p0 := float64(counts[0]) / float64(n)
	p1 := float64(counts[1]) / float64(n)
	return 1 - p0*p0 - p1*p1
}
