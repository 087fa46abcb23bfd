// Package features converts raw message text into the fixed 10-dimensional
// score vector consumed by the classifier. Extraction is pure and
// deterministic; the keyword table is immutable, so Extract is safe to call
// from any number of goroutines.
package features

import (
	"math"
	"strings"
)

// Vector is an ordered sequence of exactly NumCategories scores, each in
// [0,1] and rounded to two decimal places.
type Vector [NumCategories]float64

// Extract scores a message against every category. For each category the
// score is (number of distinct keywords present as case-insensitive
// substrings) / (total keywords in the category). A keyword contributes at
// most once no matter how often it repeats in the message.
//
// Any string is a valid input, including the empty string, which yields an
// all-zero vector.
func Extract(message string) Vector {
	lower := strings.ToLower(message)

	var v Vector
	for i, cat := range Categories {
		hits := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		v[i] = round2(float64(hits) / float64(len(cat.Keywords)))
	}
	return v
}

// Sum returns the total of all category scores. Used by the offline labeler
// threshold rule.
func (v Vector) Sum() float64 {
	total := 0.0
	for _, s := range v {
		total += s
	}
	return total
}

// Slice copies the vector into a []float64 for consumers that index
// dynamically (the classifier, JSON responses).
func (v Vector) Slice() []float64 {
	out := make([]float64, NumCategories)
	copy(out, v[:])
	return out
}

// round2 rounds to two decimal places, half away from zero. Scores are
// non-negative so this matches Python's round() for every value the
// extractor can produce.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
