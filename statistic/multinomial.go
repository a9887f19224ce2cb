// SPDX-License-Identifier: MIT

package statistic

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Drawer draws an index with probability proportional to proba.
type Drawer interface {
	Sample(proba []float64) int
}

// Multinomial is the default Drawer, backed by distuv.Categorical.
type Multinomial struct {
	src rand.Source
}

// NewMultinomial returns a Multinomial reading from src.
func NewMultinomial(src rand.Source) *Multinomial {
	return &Multinomial{src: src}
}

// Sample draws an index with probability proportional to proba.
// A vector without positive mass yields a uniform draw.
func (m *Multinomial) Sample(proba []float64) int {
	if floats.Sum(proba) <= 0 {
		return rand.New(m.src).IntN(len(proba))
	}

	return int(distuv.NewCategorical(proba, m.src).Rand())
}

// SampleAmong draws one of candidates with probability proportional to
// weights[candidate]. When the restricted mass is below minMass the draw
// is uniform over candidates.
func SampleAmong(d Drawer, weights []float64, candidates []int, minMass float64) int {
	sub := make([]float64, len(candidates))
	var sum float64
	for c, m := range candidates {
		sub[c] = weights[m]
		sum += sub[c]
	}
	if sum < minMass {
		for c := range sub {
			sub[c] = 1
		}
	}

	return candidates[d.Sample(sub)]
}

// Constant is a Drawer that always returns the same index.
type Constant int

// Sample implements Drawer.
func (c Constant) Sample([]float64) int { return int(c) }
