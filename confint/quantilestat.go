// SPDX-License-Identifier: MIT

package confint

import "slices"

// QuantileStat records the imputed value of individuals across iterations.
type QuantileStat struct {
	level float64
	chain [][]float64
	stat  []Interval
	seen  []bool
}

// NewQuantileStat returns a QuantileStat for n individuals.
func NewQuantileStat(n int, level float64) *QuantileStat {
	return &QuantileStat{
		level: level,
		chain: make([][]float64, n),
		stat:  make([]Interval, n),
		seen:  make([]bool, n),
	}
}

// Sample records v for individual i. Iteration 0 resets the chain and the
// statistic is computed at iterationMax. It returns true when the
// statistic of i has just been completed.
func (q *QuantileStat) Sample(i, iteration, iterationMax int, v float64) bool {
	if iteration == 0 || q.chain[i] == nil {
		q.chain[i] = make([]float64, 0, iterationMax+1)
		q.seen[i] = false
	}
	q.chain[i] = append(q.chain[i], v)
	if iteration != iterationMax {
		return false
	}

	sorted := slices.Clone(q.chain[i])
	slices.Sort(sorted)
	q.stat[i] = quantiles(sorted, q.level)
	q.seen[i] = true

	return true
}

// Stat returns the summary of individual i, ok is false when no complete
// chain was recorded for it.
func (q *QuantileStat) Stat(i int) (Interval, bool) {
	return q.stat[i], q.seen[i]
}
