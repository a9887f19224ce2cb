// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row kernels used by the E-step and the MAP-step of the mixture engine.
//
// Exposed API:
//   - LogToMulti(lnRow, out) -> lnNorm     // stable softmax of one row
//   - LogSumExp(lnRow)       -> float64    // log Σ exp(lnRow) with max-subtraction
//   - ArgMax(row)            -> int        // lowest index among maxima
//   - (*Dense).NormalizeRowsL1()           // per-row L1 normalisation in place
//
// Determinism:
//   - Fixed left-to-right traversal, no randomness.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogToMulti writes into out the probabilities proportional to exp(lnRow)
// and returns the log of the normalising constant, i.e. log Σ exp(lnRow).
//
// Implementation:
//   - Stage 1: find the maximum m of lnRow.
//   - Stage 2: out[k] = exp(lnRow[k] - m); the argmax entry is exactly 1.
//   - Stage 3: divide by the sum and return m + log(sum).
//
// If every entry is -Inf the row carries no information: out is set to the
// uniform distribution and -Inf is returned so that callers can report a
// zero density. out may alias lnRow.
//
// Complexity: O(len(lnRow)).
func LogToMulti(lnRow, out []float64) (float64, error) {
	if len(lnRow) == 0 {
		return 0, ErrEmptyRow
	}
	if len(out) != len(lnRow) {
		return 0, ErrDimensionMismatch
	}

	maxVal := floats.Max(lnRow)
	if math.IsInf(maxVal, -1) {
		u := 1.0 / float64(len(out))
		for k := range out {
			out[k] = u
		}

		return math.Inf(-1), nil
	}

	for k, v := range lnRow {
		out[k] = math.Exp(v - maxVal)
	}
	sum := floats.Sum(out)
	floats.Scale(1/sum, out)

	return maxVal + math.Log(sum), nil
}

// LogSumExp returns log Σ exp(lnRow) computed with max-subtraction.
// An all -Inf row yields -Inf.
func LogSumExp(lnRow []float64) float64 {
	if len(lnRow) == 0 {
		return math.Inf(-1)
	}
	maxVal := floats.Max(lnRow)
	if math.IsInf(maxVal, -1) {
		return maxVal
	}
	var sum float64
	for _, v := range lnRow {
		sum += math.Exp(v - maxVal)
	}

	return maxVal + math.Log(sum)
}

// ArgMax returns the index of the largest entry of row.
// Ties resolve to the lowest index.
func ArgMax(row []float64) (int, error) {
	if len(row) == 0 {
		return 0, ErrEmptyRow
	}

	return floats.MaxIdx(row), nil
}

// NormalizeRowsL1 rescales each row to sum to one.
// Rows whose sum is not strictly positive are left unchanged.
func (m *Dense) NormalizeRowsL1() {
	for i := 0; i < m.r; i++ {
		row := m.Row(i)
		if s := floats.Sum(row); s > 0 {
			floats.Scale(1/s, row)
		}
	}
}
