// SPDX-License-Identifier: MIT

package confint

import (
	"slices"

	"github.com/katalvlaran/lvmixt/matrix"
)

// Interval is a median with a central confidence interval.
type Interval struct {
	Median, Low, High float64
}

// quantiles summarises a sorted chain of iterMax+1 draws.
func quantiles(sorted []float64, level float64) Interval {
	iterMax := len(sorted) - 1
	alpha := (1 - level) / 2
	low := int(alpha * float64(iterMax))
	high := min(int((1-alpha)*float64(iterMax))+1, iterMax)

	return Interval{Median: sorted[iterMax/2], Low: sorted[low], High: sorted[high]}
}

// ParamStat records a parameter vector across iterations.
type ParamStat struct {
	level   float64
	nbCoeff int
	last    int           // last stored iteration
	log     *matrix.Dense // nbCoeff × (iterMax+1)
	stat    *matrix.Dense // nbCoeff × 3, or nbCoeff × 1 for imported parameters
}

// NewParamStat returns an empty ParamStat for the given confidence level.
func NewParamStat(level float64) *ParamStat {
	return &ParamStat{level: level}
}

// ConfidenceLevel returns the level the intervals are computed at.
func (s *ParamStat) ConfidenceLevel() float64 { return s.level }

// SampleParam stores param as iteration number iteration of iterationMax.
// Iteration 0 resets the storage. At iterationMax the statistics are
// computed.
func (s *ParamStat) SampleParam(iteration, iterationMax int, param []float64) {
	if iteration == 0 || s.log == nil {
		s.nbCoeff = len(param)
		s.log, _ = matrix.NewDense(max(s.nbCoeff, 1), iterationMax+1)
		s.stat = nil
	}
	for p, v := range param {
		_ = s.log.Set(p, iteration, v)
	}
	s.last = iteration
	if iteration != iterationMax {
		return
	}

	s.stat, _ = matrix.NewDense(max(s.nbCoeff, 1), 3)
	chain := make([]float64, iterationMax+1)
	for p := 0; p < s.nbCoeff; p++ {
		copy(chain, s.log.Row(p))
		slices.Sort(chain)
		q := quantiles(chain, s.level)
		_ = s.stat.SetRow(p, []float64{q.Median, q.Low, q.High})
	}
}

// SetParamStorage imports a parameter vector that was not estimated,
// as in prediction. The statistics then have a single column.
func (s *ParamStat) SetParamStorage(param []float64) {
	s.nbCoeff = len(param)
	s.log = nil
	s.stat, _ = matrix.NewDense(max(s.nbCoeff, 1), 1)
	for p, v := range param {
		_ = s.stat.Set(p, 0, v)
	}
}

// NormalizeParam rescales every statistic column so that each block of
// nModality consecutive coefficients sums to one. Blocks summing to zero
// are left alone. nModality <= 0 is a no-op.
func (s *ParamStat) NormalizeParam(nModality int) {
	if s.stat == nil || nModality <= 0 {
		return
	}
	nClass := s.nbCoeff / nModality
	for j := 0; j < s.stat.Cols(); j++ {
		col, _ := s.stat.Col(j)
		for k := 0; k < nClass; k++ {
			block := col[k*nModality : (k+1)*nModality]
			var sum float64
			for _, v := range block {
				sum += v
			}
			if sum <= 0 {
				continue
			}
			for p := range block {
				_ = s.stat.Set(k*nModality+p, j, block[p]/sum)
			}
		}
	}
}

// Expectation returns the point estimate (first statistic column),
// or nil when nothing was recorded.
func (s *ParamStat) Expectation() []float64 {
	if s.stat == nil {
		return nil
	}
	col, _ := s.stat.Col(0)

	return col[:s.nbCoeff]
}

// Stat returns the statistics matrix, nil before the last iteration.
func (s *ParamStat) Stat() *matrix.Dense { return s.stat }

// Log returns the per-iteration storage, nil for imported parameters.
func (s *ParamStat) Log() *matrix.Dense { return s.log }

// Chain returns the values of coefficient p stored so far, nil for
// imported parameters. A run that stopped before the planned
// iterationMax yields a shorter chain than Log().Cols().
func (s *ParamStat) Chain(p int) []float64 {
	if s.log == nil || p < 0 || p >= s.nbCoeff {
		return nil
	}

	return s.log.Row(p)[:s.last+1]
}

// NbCoeff returns the number of tracked coefficients.
func (s *ParamStat) NbCoeff() int { return s.nbCoeff }
