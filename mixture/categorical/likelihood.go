// SPDX-License-Identifier: MIT

package categorical

import (
	"math"

	"github.com/katalvlaran/lvmixt/augdata"
)

// Likelihood evaluates categorical log-probabilities.
type Likelihood struct {
	aug   *augdata.AugmentedData[int]
	model *Model
}

// NewLikelihood returns a Likelihood for aug and model.
func NewLikelihood(aug *augdata.AugmentedData[int], model *Model) *Likelihood {
	return &Likelihood{aug: aug, model: model}
}

// LnCompletedProbability is log P(Data[i] | k) with the current imputation.
func (l *Likelihood) LnCompletedProbability(i, k int) float64 {
	return math.Log(l.model.ClassParam(k)[l.aug.Data[i]])
}

// LnObservedProbability marginalises over the unobserved part:
// 0 for a completely missing value, log of the candidate mass for a list.
func (l *Likelihood) LnObservedProbability(i, k int) float64 {
	mv := l.aug.MisData[i]
	block := l.model.ClassParam(k)
	switch mv.Type {
	case augdata.Present:
		return math.Log(block[l.aug.Data[i]])
	case augdata.MissingFiniteValues:
		var sum float64
		for _, m := range mv.Values {
			sum += block[m]
		}

		return math.Log(sum)
	default:
		return 0
	}
}
