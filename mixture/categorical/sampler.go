// SPDX-License-Identifier: MIT

package categorical

import (
	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/numeric"
	"github.com/katalvlaran/lvmixt/statistic"
)

// Sampler redraws unobserved modalities from the class probabilities.
type Sampler struct {
	aug    *augdata.AugmentedData[int]
	model  *Model
	drawer statistic.Drawer
}

// NewSampler returns a Sampler for aug and model.
func NewSampler(aug *augdata.AugmentedData[int], model *Model, drawer statistic.Drawer) *Sampler {
	return &Sampler{aug: aug, model: model, drawer: drawer}
}

// SampleIndividual draws Data[i] given class k. Present values are kept;
// candidate lists are honoured, with a uniform draw over the candidates
// when their total probability is below numeric.MinStat.
func (s *Sampler) SampleIndividual(i, k int) {
	mv := s.aug.MisData[i]
	switch mv.Type {
	case augdata.Missing:
		s.aug.Data[i] = s.drawer.Sample(s.model.ClassParam(k))
	case augdata.MissingFiniteValues:
		s.aug.Data[i] = statistic.SampleAmong(s.drawer, s.model.ClassParam(k), mv.Values, numeric.MinStat)
	}
}
