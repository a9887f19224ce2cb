// SPDX-License-Identifier: MIT

package categorical

import (
	"math/rand/v2"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/statistic"
)

// Option configures a categorical mixture.
type Option func(*Model)

// WithStrictSampleCondition enables the per-class modality check.
func WithStrictSampleCondition() Option {
	return func(m *Model) { m.strict = true }
}

// New assembles a Categorical_pjk mixture for variable idName.
func New(idName string, nbClass int, confidenceLevel float64, drawer statistic.Drawer, rng *rand.Rand, opts ...Option) *mixture.Bridge[int] {
	aug := augdata.New[int](0)
	model := NewModel(nbClass, aug)
	for _, opt := range opts {
		opt(model)
	}

	return mixture.NewBridge(idName, mixture.Parts[int]{
		Aug:        aug,
		Model:      model,
		Sampler:    NewSampler(aug, model, drawer),
		Likelihood: NewLikelihood(aug, model),
		DataStat:   NewDataStat(aug, confidenceLevel),
	}, confidenceLevel, rng)
}
