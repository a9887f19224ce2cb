// SPDX-License-Identifier: MIT

package composer

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmixt/numeric"
	"github.com/katalvlaran/lvmixt/statistic"
)

// Options configures a Composer.
//
// Logger          – receives Debug traces of sampling failures; defaults to a no-op logger.
// Rand            – source of the class sampler and of the initial sub-partitions.
//
//	nil means a randomly seeded PCG generator.
//
// Drawer          – categorical draw used by the class sampler; nil means a
//
//	statistic.Multinomial reading from Rand.
//
// ConfidenceLevel – level of the intervals on the proportions, in (0, 1].
// MinIndPerClass  – population every class must reach after an S-step.
type Options struct {
	Logger          *zap.Logger
	Rand            *rand.Rand
	Drawer          statistic.Drawer
	ConfidenceLevel float64
	MinIndPerClass  int
}

// Option represents a functional option for configuring a Composer.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRand sets the random generator shared by the class sampler and the
// initialisation.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithSeed is WithRand(statistic.NewRand(seed)).
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Rand = statistic.NewRand(seed)
	}
}

// WithDrawer replaces the categorical draw of the class sampler.
// Tests use statistic.Constant to force a label.
func WithDrawer(d statistic.Drawer) Option {
	return func(o *Options) {
		o.Drawer = d
	}
}

// WithConfidenceLevel sets the level of the intervals on the proportions.
func WithConfidenceLevel(level float64) Option {
	return func(o *Options) {
		o.ConfidenceLevel = level
	}
}

// WithMinIndPerClass sets the population every class must reach in
// SStepNbAttempts.
func WithMinIndPerClass(n int) Option {
	return func(o *Options) {
		o.MinIndPerClass = n
	}
}

// DefaultOptions returns the defaults:
//   - Logger:          zap.NewNop()
//   - Rand, Drawer:    nil (resolved by New)
//   - ConfidenceLevel: numeric.DefaultConfidenceLevel
//   - MinIndPerClass:  numeric.DefaultMinIndPerClass
func DefaultOptions() Options {
	return Options{
		Logger:          zap.NewNop(),
		ConfidenceLevel: numeric.DefaultConfidenceLevel,
		MinIndPerClass:  numeric.DefaultMinIndPerClass,
	}
}

// Validate checks the numeric fields.
func (o Options) Validate() error {
	if !(o.ConfidenceLevel > 0 && o.ConfidenceLevel <= 1) {
		return ErrBadConfidenceLevel
	}
	if o.MinIndPerClass < 0 {
		return ErrBadMinIndPerClass
	}

	return nil
}
