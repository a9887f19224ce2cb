// SPDX-License-Identifier: MIT

package strategy

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmixt/numeric"
)

// Options configures the strategies.
//
// NbBurnInIter, NbIter           – SEM burn-in and recorded iterations.
// NbGibbsBurnInIter, NbGibbsIter – Gibbs burn-in and recorded sweeps.
// NInitPerClass                  – individuals per class used to initialise parameters.
// NSemTry                        – initialisation attempts, and S-step attempts per iteration.
// NbTrialInInit                  – independent runs compared by BestOf.
// Parallelism                    – BestOf concurrency limit, <= 0 means unlimited.
// RatioStableCriterion           – share of unchanged labels that counts as stable.
// NStableCriterion               – stable iterations that end a SEM phase early, 0 disables.
// Logger                         – progress traces; defaults to a no-op logger.
type Options struct {
	NbBurnInIter      int
	NbIter            int
	NbGibbsBurnInIter int
	NbGibbsIter       int
	NInitPerClass     int
	NSemTry           int
	NbTrialInInit     int
	Parallelism       int

	RatioStableCriterion float64
	NStableCriterion     int

	Logger *zap.Logger
}

// Option represents a functional option for configuring a strategy.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSEM sets the burn-in and recorded iterations of the SEM.
func WithSEM(nbBurnInIter, nbIter int) Option {
	return func(o *Options) {
		o.NbBurnInIter, o.NbIter = nbBurnInIter, nbIter
	}
}

// WithGibbs sets the burn-in and recorded sweeps of the Gibbs sampler.
func WithGibbs(nbBurnInIter, nbIter int) Option {
	return func(o *Options) {
		o.NbGibbsBurnInIter, o.NbGibbsIter = nbBurnInIter, nbIter
	}
}

// WithNInitPerClass sets the size of the initialisation sub-partition.
func WithNInitPerClass(n int) Option {
	return func(o *Options) {
		o.NInitPerClass = n
	}
}

// WithNSemTry sets the attempt budget of initialisation and S-steps.
func WithNSemTry(n int) Option {
	return func(o *Options) {
		o.NSemTry = n
	}
}

// WithNbTrialInInit sets the number of independent runs of BestOf.
func WithNbTrialInInit(n int) Option {
	return func(o *Options) {
		o.NbTrialInInit = n
	}
}

// WithParallelism bounds the number of concurrent BestOf trials.
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithStableCriterion ends a SEM phase once more than ratio of the labels
// stayed identical for n consecutive iterations.
func WithStableCriterion(ratio float64, n int) Option {
	return func(o *Options) {
		o.RatioStableCriterion, o.NStableCriterion = ratio, n
	}
}

// DefaultOptions returns the numeric.Default* iteration budgets, no early
// stop, unlimited parallelism and a no-op logger.
func DefaultOptions() Options {
	return Options{
		NbBurnInIter:         numeric.DefaultNbBurnInIter,
		NbIter:               numeric.DefaultNbIter,
		NbGibbsBurnInIter:    numeric.DefaultNbGibbsBurnInIter,
		NbGibbsIter:          numeric.DefaultNbGibbsIter,
		NInitPerClass:        numeric.DefaultNInitPerClass,
		NSemTry:              numeric.DefaultNSemTry,
		NbTrialInInit:        numeric.DefaultNbTrialInInit,
		RatioStableCriterion: 0.99,
		Logger:               zap.NewNop(),
	}
}

// Apply returns DefaultOptions modified by opts.
func Apply(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Validate checks the budgets.
func (o Options) Validate() error {
	if o.NbBurnInIter < 0 || o.NbGibbsBurnInIter < 0 || o.NbIter <= 0 || o.NbGibbsIter <= 0 {
		return ErrBadIterations
	}
	if o.NInitPerClass <= 0 || o.NSemTry <= 0 || o.NbTrialInInit <= 0 {
		return ErrBadAttempts
	}
	if o.RatioStableCriterion < 0 || o.RatioStableCriterion >= 1 || o.NStableCriterion < 0 {
		return ErrBadStableCriterion
	}

	return nil
}
