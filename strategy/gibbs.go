// SPDX-License-Identifier: MIT

package strategy

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmixt/composer"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/mixture"
)

// GibbsStrategy samples the latent labels and the missing values of a
// composer whose parameters are fixed.
type GibbsStrategy struct {
	c    *composer.Composer
	mode mixture.RunMode
	opts Options
	log  *zap.Logger
}

// NewGibbsStrategy validates the options and returns a GibbsStrategy for c.
// In Prediction, classes are allowed to be empty.
func NewGibbsStrategy(c *composer.Composer, mode mixture.RunMode, opts ...Option) (*GibbsStrategy, error) {
	if c == nil {
		return nil, ErrNilComposer
	}
	o := Apply(opts...)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	return &GibbsStrategy{c: c, mode: mode, opts: o, log: o.Logger}, nil
}

// Run starts a chain from the observed posteriors, discards the burn-in
// sweeps and records the following ones.
func (g *GibbsStrategy) Run() diag.Log {
	log := g.c.InitializeLatent()
	if log.Empty() && g.mode == mixture.Learning {
		log = g.c.CheckSampleCondition()
	}
	if !log.Empty() {
		g.log.Info("gibbs initialisation failed", zap.String("reason", log.String()))
		return log
	}

	nbInd := g.c.NbInd()
	for it := 0; it < g.opts.NbGibbsBurnInIter; it++ {
		for i := 0; i < nbInd; i++ {
			g.c.EStepInd(i)
			g.c.SStepInd(i)
		}
	}
	g.log.Debug("gibbs burn-in done", zap.Int("sweeps", g.opts.NbGibbsBurnInIter))

	iterMax := g.opts.NbGibbsIter - 1
	for it := 0; it <= iterMax; it++ {
		for i := 0; i < nbInd; i++ {
			g.c.EStepInd(i)
			g.c.SStepInd(i)
			g.c.StoreGibbsRun(i, it, iterMax)
		}
	}
	g.log.Debug("gibbs run done", zap.Int("sweeps", g.opts.NbGibbsIter))

	return log
}
