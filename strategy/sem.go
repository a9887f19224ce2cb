// SPDX-License-Identifier: MIT

package strategy

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmixt/composer"
	"github.com/katalvlaran/lvmixt/diag"
)

// SemStrategy estimates the parameters of a composer.
type SemStrategy struct {
	c    *composer.Composer
	opts Options
	log  *zap.Logger
}

// NewSemStrategy validates the options and returns a SemStrategy for c.
func NewSemStrategy(c *composer.Composer, opts ...Option) (*SemStrategy, error) {
	if c == nil {
		return nil, ErrNilComposer
	}
	o := Apply(opts...)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	return &SemStrategy{c: c, opts: o, log: o.Logger}, nil
}

// Run initialises the composer and runs the burn-in and recorded phases.
// An empty log means the composer holds median parameters and the data
// statistics of the recorded phase.
func (s *SemStrategy) Run() diag.Log {
	var log diag.Log
	for n := 0; n < s.opts.NSemTry; n++ {
		log = s.initialize()
		if !log.Empty() {
			s.log.Debug("sem initialisation failed", zap.Int("attempt", n), zap.String("reason", log.String()))
			continue
		}
		s.log.Debug("sem initialisation succeeded", zap.Int("attempt", n))

		if log = s.runSEM(composer.BurnIn, s.opts.NbBurnInIter); !log.Empty() {
			s.log.Info("sem burn-in aborted", zap.String("reason", log.String()))
			return log
		}
		if log = s.runSEM(composer.Run, s.opts.NbIter); !log.Empty() {
			s.log.Info("sem run aborted", zap.String("reason", log.String()))
			return log
		}

		return log
	}
	s.log.Info("sem initialisation failed on every attempt", zap.Int("attempts", s.opts.NSemTry))

	return log
}

func (s *SemStrategy) initialize() diag.Log {
	s.c.InitData()
	if log := s.c.CheckNbIndPerClass(); !log.Empty() {
		return log
	}
	if log := s.c.InitParam(s.opts.NInitPerClass); !log.Empty() {
		return log
	}
	if log := s.c.InitializeLatent(); !log.Empty() {
		return log
	}

	return s.c.CheckSampleCondition()
}

// runSEM performs nIter E-S-M cycles of phase p.
func (s *SemStrategy) runSEM(p composer.Phase, nIter int) diag.Log {
	s.c.ResetStability()
	for it := 0; it < nIter; it++ {
		s.c.EStep()
		if log := s.c.SStepNbAttempts(s.opts.NSemTry); !log.Empty() {
			return log
		}
		if log := s.c.CheckSampleCondition(); !log.Empty() {
			return log
		}
		if log := s.c.MStep(); !log.Empty() {
			return log
		}

		if s.opts.NStableCriterion > 0 && s.c.PartitionStable(s.opts.RatioStableCriterion, s.opts.NStableCriterion) {
			s.log.Debug("partition stable, phase ends early", zap.Int("phase", int(p)), zap.Int("iteration", it))
			s.c.StoreSEMRun(it, it, p)
			break
		}
		s.c.StoreSEMRun(it, nIter-1, p)
	}

	return diag.Log{}
}
