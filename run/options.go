// SPDX-License-Identifier: MIT

package run

import (
	"go.uber.org/zap"
)

// Options configures a run.
//
// Logger      – progress traces; defaults to a no-op logger.
// Parallelism – concurrent learning trials, <= 0 means one per trial.
// Seed        – overrides the request seed when non-nil.
type Options struct {
	Logger      *zap.Logger
	Parallelism int
	Seed        *uint64
}

// Option represents a functional option for configuring a run.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithParallelism bounds the number of concurrent learning trials.
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithSeed fixes the seed of the run.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = &seed
	}
}

// DefaultOptions returns a no-op logger, unlimited parallelism and no seed.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}
