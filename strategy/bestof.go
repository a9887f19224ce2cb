// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvmixt/diag"
)

// Trial is the outcome of one independent run.
type Trial[T any] struct {
	Value T
	Score float64
	Log   diag.Log
}

// TrialFunc runs trial number n. It must not share mutable state with
// other trials.
type TrialFunc[T any] func(ctx context.Context, n int) Trial[T]

// BestOf runs n trials, at most limit at a time (limit <= 0 means no
// limit), and returns the index of the successful trial with the highest
// score, lowest index on ties. A trial succeeds when its log is empty and
// its score is not NaN.
//
// When no trial succeeds best is -1 and the diagnostics are in trials.
// A cancelled ctx stops the trials that did not start and is reported
// as err.
func BestOf[T any](ctx context.Context, n, limit int, run TrialFunc[T]) (best int, trials []Trial[T], err error) {
	if n <= 0 {
		return -1, nil, ErrNoTrial
	}

	trials = make([]Trial[T], n)
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for t := 0; t < n; t++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			trials[t] = run(gctx, t)

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return -1, trials, err
	}

	best = -1
	bestScore := math.Inf(-1)
	for t, tr := range trials {
		if !tr.Log.Empty() || math.IsNaN(tr.Score) {
			continue
		}
		if best < 0 || tr.Score > bestScore {
			best, bestScore = t, tr.Score
		}
	}

	return best, trials, nil
}
