// SPDX-License-Identifier: MIT
// Package strategy: sentinel error set.
// Every message is prefixed with "strategy: ..." and callers match with errors.Is.

package strategy

import "errors"

var (
	// ErrNilComposer indicates that a strategy was built without a composer.
	ErrNilComposer = errors.New("strategy: composer is nil")

	// ErrBadIterations indicates a negative burn-in or a non-positive run length.
	ErrBadIterations = errors.New("strategy: iteration counts must be >= 0 for burn-in and > 0 for runs")

	// ErrBadAttempts indicates a non-positive NSemTry, NInitPerClass or NbTrialInInit.
	ErrBadAttempts = errors.New("strategy: attempt counts must be > 0")

	// ErrBadStableCriterion indicates a ratio outside [0, 1) or a negative count.
	ErrBadStableCriterion = errors.New("strategy: stable criterion ratio must be in [0, 1) and count >= 0")

	// ErrNoTrial indicates that BestOf was asked for zero trials.
	ErrNoTrial = errors.New("strategy: at least one trial is required")
)
