// SPDX-License-Identifier: MIT
// Package composer: sentinel error set.
// Every message is prefixed with "composer: ..." and callers match with errors.Is.

package composer

import "errors"

var (
	// ErrInvalidIndividuals indicates a non-positive number of individuals.
	ErrInvalidIndividuals = errors.New("composer: number of individuals must be > 0")

	// ErrInvalidClasses indicates a non-positive number of classes.
	ErrInvalidClasses = errors.New("composer: number of classes must be > 0")

	// ErrBadConfidenceLevel indicates a confidence level outside (0, 1].
	ErrBadConfidenceLevel = errors.New("composer: confidence level must be in (0, 1]")

	// ErrBadMinIndPerClass indicates a negative minimum class population.
	ErrBadMinIndPerClass = errors.New("composer: minimum individuals per class must be >= 0")
)
