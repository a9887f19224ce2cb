// SPDX-License-Identifier: MIT

package numeric

const (
	// MinModality is the smallest modality (and class) code accepted on input.
	MinModality = 1

	// MinIndex is the smallest individual index used in exported statistics.
	MinIndex = 1

	// Epsilon is the smallest probability treated as non-zero in entropy terms.
	Epsilon = 1e-8

	// MinStat is the smallest probability mass a restricted categorical draw
	// may have before the sampler falls back to a uniform draw.
	MinStat = 1e-30

	// DegeneracyAuthorized disables the per-class sample condition checks of
	// models whose likelihood stays bounded when a class loses a modality.
	DegeneracyAuthorized = true
)

// Strategy defaults, used when a request or config leaves a field at zero.
const (
	DefaultNbBurnInIter      = 50
	DefaultNbIter            = 50
	DefaultNbGibbsBurnInIter = 50
	DefaultNbGibbsIter       = 50
	DefaultNInitPerClass     = 10
	DefaultNSemTry           = 20
	DefaultNbTrialInInit     = 2
	DefaultConfidenceLevel   = 0.95
	DefaultMinIndPerClass    = 1
)
