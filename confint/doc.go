// SPDX-License-Identifier: MIT

// Package confint summarises Monte-Carlo chains with a median and a
// central confidence interval.
//
// ParamStat follows the parameter vector of a model over the recorded SEM
// iterations. At the last iteration each coefficient's chain is sorted and
// the median, the low quantile (index α·iterMax) and the high quantile
// (index (1−α)·iterMax + 1, capped) are kept, with α = (1 − level)/2. The
// median then becomes the point estimate used by the Gibbs phase.
//
// QuantileStat does the same for the imputed values of partially observed
// individuals.
package confint
