// SPDX-License-Identifier: MIT

// Package strategy drives a composer through the stochastic EM algorithm
// and the Gibbs sampler.
//
// SemStrategy (learning):
//
//  1. up to NSemTry initialisation attempts: model-free imputation and
//     uniform labels, class population check, parameter initialisation on
//     a sub-partition of NInitPerClass individuals per class, observed
//     E-step and first draw of the latent values;
//  2. NbBurnInIter E-S-M cycles where only the completed likelihood is
//     logged;
//  3. NbIter E-S-M cycles recording parameters and imputations. At the last
//     iteration every parameter is replaced by its median.
//
// Each S-step is repeated up to NSemTry times until every class holds at
// least the configured minimum population. A failed S-step, sample
// condition or M-step aborts the run and its diagnostics are returned.
// When NStableCriterion > 0 a phase also stops once the partition kept
// more than RatioStableCriterion of its labels for NStableCriterion
// consecutive iterations.
//
// GibbsStrategy (learning refinement and prediction) keeps the parameters
// fixed: observed E-step, NbGibbsBurnInIter discarded sweeps, then
// NbGibbsIter sweeps whose draws feed the data statistics.
//
// BestOf runs independent trials on an errgroup.Group and keeps the one
// with the highest score, typically the observed log-likelihood.
package strategy
