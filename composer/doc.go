// SPDX-License-Identifier: MIT

// Package composer owns the latent class structure of a mixture run and
// orchestrates the per-variable mixtures registered with it.
//
// A Composer holds, for N individuals and K classes:
//
//   - zi:   the class label of every individual (AugmentedData[int], values
//     in [0, K-1]; Present when the user supplied the label);
//   - tik:  the N×K matrix of class posteriors, rows summing to one;
//   - prop: the K mixing proportions, summing to one.
//
// The steps of the stochastic EM algorithm are methods on the Composer:
//
//	S-step   SStep, SStepInd, SStepNbAttempts  draw zi from tik, then the
//	                                           unobserved values of every variable
//	E-step   EStep, EStepInd                   recompute tik from prop and the
//	                                           completed log-probabilities
//	P-step   PStep                             prop from the label counts
//	M-step   MStep                             P-step, then every mixture's M-step
//	MAP      MapStep, MapStepInd               zi = argmax tik (lowest k on ties)
//
// Statistical problems (an emptied class, a zero density individual, a
// degenerate estimate) are reported through diag.Log values and never
// through panics or errors; errors are reserved for construction mistakes.
//
// The package also exposes the model-selection criteria BIC and ICL and the
// diagnostic matrices IDClass, Delta and LnProbaGivenClass computed from a
// fitted composer.
package composer
