// SPDX-License-Identifier: MIT

// Package mixture defines the contract between the composer and the
// per-variable mixture components, and the contracts of the collaborators
// that feed data in and take results out.
//
// A per-variable model is split in four parts, each replaceable:
//
//   - Model:      parameter space, validation, M-step, initialisation;
//   - Sampler:    draws the unobserved part of one individual given a class;
//   - Likelihood: completed and observed log-probabilities;
//   - DataStat:   summarises imputations over the recorded iterations.
//
// Bridge[T] assembles them into a Mixture, owns the AugmentedData[T] and
// the parameter statistics, and talks to DataHandler / ParamSetter /
// DataExtractor / ParamExtractor. The composer only ever sees Mixture.
package mixture
