// Package lvmixt is an in-memory engine for model-based clustering of
// mixed-type data with missing values.
//
// What is in the box?
//
//	• Augmented data: every value is present, missing, one of a finite
//	  set, or bounded by an interval, and the engine imputes what is unknown
//	• Mixture models: categorical (Categorical_pjk), Poisson (Poisson_k)
//	  and Gaussian (Gaussian_sjk) variables behind one contract
//	• Composer: E, S, M, P and MAP steps over the latent classes and every
//	  variable, with observed and completed likelihoods, BIC and ICL
//	• Strategies: stochastic EM with burn-in and median estimates, Gibbs
//	  sampling for imputation and prediction, best-of-N parallel restarts
//	• Diagnostics: confidence intervals on parameters, IDClass, Delta and
//	  lnProbaGivenClass matrices, and a structured warning log
//
// Packages:
//
//	augdata/    values with missingness descriptors, parser, model-free imputation
//	statistic/  categorical draws and truncated Normal / Poisson samplers
//	confint/    parameter chains, medians and confidence intervals
//	mixture/    the Mixture contract, Bridge, and the categorical, poisson
//	             and gaussian models
//	composer/   latent classes and the step operations
//	strategy/   SEM, Gibbs, BestOf
//	jsonio/     JSON requests and responses
//	run/        complete learn / predict runs with phase gates
//	cmd/lvmixt  command line interface
//
// Quick example, two variables and three individuals:
//
//	{"id": "colour", "model": "Categorical_pjk", "data": ["1", "?", "{1 2}"]}
//	{"id": "visits", "model": "Poisson_k",       "data": ["3", "[2:5]", "0"]}
//
//	go install github.com/katalvlaran/lvmixt/cmd/lvmixt@latest
package lvmixt
