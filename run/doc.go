// SPDX-License-Identifier: MIT

// Package run executes a complete learning or prediction request.
//
// A run goes through gated phases. Each phase collects every diagnostic
// it can find, and a non-empty log stops the run before the next phase:
//
//	validation  request settings and ListData
//	reading     mixture creation and SetDataParam
//	SEM         learning only
//	Gibbs
//	export      criteria, diagnostics matrices, data and parameters
//
// A stopped run still returns a Response: its mixture section holds the
// run id, the mode and the concatenated warnLog, and the variable section
// is absent.
//
// In learning, the reading, SEM and Gibbs phases are repeated for
// NbTrialInInit independent trials (strategy.BestOf) and the trial with
// the highest observed log-likelihood is exported.
package run
