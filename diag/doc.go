// SPDX-License-Identifier: MIT

// Package diag implements structured run diagnostics.
//
// Statistical problems (unsupported missingness, a parse failure, an empty
// class, a zero density) are not Go errors: the engine keeps going until the
// next phase boundary and only then decides whether to stop. A Log collects
// those findings as (Kind, Message) pairs; the caller gates on Log.Empty().
//
//	var log diag.Log
//	log.Addf(diag.InputValidation, "Variable: %s has 0 samples.", id)
//	if !log.Empty() {
//		return log
//	}
//
// Messages are kept verbatim. Log.String concatenates them without any
// separator so that callers reproduce the exact legacy text, and Log.Err
// folds them into a single error for code that prefers the error interface.
package diag
