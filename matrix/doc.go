// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major float64 matrix used for the
// per-individual tables of the engine (class posteriors tik, per-class
// log-probabilities, diagnostic K×J matrices) together with a few row
// kernels that the E-step and MAP-step are built on.
//
// Dense stores r*c elements in one flat slice. At/Set are bounds-checked and
// return ErrIndexOutOfBounds; Row returns a live view of one row for tight
// loops that have already validated their indices.
//
// Row kernels:
//
//   - LogToMulti: turns a row of log-weights into a probability row using
//     max-subtraction, so that exp() never overflows and at least one entry
//     is exactly 1 before normalisation.
//   - ArgMax: index of the largest entry, lowest index on ties.
//   - NormalizeRowsL1: rescales each row to sum to one (zero rows untouched).
package matrix
