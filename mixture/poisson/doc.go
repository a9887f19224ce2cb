// SPDX-License-Identifier: MIT

// Package poisson implements the Poisson_k mixture component: within
// class k the non-negative integer variable is Poisson(lambda_k).
//
// Supported missingness: completely missing values, finite lists, closed
// intervals and lower-bounded semi-intervals.
package poisson
