// SPDX-License-Identifier: MIT

// Package gaussian implements the Gaussian_sjk mixture component: within
// class k the variable is N(mean_k, sd_k²). Parameters are stored as
// (mean_0, sd_0, mean_1, sd_1, ...).
//
// Every missingness tag except finite lists is supported; intervals and
// semi-intervals are imputed from the truncated class law.
package gaussian
