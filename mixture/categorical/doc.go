// SPDX-License-Identifier: MIT

// Package categorical implements the Categorical_pjk mixture component:
// within class k, a variable with M modalities follows a categorical law
// with probabilities param[k*M+m], m = 0..M-1.
//
// Modalities are 1-based on input and output, 0-based inside. The number
// of modalities is taken from the parameter descriptor "nModality: x"
// when given, and deduced as the largest observed code otherwise.
//
// Supported missingness: completely missing values and finite lists of
// candidate modalities.
package categorical
