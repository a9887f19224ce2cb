// SPDX-License-Identifier: MIT

// Package augdata stores one variable of a data set together with its
// missingness description.
//
// An AugmentedData[T] holds, for each individual i:
//
//   - Data[i]    the observed value, or the current imputation when the
//     value is not fully observed;
//   - MisData[i] a tag (Present, Missing, MissingFiniteValues, intervals)
//     plus the auxiliary values that constrain the imputation.
//
// The tag never changes after reading: samplers only rewrite Data[i], and
// they always keep it inside the set described by MisData[i].
//
// Parser turns the raw tokens of the input format into (value, MisVal)
// pairs:
//
//	"3"          present value
//	"?"          completely missing
//	"{1 2 5}"    one of a finite list of values
//	"[1.5:4]"    inside a closed interval
//	"[-inf:4]"   upper-bounded semi-interval
//	"[1.5:+inf]" lower-bounded semi-interval
package augdata
