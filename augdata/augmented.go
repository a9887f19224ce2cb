// SPDX-License-Identifier: MIT

package augdata

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/lvmixt/diag"
	"gonum.org/v1/gonum/stat/distuv"
)

// AugmentedData is one variable: values, missingness descriptors, counts.
type AugmentedData[T Number] struct {
	Data      []T
	MisData   []MisVal[T]
	MisCount  [NbMisType]int
	DataRange Range[T]
}

// New returns an AugmentedData sized for n individuals, all Present with value 0.
func New[T Number](n int) *AugmentedData[T] {
	a := &AugmentedData[T]{}
	a.Resize(n)

	return a
}

// Len returns the number of individuals.
func (a *AugmentedData[T]) Len() int { return len(a.Data) }

// Resize discards the content and allocates n individuals, all Present.
func (a *AugmentedData[T]) Resize(n int) {
	a.Data = make([]T, n)
	a.MisData = make([]MisVal[T], n)
	a.MisCount = [NbMisType]int{}
	a.MisCount[Present] = n
	a.DataRange = Range[T]{}
}

// SetPresent marks individual i as observed with value v.
func (a *AugmentedData[T]) SetPresent(i int, v T) {
	a.retag(i, Present)
	a.Data[i] = v
	a.MisData[i] = MisVal[T]{Type: Present}
}

// SetMissing records the missingness descriptor of individual i.
// Data[i] is left untouched until an imputation runs.
func (a *AugmentedData[T]) SetMissing(i int, mv MisVal[T]) {
	a.retag(i, mv.Type)
	a.MisData[i] = mv
}

// SetAllMissing resizes to n individuals that are all completely missing.
func (a *AugmentedData[T]) SetAllMissing(n int) {
	a.Resize(n)
	for i := 0; i < n; i++ {
		a.SetMissing(i, MisVal[T]{Type: Missing})
	}
}

func (a *AugmentedData[T]) retag(i int, t MisType) {
	a.MisCount[a.MisData[i].Type]--
	a.MisCount[t]++
}

// NbMissing returns the number of individuals that are not Present.
func (a *AugmentedData[T]) NbMissing() int {
	return len(a.Data) - a.MisCount[Present]
}

// CheckMissingType reports every tag that occurs in the data but is not
// supported by the model.
func (a *AugmentedData[T]) CheckMissingType(accepted AcceptedTypes) diag.Log {
	var log diag.Log
	report := func(t MisType, what, tail string) {
		if accepted[t] || a.MisCount[t] == 0 {
			return
		}
		log.Addf(diag.InputValidation, "%s are not supported for this model, yet %d%s%s\n",
			what, a.MisCount[t], indExpression(a.MisCount[t]), tail)
	}

	report(Missing, "Non observed values", "completely missing.")
	report(MissingFiniteValues, "Partially observed values defined by list of possible values, {a, b, c, ... },",
		"defined by list of possible values.")
	report(MissingIntervals, "Partially observed values defined by interval, [a:b],", "defined by interval.")
	report(MissingLUIntervals, "Partially observed values defined by upper-bounded semi-interval, [-inf:a],",
		"defined by upper-bounded semi-interval.")
	report(MissingRUIntervals, "Partially observed values defined by lower-bounded semi-interval, [a:+inf],",
		"defined by lower-bounded semi-interval.")

	return log
}

func indExpression(n int) string {
	if n == 1 {
		return " individual has a value "
	}

	return " individuals have values "
}

// ComputeRange scans present values and all auxiliary values.
// Completely missing individuals contribute nothing. For integer data
// Range is Max-Min+1 (the number of codes), for real data Max-Min.
func (a *AugmentedData[T]) ComputeRange() {
	var r Range[T]
	update := func(v T) {
		if !r.HasRange {
			r.Min, r.Max, r.HasRange = v, v, true
			return
		}
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}

	for i, mv := range a.MisData {
		switch mv.Type {
		case Present:
			update(a.Data[i])
		case MissingLUIntervals, MissingRUIntervals:
			r.Inconsistent = true
			for _, v := range mv.Values {
				update(v)
			}
		default:
			for _, v := range mv.Values {
				update(v)
			}
		}
	}
	if r.HasRange {
		r.Range = r.Max - r.Min
		if isIntegral[T]() {
			r.Range++
		}
	}
	a.DataRange = r
}

// SetRange overrides the data range, typically with the modality range
// declared by a model.
func (a *AugmentedData[T]) SetRange(lo, hi T) {
	a.DataRange.Min, a.DataRange.Max, a.DataRange.HasRange = lo, hi, true
	a.DataRange.Range = hi - lo
	if isIntegral[T]() {
		a.DataRange.Range++
	}
}

// SortAndCheckMissing sorts every finite value list and reports duplicates.
func (a *AugmentedData[T]) SortAndCheckMissing() diag.Log {
	var log diag.Log
	for i := range a.MisData {
		mv := &a.MisData[i]
		if mv.Type != MissingFiniteValues || len(mv.Values) < 2 {
			continue
		}
		slices.Sort(mv.Values)
		for v := 0; v < len(mv.Values)-1; v++ {
			if mv.Values[v] == mv.Values[v+1] {
				log.Addf(diag.InputValidation,
					"Individual %d has duplicate value %v in its missing value description. This is never necessary and forbidden.\n",
					i, mv.Values[v])
			}
		}
	}

	return log
}

// RemoveMissing draws a model-free imputation for individual i.
//
// Integer data: Missing draws uniformly over the codes of DataRange,
// finite lists draw uniformly over their candidates, intervals uniformly
// over the integers they contain. Real data: Missing draws uniformly on
// [Min, Max], intervals uniformly on their bounds, semi-intervals
// uniformly between the bound and the observed range (a unit band when
// the bound lies outside it). Present individuals are untouched.
func (a *AugmentedData[T]) RemoveMissing(i int, rng *rand.Rand) {
	mv := a.MisData[i]
	if mv.Type == Present {
		return
	}
	lo, hi := a.DataRange.Min, a.DataRange.Max

	if isIntegral[T]() {
		switch mv.Type {
		case Missing:
			a.Data[i] = lo + T(rng.IntN(int(hi-lo)+1))
		case MissingFiniteValues:
			a.Data[i] = mv.Values[rng.IntN(len(mv.Values))]
		case MissingIntervals:
			a.Data[i] = mv.Values[0] + T(rng.IntN(int(mv.Values[1]-mv.Values[0])+1))
		case MissingLUIntervals:
			top := mv.Values[0]
			bottom := min(lo, top)
			a.Data[i] = bottom + T(rng.IntN(int(top-bottom)+1))
		case MissingRUIntervals:
			bottom := mv.Values[0]
			top := max(hi, bottom)
			a.Data[i] = bottom + T(rng.IntN(int(top-bottom)+1))
		}

		return
	}

	uniform := func(a, b float64) float64 {
		if a >= b {
			return a
		}

		return distuv.Uniform{Min: a, Max: b, Src: rng}.Rand()
	}
	switch mv.Type {
	case Missing:
		a.Data[i] = T(uniform(float64(lo), float64(hi)))
	case MissingFiniteValues:
		a.Data[i] = mv.Values[rng.IntN(len(mv.Values))]
	case MissingIntervals:
		a.Data[i] = T(uniform(float64(mv.Values[0]), float64(mv.Values[1])))
	case MissingLUIntervals:
		top := float64(mv.Values[0])
		bottom := float64(lo)
		if bottom >= top {
			bottom = top - 1
		}
		a.Data[i] = T(uniform(bottom, top))
	case MissingRUIntervals:
		bottom := float64(mv.Values[0])
		top := float64(hi)
		if top <= bottom {
			top = bottom + 1
		}
		a.Data[i] = T(uniform(bottom, top))
	}
}

// Satisfies reports whether v is compatible with the descriptor of i.
func (a *AugmentedData[T]) Satisfies(i int, v T) bool {
	mv := a.MisData[i]
	switch mv.Type {
	case Present:
		return v == a.Data[i]
	case Missing:
		return true
	case MissingFiniteValues:
		return slices.Contains(mv.Values, v)
	case MissingIntervals:
		return mv.Values[0] <= v && v <= mv.Values[1]
	case MissingLUIntervals:
		return v <= mv.Values[0]
	case MissingRUIntervals:
		return mv.Values[0] <= v
	default:
		return false
	}
}

// String is a short debugging summary.
func (a *AugmentedData[T]) String() string {
	return fmt.Sprintf("AugmentedData{n=%d, missing=%d, range=[%v,%v]}",
		len(a.Data), a.NbMissing(), a.DataRange.Min, a.DataRange.Max)
}

func isIntegral[T Number]() bool {
	half := 0.5

	return T(half) == 0
}
