// SPDX-License-Identifier: MIT

package augdata

import (
	"math"
	"regexp"
	"slices"
	"strconv"
)

const strNumber = `(-*[0-9.]+)`

var (
	reNumber       = regexp.MustCompile(strNumber)
	reValue        = regexp.MustCompile(`^ *` + strNumber + ` *$`)
	reMissing      = regexp.MustCompile(`^ *\? *$`)
	reFiniteValues = regexp.MustCompile(`^ *\{.*\} *$`)
	reIntervals    = regexp.MustCompile(`^ *\[ *` + strNumber + ` *: *` + strNumber + ` *\] *$`)
	reLUIntervals  = regexp.MustCompile(`^ *\[ *-inf *: *` + strNumber + ` *\] *$`)
	reRUIntervals  = regexp.MustCompile(`^ *\[ *` + strNumber + ` *: *\+inf *\] *$`)
)

// Parser reads raw tokens into values and missingness descriptors.
// Offset is added to every number read, e.g. -1 to turn 1-based codes
// into 0-based ones.
type Parser[T Number] struct {
	Offset T
}

// NewParser returns a Parser adding offset to every parsed number.
func NewParser[T Number](offset T) Parser[T] {
	return Parser[T]{Offset: offset}
}

// Parse reads one token. ok is false when the token matches no format,
// or when a number cannot be represented as T.
func (p Parser[T]) Parse(s string) (v T, mv MisVal[T], ok bool) {
	if m := reValue.FindStringSubmatch(s); m != nil {
		x, ok := p.number(m[1])
		if !ok {
			return 0, mv, false
		}

		return x, MisVal[T]{Type: Present}, true
	}

	if reMissing.MatchString(s) {
		return 0, MisVal[T]{Type: Missing}, true
	}

	if reFiniteValues.MatchString(s) {
		var vals []T
		for _, tok := range reNumber.FindAllString(s, -1) {
			x, ok := p.number(tok)
			if !ok {
				return 0, mv, false
			}
			vals = append(vals, x)
		}
		slices.Sort(vals)

		return 0, MisVal[T]{Type: MissingFiniteValues, Values: slices.Compact(vals)}, true
	}

	if m := reIntervals.FindStringSubmatch(s); m != nil {
		a, okA := p.number(m[1])
		b, okB := p.number(m[2])
		if !okA || !okB || a == b {
			return 0, mv, false
		}

		return 0, MisVal[T]{Type: MissingIntervals, Values: []T{min(a, b), max(a, b)}}, true
	}

	if m := reLUIntervals.FindStringSubmatch(s); m != nil {
		x, ok := p.number(m[1])
		if !ok {
			return 0, mv, false
		}

		return 0, MisVal[T]{Type: MissingLUIntervals, Values: []T{x}}, true
	}

	if m := reRUIntervals.FindStringSubmatch(s); m != nil {
		x, ok := p.number(m[1])
		if !ok {
			return 0, mv, false
		}

		return 0, MisVal[T]{Type: MissingRUIntervals, Values: []T{x}}, true
	}

	return 0, mv, false
}

func (p Parser[T]) number(tok string) (T, bool) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if isIntegral[T]() && f != math.Trunc(f) {
		return 0, false
	}

	return T(f) + p.Offset, true
}
