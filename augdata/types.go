// SPDX-License-Identifier: MIT

package augdata

import "fmt"

// Number is the set of element types a variable can hold.
type Number interface {
	~int | ~float64
}

// MisType tags the observation state of one value.
type MisType int

const (
	// Present means the value is fully observed.
	Present MisType = iota
	// Missing means nothing is known about the value.
	Missing
	// MissingFiniteValues means the value is one of MisVal.Values.
	MissingFiniteValues
	// MissingIntervals means the value lies in [Values[0], Values[1]].
	MissingIntervals
	// MissingLUIntervals means the value is at most Values[0].
	MissingLUIntervals
	// MissingRUIntervals means the value is at least Values[0].
	MissingRUIntervals

	// NbMisType is the number of tags.
	NbMisType
)

// String returns the tag name.
func (t MisType) String() string {
	switch t {
	case Present:
		return "present"
	case Missing:
		return "missing"
	case MissingFiniteValues:
		return "missingFiniteValues"
	case MissingIntervals:
		return "missingIntervals"
	case MissingLUIntervals:
		return "missingLUIntervals"
	case MissingRUIntervals:
		return "missingRUIntervals"
	default:
		return fmt.Sprintf("MisType(%d)", int(t))
	}
}

// MisVal is the missingness descriptor of one individual.
type MisVal[T Number] struct {
	Type   MisType
	Values []T
}

// Range summarises the values a variable can take.
//
// Inconsistent is set when a semi-interval was seen, since one side of the
// support is then unbounded and Min/Max only describe the observed part.
type Range[T Number] struct {
	Min, Max     T
	Range        T
	HasRange     bool
	Inconsistent bool
}

// AcceptedTypes lists which tags a model supports.
type AcceptedTypes [NbMisType]bool

// Accept builds an AcceptedTypes from a list of tags.
func Accept(types ...MisType) AcceptedTypes {
	var a AcceptedTypes
	for _, t := range types {
		a[t] = true
	}

	return a
}
