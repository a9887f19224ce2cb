// SPDX-License-Identifier: MIT

package mixture

import (
	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/diag"
)

// RunMode selects between parameter estimation and prediction.
type RunMode int

const (
	// Learning estimates parameters with SEM.
	Learning RunMode = iota
	// Prediction imports parameters and only runs Gibbs sampling.
	Prediction
)

// String returns "learn" or "predict".
func (m RunMode) String() string {
	if m == Prediction {
		return "predict"
	}

	return "learn"
}

// NumericalParam is the parameter name every model exports its
// parameter vector under.
const NumericalParam = "NumericalParam"

// Mixture is one variable as seen by the composer.
//
// classInd[k] lists the individuals currently assigned to class k; it is
// read-only for the mixture.
type Mixture interface {
	IDName() string
	ModelName() string
	NbInd() int

	SetDataParam(h DataHandler, ps ParamSetter, mode RunMode) diag.Log

	NbFreeParameters() int
	ParamNames() []string

	LnCompletedProbability(i, k int) float64
	LnObservedProbability(i, k int) float64

	// SampleUnobserved redraws the missing part of individual i given class k.
	SampleUnobserved(i, k int)
	// InitData performs a model-free imputation of individual i.
	InitData(i int)
	InitParam(classInd [][]int) diag.Log
	MStep(classInd [][]int) diag.Log
	CheckSampleCondition(classInd [][]int) diag.Log

	StoreSEMRun(iteration, iterationMax int)
	StoreGibbsRun(i, iteration, iterationMax int)

	ExportDataParam(dx DataExtractor, px ParamExtractor)
}

// Model is the parameter side of a variable.
type Model[T augdata.Number] interface {
	Name() string
	// HasModalities reports whether values are 1-based codes on input.
	HasModalities() bool
	AcceptedType() augdata.AcceptedTypes
	// SetData validates the data against the parameter space described by
	// *paramStr, deduces it when *paramStr is empty, and allocates parameters.
	SetData(idName string, paramStr *string, aug *augdata.AugmentedData[T], mode RunMode) diag.Log
	// Param returns the live parameter vector.
	Param() []float64
	SetParam(p []float64) diag.Log
	// NModality is the size of each per-class block that must sum to one,
	// or 0 when the parameters are not proportions.
	NModality() int
	NbFreeParameters() int
	ParamNames() []string
	InitParam(classInd [][]int) diag.Log
	MStep(classInd [][]int) diag.Log
	CheckSampleCondition(classInd [][]int) diag.Log
}

// Sampler redraws the unobserved part of one individual.
type Sampler interface {
	SampleIndividual(i, k int)
}

// Likelihood evaluates per-individual per-class log-probabilities.
type Likelihood interface {
	LnCompletedProbability(i, k int) float64
	LnObservedProbability(i, k int) float64
}

// DataStat summarises imputations of partially observed individuals.
type DataStat interface {
	Reset(n int)
	// SampleVals records the current value of i; at iterationMax it
	// computes the summary and imputes the point estimate.
	SampleVals(i, iteration, iterationMax int)
	Export(idName string, dx DataExtractor)
}
