// SPDX-License-Identifier: MIT

package mixture

import (
	"math/rand/v2"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/confint"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/numeric"
)

// Bridge assembles a model and its helpers into a Mixture.
type Bridge[T augdata.Number] struct {
	idName     string
	aug        *augdata.AugmentedData[T]
	model      Model[T]
	sampler    Sampler
	likelihood Likelihood
	dataStat   DataStat
	paramStat  *confint.ParamStat
	paramStr   string
	rng        *rand.Rand
}

// Parts groups the components handed to NewBridge. All of them must share Aug.
type Parts[T augdata.Number] struct {
	Aug        *augdata.AugmentedData[T]
	Model      Model[T]
	Sampler    Sampler
	Likelihood Likelihood
	DataStat   DataStat
}

// NewBridge returns a Bridge for variable idName.
func NewBridge[T augdata.Number](idName string, p Parts[T], confidenceLevel float64, rng *rand.Rand) *Bridge[T] {
	return &Bridge[T]{
		idName:     idName,
		aug:        p.Aug,
		model:      p.Model,
		sampler:    p.Sampler,
		likelihood: p.Likelihood,
		dataStat:   p.DataStat,
		paramStat:  confint.NewParamStat(confidenceLevel),
		rng:        rng,
	}
}

// IDName implements Mixture.
func (b *Bridge[T]) IDName() string { return b.idName }

// ModelName implements Mixture.
func (b *Bridge[T]) ModelName() string { return b.model.Name() }

// NbInd implements Mixture.
func (b *Bridge[T]) NbInd() int { return b.aug.Len() }

// ParamStr returns the parameter descriptor after SetDataParam.
func (b *Bridge[T]) ParamStr() string { return b.paramStr }

// Data exposes the augmented data, mainly for tests and exporters.
func (b *Bridge[T]) Data() *augdata.AugmentedData[T] { return b.aug }

// Model exposes the parameter side of the variable.
func (b *Bridge[T]) Model() Model[T] { return b.model }

// ParamStat exposes the parameter statistics.
func (b *Bridge[T]) ParamStat() *confint.ParamStat { return b.paramStat }

// SetDataParam reads the variable, validates missingness, and sets up the
// parameter space. In prediction the parameters come from ps.
func (b *Bridge[T]) SetDataParam(h DataHandler, ps ParamSetter, mode RunMode) diag.Log {
	var offset T
	if b.model.HasModalities() {
		offset = -numeric.MinModality
	}

	paramStr, log := b.getData(h, offset)
	if !log.Empty() {
		return log
	}
	b.paramStr = paramStr

	b.aug.ComputeRange()
	if mis := b.aug.CheckMissingType(b.model.AcceptedType()); !mis.Empty() {
		log.Addf(diag.InputValidation, "Variable %s has a problem with the descriptions of missing values.\n", b.idName)
		log.Append(mis)
	}
	log.Append(b.aug.SortAndCheckMissing())

	var param []float64
	if mode == Prediction {
		var pLog diag.Log
		param, b.paramStr, pLog = ps.GetParam(b.idName, NumericalParam)
		log.Append(pLog)
	}

	log.Append(b.model.SetData(b.idName, &b.paramStr, b.aug, mode))
	if mode == Prediction && log.Empty() {
		log.Append(b.model.SetParam(param))
		b.paramStat.SetParamStorage(b.model.Param())
	}
	b.dataStat.Reset(b.aug.Len())

	return log
}

func (b *Bridge[T]) getData(h DataHandler, offset T) (string, diag.Log) {
	switch a := any(b.aug).(type) {
	case *augdata.AugmentedData[int]:
		return h.GetDataInt(b.idName, a, int(offset))
	case *augdata.AugmentedData[float64]:
		return h.GetDataReal(b.idName, a, float64(offset))
	default:
		var log diag.Log
		log.Addf(diag.InputValidation, "Variable: %s has an unsupported data type.\n", b.idName)

		return "", log
	}
}

// NbFreeParameters implements Mixture.
func (b *Bridge[T]) NbFreeParameters() int { return b.model.NbFreeParameters() }

// ParamNames implements Mixture.
func (b *Bridge[T]) ParamNames() []string { return b.model.ParamNames() }

// LnCompletedProbability implements Mixture.
func (b *Bridge[T]) LnCompletedProbability(i, k int) float64 {
	return b.likelihood.LnCompletedProbability(i, k)
}

// LnObservedProbability implements Mixture.
func (b *Bridge[T]) LnObservedProbability(i, k int) float64 {
	return b.likelihood.LnObservedProbability(i, k)
}

// SampleUnobserved implements Mixture.
func (b *Bridge[T]) SampleUnobserved(i, k int) { b.sampler.SampleIndividual(i, k) }

// InitData implements Mixture.
func (b *Bridge[T]) InitData(i int) { b.aug.RemoveMissing(i, b.rng) }

// InitParam implements Mixture.
func (b *Bridge[T]) InitParam(classInd [][]int) diag.Log { return b.model.InitParam(classInd) }

// MStep implements Mixture.
func (b *Bridge[T]) MStep(classInd [][]int) diag.Log { return b.model.MStep(classInd) }

// CheckSampleCondition implements Mixture. Findings are prefixed with the variable id.
func (b *Bridge[T]) CheckSampleCondition(classInd [][]int) diag.Log {
	return b.model.CheckSampleCondition(classInd).Prefix("checkSampleCondition, error in variable " + b.idName + "\n")
}

// StoreSEMRun records the parameters. At the last iteration the
// parameters are replaced by their median.
func (b *Bridge[T]) StoreSEMRun(iteration, iterationMax int) {
	b.paramStat.SampleParam(iteration, iterationMax, b.model.Param())
	if iteration == iterationMax {
		b.paramStat.NormalizeParam(b.model.NModality())
		copy(b.model.Param(), b.paramStat.Expectation())
	}
}

// StoreGibbsRun implements Mixture.
func (b *Bridge[T]) StoreGibbsRun(i, iteration, iterationMax int) {
	b.dataStat.SampleVals(i, iteration, iterationMax)
}

// ExportDataParam implements Mixture.
func (b *Bridge[T]) ExportDataParam(dx DataExtractor, px ParamExtractor) {
	b.dataStat.Export(b.idName, dx)
	px.ExportParam(b.idName, NumericalParam, b.paramStat, b.model.ParamNames(), b.paramStr)
}
