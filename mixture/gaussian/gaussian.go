// SPDX-License-Identifier: MIT

package gaussian

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/numeric"
	"github.com/katalvlaran/lvmixt/statistic"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ModelName is the model identifier used in requests.
const ModelName = "Gaussian_sjk"

// minSD is the smallest standard deviation an M-step may produce.
const minSD = 1e-8

// Model holds the per-class means and standard deviations.
type Model struct {
	nClass int
	param  []float64
	aug    *augdata.AugmentedData[float64]
	src    rand.Source
}

// New assembles a Gaussian_sjk mixture for variable idName.
func New(idName string, nbClass int, confidenceLevel float64, rng *rand.Rand) *mixture.Bridge[float64] {
	aug := augdata.New[float64](0)
	m := &Model{nClass: nbClass, aug: aug, src: rng}

	return mixture.NewBridge(idName, mixture.Parts[float64]{
		Aug:        aug,
		Model:      m,
		Sampler:    m,
		Likelihood: m,
		DataStat:   mixture.NewQuantileDataStat(aug, confidenceLevel),
	}, confidenceLevel, rng)
}

// Name implements mixture.Model.
func (m *Model) Name() string { return ModelName }

// HasModalities implements mixture.Model.
func (m *Model) HasModalities() bool { return false }

// AcceptedType implements mixture.Model.
func (m *Model) AcceptedType() augdata.AcceptedTypes {
	return augdata.Accept(augdata.Present, augdata.Missing, augdata.MissingIntervals,
		augdata.MissingLUIntervals, augdata.MissingRUIntervals)
}

// SetData implements mixture.Model.
func (m *Model) SetData(idName string, _ *string, aug *augdata.AugmentedData[float64], _ mixture.RunMode) diag.Log {
	var log diag.Log
	if !aug.DataRange.HasRange {
		log.Addf(diag.InputValidation, "Variable: %s has no observed value nor bound.\n", idName)
		return log
	}
	m.param = make([]float64, 2*m.nClass)

	return log
}

// Param implements mixture.Model.
func (m *Model) Param() []float64 { return m.param }

// SetParam implements mixture.Model.
func (m *Model) SetParam(p []float64) diag.Log {
	var log diag.Log
	if len(p) != len(m.param) {
		log.Addf(diag.InputValidation, "Gaussian parameters have %d coefficients while %d are required.\n", len(p), len(m.param))
		return log
	}
	copy(m.param, p)

	return log
}

// NModality implements mixture.Model.
func (m *Model) NModality() int { return 0 }

// NbFreeParameters implements mixture.Model.
func (m *Model) NbFreeParameters() int { return 2 * m.nClass }

// ParamNames implements mixture.Model.
func (m *Model) ParamNames() []string {
	names := make([]string, 0, 2*m.nClass)
	for k := 0; k < m.nClass; k++ {
		names = append(names,
			fmt.Sprintf("k: %d, mean", k+numeric.MinModality),
			fmt.Sprintf("k: %d, sd", k+numeric.MinModality))
	}

	return names
}

func (m *Model) law(k int) distuv.Normal {
	return distuv.Normal{Mu: m.param[2*k], Sigma: m.param[2*k+1], Src: m.src}
}

// estimate returns the ML mean and standard deviation of the given individuals.
func (m *Model) estimate(ind []int) (float64, float64) {
	x := make([]float64, len(ind))
	for j, i := range ind {
		x[j] = m.aug.Data[i]
	}
	mean, variance := stat.MeanVariance(x, nil)
	if n := float64(len(x)); n > 1 {
		variance *= (n - 1) / n
	} else {
		variance = 0
	}

	return mean, math.Sqrt(variance)
}

// MStep implements mixture.Model.
func (m *Model) MStep(classInd [][]int) diag.Log {
	var log diag.Log
	for k := 0; k < m.nClass; k++ {
		if len(classInd[k]) == 0 {
			log.Addf(diag.Degenerate, "Class %d is empty, its Gaussian parameters can not be estimated.\n", k+numeric.MinModality)
			continue
		}
		mean, sd := m.estimate(classInd[k])
		if sd < minSD {
			log.Addf(diag.Degenerate,
				"Gaussian variables must have at least two different values in each class. Class %d has a null standard deviation.\n",
				k+numeric.MinModality)
			sd = minSD
		}
		m.param[2*k], m.param[2*k+1] = mean, sd
	}

	return log
}

// InitParam uses the given individuals for the means and the whole
// variable for the standard deviations.
func (m *Model) InitParam(classInd [][]int) diag.Log {
	all := make([]int, m.aug.Len())
	for i := range all {
		all[i] = i
	}
	gMean, gSD := m.estimate(all)
	gSD = math.Max(gSD, minSD)
	for k := 0; k < m.nClass; k++ {
		mean := gMean
		if len(classInd[k]) > 0 {
			mean, _ = m.estimate(classInd[k])
		}
		m.param[2*k], m.param[2*k+1] = mean, gSD
	}

	return diag.Log{}
}

// CheckSampleCondition implements mixture.Model.
func (m *Model) CheckSampleCondition([][]int) diag.Log { return diag.Log{} }

// SampleIndividual implements mixture.Sampler.
func (m *Model) SampleIndividual(i, k int) {
	mv := m.aug.MisData[i]
	mu, sd := m.param[2*k], m.param[2*k+1]
	switch mv.Type {
	case augdata.Missing:
		m.aug.Data[i] = m.law(k).Rand()
	case augdata.MissingIntervals:
		m.aug.Data[i] = statistic.TruncatedNormal(mu, sd, mv.Values[0], mv.Values[1], m.src)
	case augdata.MissingLUIntervals:
		m.aug.Data[i] = statistic.TruncatedNormal(mu, sd, math.Inf(-1), mv.Values[0], m.src)
	case augdata.MissingRUIntervals:
		m.aug.Data[i] = statistic.TruncatedNormal(mu, sd, mv.Values[0], math.Inf(1), m.src)
	}
}

// LnCompletedProbability implements mixture.Likelihood.
func (m *Model) LnCompletedProbability(i, k int) float64 {
	return m.law(k).LogProb(m.aug.Data[i])
}

// LnObservedProbability implements mixture.Likelihood.
func (m *Model) LnObservedProbability(i, k int) float64 {
	mv := m.aug.MisData[i]
	n := m.law(k)
	switch mv.Type {
	case augdata.Present:
		return n.LogProb(m.aug.Data[i])
	case augdata.MissingIntervals:
		return math.Log(n.CDF(mv.Values[1]) - n.CDF(mv.Values[0]))
	case augdata.MissingLUIntervals:
		return math.Log(n.CDF(mv.Values[0]))
	case augdata.MissingRUIntervals:
		return math.Log(n.Survival(mv.Values[0]))
	default:
		return 0
	}
}
