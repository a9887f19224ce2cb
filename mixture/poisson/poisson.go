// SPDX-License-Identifier: MIT

package poisson

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/numeric"
	"github.com/katalvlaran/lvmixt/statistic"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ModelName is the model identifier used in requests.
const ModelName = "Poisson_k"

// minLambda keeps a class rate strictly positive.
const minLambda = 1e-8

// Model holds one rate per class.
type Model struct {
	nClass int
	param  []float64
	aug    *augdata.AugmentedData[int]
	drawer statistic.Drawer
	src    rand.Source
}

// New assembles a Poisson_k mixture for variable idName.
func New(idName string, nbClass int, confidenceLevel float64, drawer statistic.Drawer, rng *rand.Rand) *mixture.Bridge[int] {
	aug := augdata.New[int](0)
	m := &Model{nClass: nbClass, aug: aug, drawer: drawer, src: rng}

	return mixture.NewBridge(idName, mixture.Parts[int]{
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
	return augdata.Accept(augdata.Present, augdata.Missing, augdata.MissingFiniteValues,
		augdata.MissingIntervals, augdata.MissingRUIntervals)
}

// SetData implements mixture.Model.
func (m *Model) SetData(idName string, _ *string, aug *augdata.AugmentedData[int], _ mixture.RunMode) diag.Log {
	var log diag.Log
	r := aug.DataRange
	if r.HasRange && r.Min < 0 {
		log.Addf(diag.InputValidation,
			"Variable: %s requires a minimum value of 0 in either provided values or bounds. The minimum value currently provided is : %d\n",
			idName, r.Min)
		return log
	}
	if !r.HasRange {
		aug.SetRange(0, 0)
	}
	m.param = make([]float64, m.nClass)

	return log
}

// Param implements mixture.Model.
func (m *Model) Param() []float64 { return m.param }

// SetParam implements mixture.Model.
func (m *Model) SetParam(p []float64) diag.Log {
	var log diag.Log
	if len(p) != len(m.param) {
		log.Addf(diag.InputValidation, "Poisson parameters have %d coefficients while %d are required.\n", len(p), len(m.param))
		return log
	}
	copy(m.param, p)

	return log
}

// NModality implements mixture.Model.
func (m *Model) NModality() int { return 0 }

// NbFreeParameters implements mixture.Model.
func (m *Model) NbFreeParameters() int { return m.nClass }

// ParamNames implements mixture.Model.
func (m *Model) ParamNames() []string {
	names := make([]string, m.nClass)
	for k := range names {
		names[k] = fmt.Sprintf("k: %d, lambda", k+numeric.MinModality)
	}

	return names
}

func (m *Model) mean(ind []int) float64 {
	var sum float64
	for _, i := range ind {
		sum += float64(m.aug.Data[i])
	}

	return sum / float64(len(ind))
}

// MStep implements mixture.Model.
func (m *Model) MStep(classInd [][]int) diag.Log {
	var log diag.Log
	for k := 0; k < m.nClass; k++ {
		if len(classInd[k]) == 0 {
			log.Addf(diag.Degenerate, "Class %d is empty, its Poisson parameter can not be estimated.\n", k+numeric.MinModality)
			continue
		}
		m.param[k] = math.Max(m.mean(classInd[k]), minLambda)
	}

	return log
}

// InitParam implements mixture.Model.
func (m *Model) InitParam(classInd [][]int) diag.Log {
	all := make([]int, m.aug.Len())
	for i := range all {
		all[i] = i
	}
	global := m.mean(all)
	for k := 0; k < m.nClass; k++ {
		lambda := global
		if len(classInd[k]) > 0 {
			lambda = m.mean(classInd[k])
		}
		m.param[k] = math.Max(lambda, minLambda)
	}

	return diag.Log{}
}

// CheckSampleCondition implements mixture.Model.
func (m *Model) CheckSampleCondition([][]int) diag.Log { return diag.Log{} }

func (m *Model) law(k int) distuv.Poisson {
	return distuv.Poisson{Lambda: m.param[k], Src: m.src}
}

// SampleIndividual implements mixture.Sampler.
func (m *Model) SampleIndividual(i, k int) {
	mv := m.aug.MisData[i]
	switch mv.Type {
	case augdata.Missing:
		m.aug.Data[i] = int(m.law(k).Rand())
	case augdata.MissingFiniteValues:
		w := make([]float64, len(mv.Values))
		n := m.law(k)
		for c, v := range mv.Values {
			w[c] = math.Exp(n.LogProb(float64(v)))
		}
		if floats.Sum(w) < numeric.MinStat {
			for c := range w {
				w[c] = 1
			}
		}
		m.aug.Data[i] = mv.Values[m.drawer.Sample(w)]
	case augdata.MissingIntervals:
		m.aug.Data[i] = statistic.TruncatedPoisson(m.drawer, m.param[k], mv.Values[0], mv.Values[1], m.src)
	case augdata.MissingRUIntervals:
		m.aug.Data[i] = statistic.TruncatedPoisson(m.drawer, m.param[k], mv.Values[0], -1, m.src)
	}
}

// LnCompletedProbability implements mixture.Likelihood.
func (m *Model) LnCompletedProbability(i, k int) float64 {
	return m.law(k).LogProb(float64(m.aug.Data[i]))
}

// LnObservedProbability implements mixture.Likelihood.
func (m *Model) LnObservedProbability(i, k int) float64 {
	mv := m.aug.MisData[i]
	n := m.law(k)
	switch mv.Type {
	case augdata.Present:
		return n.LogProb(float64(m.aug.Data[i]))
	case augdata.MissingFiniteValues:
		var sum float64
		for _, v := range mv.Values {
			sum += math.Exp(n.LogProb(float64(v)))
		}

		return math.Log(sum)
	case augdata.MissingIntervals:
		return math.Log(n.CDF(float64(mv.Values[1])) - n.CDF(float64(mv.Values[0])-1))
	case augdata.MissingRUIntervals:
		return math.Log(1 - n.CDF(float64(mv.Values[0])-1))
	default:
		return 0
	}
}
