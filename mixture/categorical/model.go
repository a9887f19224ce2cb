// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/numeric"
)

// ModelName is the model identifier used in requests.
const ModelName = "Categorical_pjk"

var reNModality = regexp.MustCompile(`^ *nModality: *([0-9]+) *$`)

// ParseNModality extracts x from a "nModality: x" descriptor.
func ParseNModality(paramStr string) (int, bool) {
	m := reNModality.FindStringSubmatch(paramStr)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return n, true
}

// Model holds the categorical parameters of one variable.
type Model struct {
	nClass    int
	nModality int
	param     []float64
	aug       *augdata.AugmentedData[int]
	strict    bool
}

// NewModel returns a Model for nClass classes reading aug.
func NewModel(nClass int, aug *augdata.AugmentedData[int]) *Model {
	return &Model{nClass: nClass, aug: aug, strict: !numeric.DegeneracyAuthorized}
}

// Name implements mixture.Model.
func (m *Model) Name() string { return ModelName }

// HasModalities implements mixture.Model.
func (m *Model) HasModalities() bool { return true }

// AcceptedType implements mixture.Model.
func (m *Model) AcceptedType() augdata.AcceptedTypes {
	return augdata.Accept(augdata.Present, augdata.Missing, augdata.MissingFiniteValues)
}

// NModality implements mixture.Model.
func (m *Model) NModality() int { return m.nModality }

// Param implements mixture.Model.
func (m *Model) Param() []float64 { return m.param }

// ClassParam returns the probabilities of class k, sharing storage.
func (m *Model) ClassParam(k int) []float64 {
	return m.param[k*m.nModality : (k+1)*m.nModality]
}

// SetData implements mixture.Model.
func (m *Model) SetData(idName string, paramStr *string, aug *augdata.AugmentedData[int], _ mixture.RunMode) diag.Log {
	var log diag.Log
	r := aug.DataRange

	if *paramStr == "" {
		if !r.HasRange {
			log.Addf(diag.InputValidation,
				"Variable: %s has no observed value, the number of modalities must be provided as \"nModality: x\".\n", idName)
			return log
		}
		m.nModality = r.Max + 1
		*paramStr = fmt.Sprintf("nModality: %d", m.nModality)
	} else {
		n, ok := ParseNModality(*paramStr)
		if !ok {
			log.Addf(diag.InputValidation,
				"Variable: %s parameter string is not in the correct format, which should be \"nModality: x\" with x the number of modalities in the variable.\n",
				idName)
		}
		m.nModality = n
		if r.HasRange && m.nModality <= r.Max {
			log.Addf(diag.InputValidation,
				"Variable: %s requires a maximum value of : %d in either provided values or bounds. The maximum currently provided value is : %d\n",
				idName, m.nModality-1+numeric.MinModality, r.Max+numeric.MinModality)
		}
	}

	if r.HasRange && r.Min < 0 {
		log.Addf(diag.InputValidation,
			"Variable: %s requires a minimum value of : %d in either provided values or bounds. The minimum value currently provided is : %d\n",
			idName, numeric.MinModality, r.Min+numeric.MinModality)
	}
	if !log.Empty() || m.nModality <= 0 {
		return log
	}

	m.param = make([]float64, m.nClass*m.nModality)
	aug.SetRange(0, m.nModality-1)

	return log
}

// SetParam implements mixture.Model.
func (m *Model) SetParam(p []float64) diag.Log {
	var log diag.Log
	if len(p) != len(m.param) {
		log.Addf(diag.InputValidation,
			"Categorical parameters have %d coefficients while %d classes and %d modalities require %d.\n",
			len(p), m.nClass, m.nModality, len(m.param))
		return log
	}
	copy(m.param, p)

	return log
}

// NbFreeParameters implements mixture.Model.
func (m *Model) NbFreeParameters() int { return m.nClass * (m.nModality - 1) }

// ParamNames implements mixture.Model.
func (m *Model) ParamNames() []string {
	names := make([]string, 0, m.nClass*m.nModality)
	for k := 0; k < m.nClass; k++ {
		for p := 0; p < m.nModality; p++ {
			names = append(names, fmt.Sprintf("k: %d, modality: %d", k+numeric.MinModality, p+numeric.MinModality))
		}
	}

	return names
}

// MStep sets each class block to the modality frequencies of the class.
func (m *Model) MStep(classInd [][]int) diag.Log {
	var log diag.Log
	for k := 0; k < m.nClass; k++ {
		block := m.ClassParam(k)
		n := len(classInd[k])
		if n == 0 {
			log.Addf(diag.Degenerate, "Class %d is empty, its categorical parameters can not be estimated.\n", k+numeric.MinModality)
			continue
		}
		clear(block)
		for _, i := range classInd[k] {
			block[m.aug.Data[i]]++
		}
		for p := range block {
			block[p] /= float64(n)
		}
	}

	return log
}

// InitParam sets each class block to the frequencies of the given
// individuals, smoothed by a constant 1/nClass per modality.
func (m *Model) InitParam(classInd [][]int) diag.Log {
	constant := 1 / float64(m.nClass)
	for k := 0; k < m.nClass; k++ {
		block := m.ClassParam(k)
		for p := range block {
			block[p] = constant
		}
		for _, i := range classInd[k] {
			block[m.aug.Data[i]]++
		}
		sum := constant*float64(m.nModality) + float64(len(classInd[k]))
		for p := range block {
			block[p] /= sum
		}
	}

	return diag.Log{}
}

// CheckSampleCondition requires every modality to appear in every class.
// The check only runs for strict models.
func (m *Model) CheckSampleCondition(classInd [][]int) diag.Log {
	var log diag.Log
	if !m.strict {
		return log
	}
	present := make([]bool, m.nModality)
	for k := 0; k < m.nClass; k++ {
		clear(present)
		for _, i := range classInd[k] {
			present[m.aug.Data[i]] = true
		}
		for p, ok := range present {
			if ok {
				continue
			}
			log.Addf(diag.Degenerate,
				"Categorical variables must have one individual with each modality present in each class. Modality: %d is absent from class: %d You can check whether you have enough individuals regarding the number of classes and whether all of your modalities are encoded using contiguous integers starting at %d.\n",
				p+numeric.MinModality, k, numeric.MinModality)
		}
	}

	return log
}

// ParametersInInterior reports, per class, whether no probability is zero.
func (m *Model) ParametersInInterior() []bool {
	res := make([]bool, m.nClass)
	for k := range res {
		res[k] = true
		for _, v := range m.ClassParam(k) {
			if v == 0 {
				res[k] = false
				break
			}
		}
	}

	return res
}
