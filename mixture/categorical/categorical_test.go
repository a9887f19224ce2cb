package categorical_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/mixture/categorical"
	"github.com/katalvlaran/lvmixt/mixture/mixturetest"
	"github.com/katalvlaran/lvmixt/statistic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func newMixture(t *testing.T, nbClass int, paramStr string, data ...string) *mixture.Bridge[int] {
	t.Helper()
	rng := statistic.NewRand(42)
	m := categorical.New("cat", nbClass, 0.95, statistic.NewMultinomial(rng), rng)
	h := mixturetest.NewHandler(len(data)).Add("cat", categorical.ModelName, paramStr, data...)
	log := m.SetDataParam(h, nil, mixture.Learning)
	require.True(t, log.Empty(), log.String())

	return m
}

// TestSetData_DeducesModalities builds the descriptor from the largest code.
func TestSetData_DeducesModalities(t *testing.T) {
	m := newMixture(t, 2, "", "1", "3", "?", "{1 2}")

	assert.Equal(t, "nModality: 3", m.ParamStr())
	assert.Equal(t, 2*(3-1), m.NbFreeParameters())
	assert.Equal(t, augdata.Range[int]{Min: 0, Max: 2, Range: 3, HasRange: true}, m.Data().DataRange)
	assert.Equal(t, "k: 1, modality: 1", m.ParamNames()[0])
	assert.Equal(t, "k: 2, modality: 3", m.ParamNames()[5])
}

// TestSetData_Errors reproduces the descriptor and bound messages.
func TestSetData_Errors(t *testing.T) {
	rng := statistic.NewRand(1)
	cases := []struct {
		paramStr string
		data     []string
		want     string
	}{
		{"nModality 3", []string{"1", "2"},
			"Variable: cat parameter string is not in the correct format, which should be \"nModality: x\" with x the number of modalities in the variable.\n" +
				"Variable: cat requires a maximum value of : 0 in either provided values or bounds. The maximum currently provided value is : 2\n"},
		{"nModality: 2", []string{"1", "3"},
			"Variable: cat requires a maximum value of : 2 in either provided values or bounds. The maximum currently provided value is : 3\n"},
		{"", []string{"0", "1"},
			"Variable: cat requires a minimum value of : 1 in either provided values or bounds. The minimum value currently provided is : 0\n"},
	}
	for _, c := range cases {
		m := categorical.New("cat", 2, 0.95, statistic.NewMultinomial(rng), rng)
		h := mixturetest.NewHandler(len(c.data)).Add("cat", categorical.ModelName, c.paramStr, c.data...)
		log := m.SetDataParam(h, nil, mixture.Learning)
		assert.Equal(t, c.want, log.String(), c.paramStr)
	}
}

// TestSetData_UnsupportedMissing rejects intervals.
func TestSetData_UnsupportedMissing(t *testing.T) {
	rng := statistic.NewRand(1)
	m := categorical.New("cat", 2, 0.95, statistic.NewMultinomial(rng), rng)
	h := mixturetest.NewHandler(2).Add("cat", categorical.ModelName, "", "1", "[1:3]")
	log := m.SetDataParam(h, nil, mixture.Learning)
	assert.Contains(t, log.String(), "Variable cat has a problem with the descriptions of missing values.\n")
	assert.Contains(t, log.String(), "defined by interval.\n")
}

// TestMStep_RowsSumToOne checks every class block after an M-step.
func TestMStep_RowsSumToOne(t *testing.T) {
	m := newMixture(t, 2, "", "1", "2", "3", "3", "1", "2")
	log := m.MStep([][]int{{0, 1, 2}, {3, 4, 5}})
	require.True(t, log.Empty())

	p := m.ParamStat() // not yet sampled
	assert.Nil(t, p.Stat())

	assert.InDelta(t, 1, floats.Sum(paramBlock(m, 0, 3)), 1e-12)
	assert.InDelta(t, 1, floats.Sum(paramBlock(m, 1, 3)), 1e-12)
	assert.InDeltaSlice(t, []float64{1. / 3, 1. / 3, 1. / 3}, paramBlock(m, 1, 3), 1e-12)
}

// TestMStep_EmptyClass reports a degenerate class.
func TestMStep_EmptyClass(t *testing.T) {
	m := newMixture(t, 2, "", "1", "2")
	log := m.MStep([][]int{{0, 1}, {}})
	assert.Equal(t, "Class 2 is empty, its categorical parameters can not be estimated.\n", log.String())
}

// TestInitParam_Smoothed keeps every probability positive.
func TestInitParam_Smoothed(t *testing.T) {
	m := newMixture(t, 2, "", "1", "2", "3")
	require.True(t, m.InitParam([][]int{{0}, {2}}).Empty())

	// constant 1/2 per modality plus one observation: (0.5+1)/2.5, 0.5/2.5, 0.5/2.5.
	assert.InDeltaSlice(t, []float64{0.6, 0.2, 0.2}, paramBlock(m, 0, 3), 1e-12)
	assert.InDeltaSlice(t, []float64{0.2, 0.2, 0.6}, paramBlock(m, 1, 3), 1e-12)
}

// TestLikelihood covers present, missing and finite-value individuals.
func TestLikelihood(t *testing.T) {
	m := newMixture(t, 1, "nModality: 3", "1", "?", "{2 3}")
	require.True(t, m.MStep([][]int{{0}}).Empty()) // param = (1, 0, 0)
	copy(paramBlock(m, 0, 3), []float64{0.5, 0.3, 0.2})

	assert.InDelta(t, math.Log(0.5), m.LnObservedProbability(0, 0), 1e-12)
	assert.Equal(t, 0.0, m.LnObservedProbability(1, 0))
	assert.InDelta(t, math.Log(0.5), m.LnObservedProbability(2, 0), 1e-12)

	m.Data().Data[2] = 2
	assert.InDelta(t, math.Log(0.2), m.LnCompletedProbability(2, 0), 1e-12)
}

// TestSampler_RespectsMissingness keeps imputations in their domain and tags unchanged.
func TestSampler_RespectsMissingness(t *testing.T) {
	m := newMixture(t, 2, "nModality: 6", "?", "{2 5}", "4")
	require.True(t, m.InitParam([][]int{{2}, {2}}).Empty())

	for it := 0; it < 300; it++ {
		for k := 0; k < 2; k++ {
			for i := 0; i < 3; i++ {
				m.SampleUnobserved(i, k)
			}
			d := m.Data()
			assert.True(t, d.Data[0] >= 0 && d.Data[0] <= 5)
			assert.Contains(t, []int{1, 4}, d.Data[1])
			assert.Equal(t, 3, d.Data[2])
			assert.Equal(t, augdata.Missing, d.MisData[0].Type)
			assert.Equal(t, augdata.MissingFiniteValues, d.MisData[1].Type)
		}
	}
}

// TestSampler_ZeroMassFallsBackToUniform draws among candidates with no mass.
func TestSampler_ZeroMassFallsBackToUniform(t *testing.T) {
	m := newMixture(t, 1, "nModality: 3", "1", "{2 3}")
	require.True(t, m.MStep([][]int{{0}}).Empty()) // all mass on modality 0

	seen := map[int]bool{}
	for it := 0; it < 200; it++ {
		m.SampleUnobserved(1, 0)
		seen[m.Data().Data[1]] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, seen)
}

// TestDataStat_Coverage checks the cumulative probability reaches the level.
func TestDataStat_Coverage(t *testing.T) {
	m := newMixture(t, 1, "nModality: 4", "?", "1")
	copy(paramBlock(m, 0, 4), []float64{0.4, 0.3, 0.2, 0.1})

	const iterMax = 999
	for it := 0; it <= iterMax; it++ {
		m.SampleUnobserved(0, 0)
		m.StoreGibbsRun(0, it, iterMax)
		m.StoreGibbsRun(1, it, iterMax)
	}

	rec := mixturetest.NewRecorder()
	m.ExportDataParam(rec, rec)
	stat := rec.Modalities["cat"]
	require.Len(t, stat, 1, "present individuals have no statistic")
	assert.Equal(t, 0, stat[0].Index)

	var cum float64
	for j, p := range stat[0].Modalities {
		if j > 0 {
			assert.GreaterOrEqual(t, stat[0].Modalities[j-1].Proba, p.Proba)
		}
		cum += p.Proba
	}
	assert.GreaterOrEqual(t, cum, 0.95)
	assert.Equal(t, float64(stat[0].Modalities[0].Modality), rec.Completed["cat"][0], "imputed with the mode")
}

// TestDataStat_TieBreak orders equally frequent modalities by increasing
// code and imputes the lowest one.
func TestDataStat_TieBreak(t *testing.T) {
	m := newMixture(t, 1, "nModality: 3", "?", "1")
	d := m.Data()

	draws := []int{2, 1, 2, 1}
	iterMax := len(draws) - 1
	for it, v := range draws {
		d.Data[0] = v
		m.StoreGibbsRun(0, it, iterMax)
	}

	rec := mixturetest.NewRecorder()
	m.ExportDataParam(rec, rec)
	stat := rec.Modalities["cat"]
	require.Len(t, stat, 1)
	assert.Equal(t, []mixture.ModalityProba{
		{Modality: 1, Proba: 0.5},
		{Modality: 2, Proba: 0.5},
	}, stat[0].Modalities)
	assert.Equal(t, 1, d.Data[0])
	assert.Equal(t, 1.0, rec.Completed["cat"][0])
}

// TestStoreSEMRun_Expectation replaces parameters with normalised medians.
func TestStoreSEMRun_Expectation(t *testing.T) {
	m := newMixture(t, 1, "nModality: 2", "1", "2")
	block := paramBlock(m, 0, 2)
	chains := [][]float64{{0.2, 0.8}, {0.4, 0.6}, {0.3, 0.6}}
	for it, c := range chains {
		copy(block, c)
		m.StoreSEMRun(it, len(chains)-1)
	}
	// medians 0.3 and 0.6 renormalised
	assert.InDeltaSlice(t, []float64{1. / 3, 2. / 3}, paramBlock(m, 0, 2), 1e-12)
}

// TestPrediction imports parameters from the setter.
func TestPrediction(t *testing.T) {
	rng := statistic.NewRand(3)
	m := categorical.New("cat", 2, 0.95, statistic.NewMultinomial(rng), rng)
	h := mixturetest.NewHandler(2).Add("cat", categorical.ModelName, "", "1", "?")
	ps := mixturetest.Setter{"cat": {mixture.NumericalParam: {Values: []float64{0.5, 0.5, 0.1, 0.9}, ParamStr: "nModality: 2"}}}

	log := m.SetDataParam(h, ps, mixture.Prediction)
	require.True(t, log.Empty(), log.String())
	assert.Equal(t, []float64{0.1, 0.9}, paramBlock(m, 1, 2))
	assert.Equal(t, 1, m.ParamStat().Stat().Cols())

	bad := mixturetest.Setter{"cat": {mixture.NumericalParam: {Values: []float64{1}, ParamStr: "nModality: 2"}}}
	log = m.SetDataParam(h, bad, mixture.Prediction)
	assert.False(t, log.Empty())
}

// TestCheckSampleCondition_Strict reports modalities missing from a class.
func TestCheckSampleCondition_Strict(t *testing.T) {
	rng := statistic.NewRand(3)
	m := categorical.New("cat", 2, 0.95, statistic.NewMultinomial(rng), rng, categorical.WithStrictSampleCondition())
	h := mixturetest.NewHandler(3).Add("cat", categorical.ModelName, "", "1", "2", "1")
	require.True(t, m.SetDataParam(h, nil, mixture.Learning).Empty())

	assert.True(t, m.CheckSampleCondition([][]int{{0, 1}, {1, 2}}).Empty())
	log := m.CheckSampleCondition([][]int{{0, 1}, {2}})
	assert.Contains(t, log.String(), "checkSampleCondition, error in variable cat\n")
	assert.Contains(t, log.String(), "Modality: 2 is absent from class: 1")

	loose := newMixture(t, 2, "", "1", "2", "1")
	assert.True(t, loose.CheckSampleCondition([][]int{{0, 1}, {2}}).Empty())
}

// paramBlock returns the live parameters of class k.
func paramBlock(m *mixture.Bridge[int], k, nModality int) []float64 {
	return m.Model().Param()[k*nModality : (k+1)*nModality]
}
