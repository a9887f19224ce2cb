package gaussian_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/mixture/gaussian"
	"github.com/katalvlaran/lvmixt/mixture/mixturetest"
	"github.com/katalvlaran/lvmixt/statistic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGaussian(t *testing.T, data ...string) *mixture.Bridge[float64] {
	t.Helper()
	m := gaussian.New("g", 2, 0.95, statistic.NewRand(9))
	h := mixturetest.NewHandler(len(data)).Add("g", gaussian.ModelName, "", data...)
	log := m.SetDataParam(h, nil, mixture.Learning)
	require.True(t, log.Empty(), log.String())

	return m
}

// TestMStep estimates ML means and standard deviations per class.
func TestMStep(t *testing.T) {
	m := newGaussian(t, "1", "3", "10", "10")
	log := m.MStep([][]int{{0, 1}, {2, 3}})

	assert.Equal(t, []float64{2, 1, 10, 1e-8}, m.Model().Param())
	assert.Contains(t, log.String(), "Class 2 has a null standard deviation.")
	assert.Equal(t, []string{"k: 1, mean", "k: 1, sd", "k: 2, mean", "k: 2, sd"}, m.ParamNames())
	assert.Equal(t, 4, m.NbFreeParameters())
}

// TestLikelihood compares with the closed-form normal density.
func TestLikelihood(t *testing.T) {
	m := newGaussian(t, "0", "?", "[-1:1]", "[-inf:0]", "[0:+inf]")
	require.True(t, m.Model().SetParam([]float64{0, 1, 5, 2}).Empty())

	assert.InDelta(t, -0.5*math.Log(2*math.Pi), m.LnObservedProbability(0, 0), 1e-12)
	assert.Equal(t, 0.0, m.LnObservedProbability(1, 0))
	assert.InDelta(t, math.Log(math.Erf(1/math.Sqrt2)), m.LnObservedProbability(2, 0), 1e-12)
	assert.InDelta(t, math.Log(0.5), m.LnObservedProbability(3, 0), 1e-12)
	assert.InDelta(t, math.Log(0.5), m.LnObservedProbability(4, 0), 1e-12)
}

// TestSampler_Intervals keeps imputations inside their bounds.
func TestSampler_Intervals(t *testing.T) {
	m := newGaussian(t, "0", "[-1:1]", "[-inf:-2]", "[3:+inf]")
	require.True(t, m.Model().SetParam([]float64{0, 1, 5, 2}).Empty())

	d := m.Data()
	for it := 0; it < 200; it++ {
		for i := 0; i < 4; i++ {
			m.SampleUnobserved(i, it%2)
			require.True(t, d.Satisfies(i, d.Data[i]), "individual %d: %v", i, d.Data[i])
		}
	}
}

// TestDataStat exports a median and interval for imputed individuals.
func TestDataStat(t *testing.T) {
	m := newGaussian(t, "0", "[-1:1]")
	require.True(t, m.Model().SetParam([]float64{0, 1, 0, 1}).Empty())
	for it := 0; it <= 100; it++ {
		m.SampleUnobserved(1, 0)
		m.StoreGibbsRun(0, it, 100)
		m.StoreGibbsRun(1, it, 100)
	}
	rec := mixturetest.NewRecorder()
	m.ExportDataParam(rec, rec)

	stat := rec.Intervals["g"]
	require.Len(t, stat, 1)
	assert.Equal(t, 1, stat[0].Index)
	assert.True(t, stat[0].Low <= stat[0].Median && stat[0].Median <= stat[0].High)
	assert.Equal(t, stat[0].Median, rec.Completed["g"][1])
}
