package confint_test

import (
	"testing"

	"github.com/katalvlaran/lvmixt/confint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParamStat_Quantiles checks median and interval indices on a known chain.
func TestParamStat_Quantiles(t *testing.T) {
	s := confint.NewParamStat(0.5)
	const iterMax = 8
	for it := 0; it <= iterMax; it++ {
		// chain for coefficient 0 is 8, 7, ..., 0; coefficient 1 is constant.
		s.SampleParam(it, iterMax, []float64{float64(iterMax - it), 3})
	}

	st := s.Stat()
	require.NotNil(t, st)
	assert.Equal(t, []float64{4, 2, 7}, st.Row(0), "alpha=0.25: low index 2, high index 6+1")
	assert.Equal(t, []float64{3, 3, 3}, st.Row(1))
	assert.Equal(t, []float64{4, 3}, s.Expectation())
	assert.Equal(t, 9, s.Log().Cols())
}

// TestParamStat_HighIndexCapped keeps the high quantile inside the chain.
func TestParamStat_HighIndexCapped(t *testing.T) {
	s := confint.NewParamStat(1)
	for it := 0; it <= 4; it++ {
		s.SampleParam(it, 4, []float64{float64(it)})
	}
	assert.Equal(t, []float64{2, 0, 4}, s.Stat().Row(0))

	single := confint.NewParamStat(0.95)
	single.SampleParam(0, 0, []float64{0.7})
	assert.Equal(t, []float64{0.7}, single.Expectation())
}

// TestParamStat_Normalize rescales each class block of every column.
func TestParamStat_Normalize(t *testing.T) {
	s := confint.NewParamStat(0.95)
	s.SetParamStorage([]float64{1, 3, 2, 2})
	s.NormalizeParam(2)
	assert.Equal(t, []float64{0.25, 0.75, 0.5, 0.5}, s.Expectation())
	assert.Nil(t, s.Log())
}

// TestQuantileStat records per-individual chains.
func TestQuantileStat(t *testing.T) {
	q := confint.NewQuantileStat(2, 0.95)
	_, ok := q.Stat(1)
	assert.False(t, ok)

	done := false
	for it := 0; it <= 2; it++ {
		done = q.Sample(1, it, 2, float64(10*it))
	}
	assert.True(t, done)
	iv, ok := q.Stat(1)
	assert.True(t, ok)
	assert.Equal(t, confint.Interval{Median: 10, Low: 0, High: 20}, iv)
}
