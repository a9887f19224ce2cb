package composer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/composer"
	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/statistic"
)

func TestClassSampler_SampleIndividual(t *testing.T) {
	zi := augdata.New[int](3)
	zi.SetPresent(0, 2)
	zi.SetMissing(1, augdata.MisVal[int]{Type: augdata.Missing})
	zi.SetMissing(2, augdata.MisVal[int]{Type: augdata.MissingFiniteValues, Values: []int{1, 2}})
	tik, err := matrix.NewFromRows([][]float64{
		{1, 0, 0},
		{0, 0, 1},
		{1, 0, 0}, // no mass on the candidates
	})
	require.NoError(t, err)

	s := composer.NewClassSampler(zi, tik, statistic.NewMultinomial(statistic.NewRand(5)))
	seen := map[int]bool{}
	for it := 0; it < 200; it++ {
		for i := 0; i < 3; i++ {
			s.SampleIndividual(i)
		}
		assert.Equal(t, 2, zi.Data[0], "present labels are kept")
		assert.Equal(t, 2, zi.Data[1])
		seen[zi.Data[2]] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, seen, "uniform over candidates without mass")
	assert.Equal(t, augdata.Present, zi.MisData[0].Type)
	assert.Equal(t, augdata.MissingFiniteValues, zi.MisData[2].Type)
}
