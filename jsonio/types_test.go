package jsonio_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/matrix"
)

func TestFloat_NonFinite(t *testing.T) {
	in := []jsonio.Float{1.5, jsonio.Float(math.NaN()), jsonio.Float(math.Inf(1)), jsonio.Float(math.Inf(-1)), 0}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, "NaN", "+Inf", "-Inf", 0]`, string(b))

	var out []jsonio.Float
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 5)
	assert.Equal(t, 1.5, float64(out[0]))
	assert.True(t, math.IsNaN(float64(out[1])))
	assert.True(t, math.IsInf(float64(out[2]), 1))
	assert.True(t, math.IsInf(float64(out[3]), -1))
}

func TestFloat_Invalid(t *testing.T) {
	var f jsonio.Float
	assert.ErrorIs(t, json.Unmarshal([]byte(`"abc"`), &f), jsonio.ErrBadFloat)
}

func TestRows(t *testing.T) {
	assert.Nil(t, jsonio.Rows(nil))

	m, err := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]jsonio.Float{{1, 2}, {3, 4}}, jsonio.Rows(m))
	assert.Equal(t, []jsonio.Float{2, 3}, jsonio.Ints([]int{1, 2}, 1))
}
