// Package matrix_test contains unit tests for Dense and the row kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.SetRow(0, []float64{1}), matrix.ErrDimensionMismatch)
}

// TestRowIsView checks that Row shares storage with the matrix.
func TestRowIsView(t *testing.T) {
	m, err := matrix.NewFilled(2, 3, 0.5)
	require.NoError(t, err)

	m.Row(1)[2] = 7.89
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.89, v)

	c := m.Clone()
	c.Row(1)[2] = 0
	v, _ = m.At(1, 2)
	assert.Equal(t, 7.89, v, "Clone must not share storage")

	col, err := m.Col(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 7.89}, col)
}

// TestNewFromRows validates rectangular input.
func TestNewFromRows(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.ToRows())
	assert.Equal(t, "[1, 2]\n[3, 4]\n", m.String())

	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestLogToMulti checks normalisation, stability, and the all -Inf row.
func TestLogToMulti(t *testing.T) {
	ln := []float64{-1000, -1000 + math.Log(3)}
	out := make([]float64, 2)
	norm, err := matrix.LogToMulti(ln, out)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, out[0], 1e-12)
	assert.InDelta(t, 0.75, out[1], 1e-12)
	assert.InDelta(t, -1000+math.Log(4), norm, 1e-9)

	inf := []float64{math.Inf(-1), math.Inf(-1)}
	norm, err = matrix.LogToMulti(inf, inf)
	require.NoError(t, err)
	assert.True(t, math.IsInf(norm, -1))
	assert.Equal(t, []float64{0.5, 0.5}, inf)

	_, err = matrix.LogToMulti(nil, nil)
	require.ErrorIs(t, err, matrix.ErrEmptyRow)
}

// TestArgMaxTies verifies the lowest index wins on ties.
func TestArgMaxTies(t *testing.T) {
	k, err := matrix.ArgMax([]float64{0.2, 0.4, 0.4})
	require.NoError(t, err)
	assert.Equal(t, 1, k)
	assert.InDelta(t, math.Log(2), matrix.LogSumExp([]float64{0, 0}), 1e-12)
}

// TestNormalizeRowsL1 leaves zero rows untouched.
func TestNormalizeRowsL1(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{1, 3}, {0, 0}})
	require.NoError(t, err)
	m.NormalizeRowsL1()
	assert.Equal(t, [][]float64{{0.25, 0.75}, {0, 0}}, m.ToRows())
}
