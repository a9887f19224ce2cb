// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFilled creates an r×c Dense matrix with every element set to v.
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.Fill(v)

	return m, nil
}

// NewFromRows copies a rectangular [][]float64 into a new Dense.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m := &Dense{r: len(rows), c: len(rows[0]), data: make([]float64, len(rows)*len(rows[0]))}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, denseErrorf("NewFromRows", i, len(row), ErrDimensionMismatch)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns a view of row i sharing storage with m.
// Writes through the returned slice modify m. It panics if i is out of
// range, exactly like slice indexing.
func (m *Dense) Row(i int) []float64 {
	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// SetRow copies v into row i.
func (m *Dense) SetRow(i int, v []float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf("SetRow", i, 0, ErrIndexOutOfBounds)
	}
	if len(v) != m.c {
		return denseErrorf("SetRow", i, len(v), ErrDimensionMismatch)
	}
	copy(m.Row(i), v)

	return nil
}

// Fill sets every element to v.
func (m *Dense) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Col returns a copy of column j.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf("Col", 0, j, ErrIndexOutOfBounds)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Clone returns a deep copy of the Dense matrix.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// ToRows returns the content as a freshly allocated [][]float64.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}

	return out
}

// Apply replaces every element with fn(i, j, v).
func (m *Dense) Apply(fn func(i, j int, v float64) float64) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			m.data[base+j] = fn(i, j, m.data[base+j])
		}
	}
}

// String implements fmt.Stringer for easy debugging.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
		}
		b.WriteString("]\n")
	}

	return b.String()
}
