// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." and callers match with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrDimensionMismatch indicates incompatible lengths between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrEmptyRow indicates a kernel was handed a zero-length row.
	ErrEmptyRow = errors.New("matrix: empty row")
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}
