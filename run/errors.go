// SPDX-License-Identifier: MIT
// Package run: sentinel error set.
// Every message is prefixed with "run: ..." and callers match with errors.Is.

package run

import "errors"

// ErrNilRequest indicates that Execute, Learn or Predict got a nil request.
var ErrNilRequest = errors.New("run: request is nil")
