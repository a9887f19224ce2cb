// SPDX-License-Identifier: MIT
// Package jsonio: sentinel error set.
// Every message is prefixed with "jsonio: ..." and callers match with errors.Is.

package jsonio

import "errors"

var (
	// ErrInvalidJSON indicates a document that is not well-formed JSON.
	ErrInvalidJSON = errors.New("jsonio: invalid JSON document")

	// ErrBadFloat indicates a JSON value that is neither a number nor a
	// recognised non-finite string.
	ErrBadFloat = errors.New("jsonio: value is not a number")

	// ErrUnknownMode indicates a request mode other than "learn" or "predict".
	ErrUnknownMode = errors.New("jsonio: mode must be \"learn\" or \"predict\"")
)
