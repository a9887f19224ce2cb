// SPDX-License-Identifier: MIT

// Package numeric holds the named numeric constants shared by every lvmixt
// package: the external/internal offsets for modality and class codes, the
// thresholds used by samplers and entropy terms, and the strategy defaults.
//
// External data is 1-based (modality 1, class 1, individual 1); everything
// inside the engine is 0-based. MinModality and MinIndex are the offsets that
// readers subtract and exporters add back.
package numeric
