// SPDX-License-Identifier: MIT

// Package statistic wraps the random laws used by the samplers.
//
// Every law draws from an explicit math/rand/v2 source, so one seeded
// *rand.Rand per run makes the whole run reproducible. The class and
// modality draws go through the Drawer interface, which tests replace
// with deterministic doubles.
package statistic
