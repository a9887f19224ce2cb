// SPDX-License-Identifier: MIT

// Package jsonio is the JSON boundary of a clustering run.
//
// A Request carries the run settings and the raw variables as strings
// ("1", "?", "{1 3}", "[0.5:2]", "[-inf:3]"...). DataHandler validates the
// variables (ListData) and feeds them to the mixtures. In prediction
// ParamSetter reads the parameters back from the Response of a previous
// learning run. Extractor collects what the composer exports and turns it
// into the "variable" section of a Response.
//
// Modalities and class labels are 1-based in JSON and 0-based inside the
// engine; the conversion happens here and nowhere else.
//
// Non-finite numbers (NaN, ±Inf) are encoded as the strings "NaN", "+Inf"
// and "-Inf" through Float, since JSON has no literal for them.
package jsonio
