// SPDX-License-Identifier: MIT

package jsonio

import (
	"maps"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/diag"
)

// DataHandler serves the raw variables of a Request to the mixtures.
// ListData must be called, and return an empty log, before any getter.
type DataHandler struct {
	vars  []Variable
	pos   map[string]int    // id -> index in vars
	info  map[string]string // id -> model
	nbInd int
}

// NewDataHandler wraps vars without validating them.
func NewDataHandler(vars []Variable) *DataHandler {
	return &DataHandler{vars: vars}
}

// ListData indexes the variables and checks that ids are unique and that
// every variable holds the same, non-zero, number of individuals. The first
// variable sets the reference count.
func (h *DataHandler) ListData() diag.Log {
	var log diag.Log
	h.pos = make(map[string]int, len(h.vars))
	h.info = make(map[string]string, len(h.vars))
	h.nbInd = 0

	for p, v := range h.vars {
		if _, dup := h.pos[v.ID]; dup {
			log.Addf(diag.InputValidation, "Several variables bear the same name: %s, while only a variable per name is allowed.\n", v.ID)
			continue
		}
		h.pos[v.ID] = p
		h.info[v.ID] = v.Model

		n := len(v.Data)
		if n == 0 {
			log.Addf(diag.InputValidation, "Variable: %s has 0 samples.", v.ID)
		}
		if p == 0 {
			h.nbInd = n
		} else if n != h.nbInd {
			log.Addf(diag.InputValidation, "Variable: %s has %d individuals, while the previous variable had %d individuals. All variables must have the same number of individuals.\n", v.ID, n, h.nbInd)
		}
	}

	return log
}

// NbSample implements mixture.DataHandler.
func (h *DataHandler) NbSample() int { return h.nbInd }

// NbVariable implements mixture.DataHandler. The latent class variable,
// when provided, is counted.
func (h *DataHandler) NbVariable() int { return len(h.info) }

// Info implements mixture.DataHandler.
func (h *DataHandler) Info() map[string]string { return maps.Clone(h.info) }

// ReturnType returns the model of every variable, as exported in the
// "type" section of a Response.
func (h *DataHandler) ReturnType() map[string]string { return maps.Clone(h.info) }

// GetDataStr returns the raw tokens and the parameter descriptor of idName.
func (h *DataHandler) GetDataStr(idName string) ([]string, string, diag.Log) {
	v, log := h.lookup(idName)
	if !log.Empty() {
		return nil, "", log
	}

	return append([]string(nil), v.Data...), v.ParamStr, log
}

// GetDataInt implements mixture.DataHandler.
func (h *DataHandler) GetDataInt(idName string, aug *augdata.AugmentedData[int], offset int) (string, diag.Log) {
	return getData(h, idName, aug, offset)
}

// GetDataReal implements mixture.DataHandler.
func (h *DataHandler) GetDataReal(idName string, aug *augdata.AugmentedData[float64], offset float64) (string, diag.Log) {
	return getData(h, idName, aug, offset)
}

func (h *DataHandler) lookup(idName string) (Variable, diag.Log) {
	var log diag.Log
	p, ok := h.pos[idName]
	if !ok {
		log.Addf(diag.InputValidation, "Data from the variable: %s has been requested but is absent from the provided data. Please check that all the necessary data is provided.\n", idName)
		return Variable{}, log
	}

	return h.vars[p], log
}

// getData parses every token of idName into aug. Unreadable tokens are
// reported one by one and leave their individual untouched.
func getData[T augdata.Number](h *DataHandler, idName string, aug *augdata.AugmentedData[T], offset T) (string, diag.Log) {
	v, log := h.lookup(idName)
	if !log.Empty() {
		return "", log
	}

	aug.Resize(len(v.Data))
	p := augdata.NewParser(offset)
	for i, tok := range v.Data {
		x, mv, ok := p.Parse(tok)
		if !ok {
			log.Addf(diag.Parse, "In %s, individual i: %d present an error. %s is not recognized as a valid format.\n", idName, i, tok)
			continue
		}
		if mv.Type == augdata.Present {
			aug.SetPresent(i, x)
		} else {
			aug.SetMissing(i, mv)
		}
	}

	return v.ParamStr, log
}
