// SPDX-License-Identifier: MIT

// Package mixturetest provides in-memory collaborators for tests of
// mixture components and of the composer.
package mixturetest

import (
	"fmt"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/confint"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/mixture"
)

// Var is one raw variable.
type Var struct {
	Model    string
	ParamStr string
	Data     []string
}

// Handler is a mixture.DataHandler over raw string tokens.
type Handler struct {
	n    int
	vars map[string]Var
}

// NewHandler returns an empty Handler for n individuals.
func NewHandler(n int) *Handler {
	return &Handler{n: n, vars: map[string]Var{}}
}

// Add registers variable id and returns h for chaining.
func (h *Handler) Add(id, model, paramStr string, data ...string) *Handler {
	h.vars[id] = Var{Model: model, ParamStr: paramStr, Data: data}

	return h
}

// NbSample implements mixture.DataHandler.
func (h *Handler) NbSample() int { return h.n }

// NbVariable implements mixture.DataHandler.
func (h *Handler) NbVariable() int { return len(h.vars) }

// Info implements mixture.DataHandler.
func (h *Handler) Info() map[string]string {
	out := make(map[string]string, len(h.vars))
	for id, v := range h.vars {
		out[id] = v.Model
	}

	return out
}

// GetDataInt implements mixture.DataHandler.
func (h *Handler) GetDataInt(id string, aug *augdata.AugmentedData[int], offset int) (string, diag.Log) {
	return getData(h, id, aug, offset)
}

// GetDataReal implements mixture.DataHandler.
func (h *Handler) GetDataReal(id string, aug *augdata.AugmentedData[float64], offset float64) (string, diag.Log) {
	return getData(h, id, aug, offset)
}

func getData[T augdata.Number](h *Handler, id string, aug *augdata.AugmentedData[T], offset T) (string, diag.Log) {
	var log diag.Log
	v, ok := h.vars[id]
	if !ok {
		log.Addf(diag.InputValidation, "Data from the variable: %s has been requested but is absent from the provided data.\n", id)
		return "", log
	}
	aug.Resize(len(v.Data))
	p := augdata.NewParser(offset)
	for i, tok := range v.Data {
		x, mv, ok := p.Parse(tok)
		if !ok {
			log.Addf(diag.Parse, "In %s, individual i: %d present an error. %s is not recognized as a valid format.\n", id, i, tok)
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

// Setter is a mixture.ParamSetter backed by a map id -> param name -> entry.
type Setter map[string]map[string]Param

// Param is one stored parameter vector.
type Param struct {
	Values   []float64
	ParamStr string
}

// GetParam implements mixture.ParamSetter.
func (s Setter) GetParam(id, name string) ([]float64, string, diag.Log) {
	var log diag.Log
	p, ok := s[id][name]
	if !ok {
		log.Add(diag.InputValidation, fmt.Sprintf("Parameter %s of variable %s is absent.\n", name, id))
		return nil, "", log
	}

	return append([]float64(nil), p.Values...), p.ParamStr, log
}

// Recorder captures everything exported through the extractor interfaces.
type Recorder struct {
	Modalities map[string][]mixture.IndividualModalities
	Intervals  map[string][]mixture.IndividualInterval
	Completed  map[string][]float64
	Tik        map[string]*matrix.Dense
	Params     map[string]map[string]*confint.ParamStat
	Names      map[string][]string
	ParamStrs  map[string]string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Modalities: map[string][]mixture.IndividualModalities{},
		Intervals:  map[string][]mixture.IndividualInterval{},
		Completed:  map[string][]float64{},
		Tik:        map[string]*matrix.Dense{},
		Params:     map[string]map[string]*confint.ParamStat{},
		Names:      map[string][]string{},
		ParamStrs:  map[string]string{},
	}
}

// ExportModalities implements mixture.DataExtractor.
func (r *Recorder) ExportModalities(id string, completed []int, stat []mixture.IndividualModalities) {
	r.Completed[id] = toFloat(completed)
	r.Modalities[id] = stat
}

// ExportIntervals implements mixture.DataExtractor.
func (r *Recorder) ExportIntervals(id string, completed []float64, stat []mixture.IndividualInterval) {
	r.Completed[id] = append([]float64(nil), completed...)
	r.Intervals[id] = stat
}

// ExportClasses implements mixture.DataExtractor.
func (r *Recorder) ExportClasses(id string, completed []int, tik *matrix.Dense) {
	r.Completed[id] = toFloat(completed)
	r.Tik[id] = tik.Clone()
}

// ExportParam implements mixture.ParamExtractor.
func (r *Recorder) ExportParam(id, name string, stat *confint.ParamStat, names []string, paramStr string) {
	if r.Params[id] == nil {
		r.Params[id] = map[string]*confint.ParamStat{}
	}
	r.Params[id][name] = stat
	r.Names[id] = names
	r.ParamStrs[id] = paramStr
}

func toFloat(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out
}
