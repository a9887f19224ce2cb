// SPDX-License-Identifier: MIT

package jsonio

import (
	"github.com/tidwall/gjson"

	"github.com/katalvlaran/lvmixt/diag"
)

// ParamSetter reads parameters from the Response of a previous learning
// run: variable.param.<id>.<name>.stat.median (or .value for parameters
// that were themselves imported) and the matching paramStr.
type ParamSetter struct {
	param map[string]gjson.Result
}

// NewParamSetter indexes the parameters of a previous Response.
func NewParamSetter(previous []byte) (*ParamSetter, error) {
	if !gjson.ValidBytes(previous) {
		return nil, ErrInvalidJSON
	}

	return &ParamSetter{param: gjson.GetBytes(previous, "variable.param").Map()}, nil
}

// GetParam implements mixture.ParamSetter.
func (s *ParamSetter) GetParam(idName, paramName string) ([]float64, string, diag.Log) {
	var log diag.Log
	p, ok := s.param[idName].Map()[paramName]
	if !ok {
		log.Addf(diag.InputValidation, "Parameter %s of variable %s is absent from the provided parameters.\n", paramName, idName)
		return nil, "", log
	}

	stat := p.Get("stat.median")
	if !stat.Exists() {
		stat = p.Get("stat.value")
	}
	if !stat.IsArray() {
		log.Addf(diag.InputValidation, "Parameter %s of variable %s has no median or value statistic.\n", paramName, idName)
		return nil, "", log
	}

	vals := stat.Array()
	out := make([]float64, len(vals))
	for c, r := range vals {
		if r.Type == gjson.Number {
			out[c] = r.Float()
			continue
		}
		v, err := ParseFloat(r.String())
		if err != nil {
			log.Addf(diag.Parse, "Parameter %s of variable %s, coefficient %d: %s is not a number.\n", paramName, idName, c, r.Raw)
			continue
		}
		out[c] = v
	}

	return out, p.Get("paramStr").String(), log
}
