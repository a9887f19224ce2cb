// SPDX-License-Identifier: MIT

package jsonio

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvmixt/confint"
	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/numeric"
)

// Extractor implements mixture.DataExtractor and mixture.ParamExtractor
// and accumulates a VariableOutput.
type Extractor struct {
	out VariableOutput
}

// NewExtractor returns an empty Extractor.
func NewExtractor() *Extractor {
	return &Extractor{out: VariableOutput{
		Type:  map[string]string{},
		Data:  map[string]DataOutput{},
		Param: map[string]map[string]ParamOutput{},
	}}
}

// Output returns the accumulated section with the given variable types.
func (e *Extractor) Output(types map[string]string) *VariableOutput {
	out := e.out
	if types != nil {
		out.Type = types
	}

	return &out
}

// ExportModalities implements mixture.DataExtractor.
func (e *Extractor) ExportModalities(idName string, completed []int, stat []mixture.IndividualModalities) {
	rows := make([][]any, len(stat))
	for s, ind := range stat {
		row := make([]any, 0, len(ind.Modalities)+1)
		row = append(row, ind.Index+numeric.MinIndex)
		for _, mp := range ind.Modalities {
			row = append(row, []any{mp.Modality + numeric.MinModality, Float(mp.Proba)})
		}
		rows[s] = row
	}
	e.out.Data[idName] = DataOutput{Completed: Ints(completed, numeric.MinModality), Stat: rows}
}

// ExportIntervals implements mixture.DataExtractor.
func (e *Extractor) ExportIntervals(idName string, completed []float64, stat []mixture.IndividualInterval) {
	rows := make([][]any, len(stat))
	for s, ind := range stat {
		rows[s] = []any{ind.Index + numeric.MinIndex, Float(ind.Median), Float(ind.Low), Float(ind.High)}
	}
	e.out.Data[idName] = DataOutput{Completed: Floats(completed), Stat: rows}
}

// ExportClasses implements mixture.DataExtractor.
func (e *Extractor) ExportClasses(idName string, completed []int, tik *matrix.Dense) {
	e.out.Data[idName] = DataOutput{Completed: Ints(completed, numeric.MinModality), Stat: Rows(tik)}
}

// ExportParam implements mixture.ParamExtractor.
func (e *Extractor) ExportParam(idName, paramName string, stat *confint.ParamStat, names []string, paramStr string) {
	po := ParamOutput{Stat: map[string][]Float{}, ParamStr: paramStr}

	if m := stat.Stat(); m != nil {
		labels := statLabels(m.Cols(), stat.ConfidenceLevel())
		for j, label := range labels {
			col, _ := m.Col(j)
			po.Stat[label] = Floats(col)
		}
	}

	if stat.Log() != nil {
		po.Log = make(map[string][]Float, stat.NbCoeff())
		for p := 0; p < stat.NbCoeff(); p++ {
			name := strconv.Itoa(p)
			if p < len(names) {
				name = names[p]
			}
			po.Log[name] = Floats(stat.Chain(p))
		}
	}

	if e.out.Param[idName] == nil {
		e.out.Param[idName] = map[string]ParamOutput{}
	}
	e.out.Param[idName][paramName] = po
}

// statLabels names the columns of a parameter statistics matrix.
func statLabels(cols int, level float64) []string {
	if cols == 1 {
		return []string{"value"}
	}
	alpha := (1 - level) / 2

	return []string{
		"median",
		fmt.Sprintf("q %s%%", strconv.FormatFloat(alpha*100, 'g', 6, 64)),
		fmt.Sprintf("q %s%%", strconv.FormatFloat((1-alpha)*100, 'g', 6, 64)),
	}
}
