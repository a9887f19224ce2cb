// SPDX-License-Identifier: MIT

package mixture

import (
	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/confint"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/matrix"
)

// DataHandler provides the raw variables of a run.
type DataHandler interface {
	NbSample() int
	NbVariable() int
	// Info maps every variable id to its model name.
	Info() map[string]string
	// GetDataInt fills aug with variable idName, adding offset to every
	// value, and returns the variable's parameter descriptor.
	GetDataInt(idName string, aug *augdata.AugmentedData[int], offset int) (paramStr string, log diag.Log)
	GetDataReal(idName string, aug *augdata.AugmentedData[float64], offset float64) (paramStr string, log diag.Log)
}

// ParamSetter provides previously estimated parameters in prediction.
type ParamSetter interface {
	GetParam(idName, paramName string) (param []float64, paramStr string, log diag.Log)
}

// ModalityProba is one entry of a categorical imputation summary.
// Modality is 0-based.
type ModalityProba struct {
	Modality int
	Proba    float64
}

// IndividualModalities is the summary of one partially observed individual.
type IndividualModalities struct {
	Index      int
	Modalities []ModalityProba
}

// IndividualInterval is the summary of one partially observed individual
// of a numeric variable.
type IndividualInterval struct {
	Index int
	confint.Interval
}

// DataExtractor receives completed data and imputation summaries.
// Modality and class codes are handed over 0-based.
type DataExtractor interface {
	ExportModalities(idName string, completed []int, stat []IndividualModalities)
	ExportIntervals(idName string, completed []float64, stat []IndividualInterval)
	ExportClasses(idName string, completed []int, tik *matrix.Dense)
}

// ParamExtractor receives parameter statistics.
type ParamExtractor interface {
	ExportParam(idName, paramName string, stat *confint.ParamStat, names []string, paramStr string)
}
