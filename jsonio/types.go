// SPDX-License-Identifier: MIT

package jsonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/mixture"
)

// Variable is one raw input variable.
type Variable struct {
	ID       string   `json:"id"`
	Model    string   `json:"model"`
	Data     []string `json:"data"`
	ParamStr string   `json:"paramStr"`
}

// StrategyParam mirrors strategy.Options on the wire. Zero fields keep the
// strategy defaults; the stable criterion is off unless NStableCriterion > 0.
type StrategyParam struct {
	NbBurnInIter      int `json:"nbBurnInIter" yaml:"nbBurnInIter"`
	NbIter            int `json:"nbIter" yaml:"nbIter"`
	NbGibbsBurnInIter int `json:"nbGibbsBurnInIter" yaml:"nbGibbsBurnInIter"`
	NbGibbsIter       int `json:"nbGibbsIter" yaml:"nbGibbsIter"`
	NInitPerClass     int `json:"nInitPerClass" yaml:"nInitPerClass"`
	NSemTry           int `json:"nSemTry" yaml:"nSemTry"`
	NbTrialInInit     int `json:"nbTrialInInit,omitempty" yaml:"nbTrialInInit,omitempty"`

	RatioStableCriterion float64 `json:"ratioStableCriterion,omitempty" yaml:"ratioStableCriterion,omitempty"`
	NStableCriterion     int     `json:"nStableCriterion,omitempty" yaml:"nStableCriterion,omitempty"`
}

// Request is the input of a learning or prediction run.
//
// Param holds the Response of a previous learning run and is only read in
// prediction. Seed makes a run reproducible; nil draws a random seed.
type Request struct {
	Mode            string          `json:"mode"`
	NbClass         int             `json:"nbClass"`
	ConfidenceLevel float64         `json:"confidenceLevel"`
	Seed            *uint64         `json:"seed,omitempty"`
	MCStrategy      StrategyParam   `json:"mcStrategy"`
	Variables       []Variable      `json:"resGetData_lm"`
	Param           json.RawMessage `json:"param,omitempty"`
}

// RunMode parses r.Mode.
func (r *Request) RunMode() (mixture.RunMode, error) {
	switch r.Mode {
	case mixture.Learning.String():
		return mixture.Learning, nil
	case mixture.Prediction.String():
		return mixture.Prediction, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrUnknownMode, r.Mode)
	}
}

// ReadRequest decodes a single Request from rd.
func ReadRequest(rd io.Reader) (*Request, error) {
	var req Request
	if err := json.NewDecoder(rd).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return &req, nil
}

// NamedMatrix is a matrix with row and column labels.
type NamedMatrix struct {
	RowNames []string  `json:"rowNames,omitempty" yaml:"rowNames,omitempty"`
	ColNames []string  `json:"colNames,omitempty" yaml:"colNames,omitempty"`
	Data     [][]Float `json:"data" yaml:"data"`
}

// NewNamedMatrix copies m; a nil m gives an empty matrix.
func NewNamedMatrix(m *matrix.Dense, rowNames, colNames []string) NamedMatrix {
	return NamedMatrix{RowNames: rowNames, ColNames: colNames, Data: Rows(m)}
}

// MixtureOutput is the "mixture" section of a Response. On failure only
// the identification fields and WarnLog are filled.
type MixtureOutput struct {
	RunID       string  `json:"runId" yaml:"runId"`
	InputDigest string  `json:"inputDigest,omitempty" yaml:"inputDigest,omitempty"`
	Mode        string  `json:"mode" yaml:"mode"`
	Seed        uint64  `json:"seed" yaml:"seed"`
	RunTime     float64 `json:"runTime" yaml:"runTime"`
	WarnLog     string  `json:"warnLog" yaml:"warnLog"`

	NbInd                 int   `json:"nbInd,omitempty" yaml:"nbInd,omitempty"`
	NbSample              int   `json:"nbSample,omitempty" yaml:"nbSample,omitempty"`
	NbCluster             int   `json:"nbCluster,omitempty" yaml:"nbCluster,omitempty"`
	NbFreeParameters      int   `json:"nbFreeParameters,omitempty" yaml:"nbFreeParameters,omitempty"`
	LnObservedLikelihood  Float `json:"lnObservedLikelihood,omitempty" yaml:"lnObservedLikelihood,omitempty"`
	LnCompletedLikelihood Float `json:"lnCompletedLikelihood,omitempty" yaml:"lnCompletedLikelihood,omitempty"`
	BIC                   Float `json:"BIC,omitempty" yaml:"BIC,omitempty"`
	ICL                   Float `json:"ICL,omitempty" yaml:"ICL,omitempty"`

	IDClass           *NamedMatrix `json:"IDClass,omitempty" yaml:"IDClass,omitempty"`
	LnProbaGivenClass *NamedMatrix `json:"lnProbaGivenClass,omitempty" yaml:"lnProbaGivenClass,omitempty"`
	Delta             *NamedMatrix `json:"delta,omitempty" yaml:"delta,omitempty"`

	CompletedProbabilityLogBurnIn []Float `json:"completedProbabilityLogBurnIn,omitempty" yaml:"completedProbabilityLogBurnIn,omitempty"`
	CompletedProbabilityLogRun    []Float `json:"completedProbabilityLogRun,omitempty" yaml:"completedProbabilityLogRun,omitempty"`
}

// DataOutput is the exported data of one variable.
//
// Stat depends on the variable kind:
//   - modalities: [[index, [modality, proba]...]...] for partially observed individuals;
//   - numbers: [[index, median, low, high]...];
//   - latent class: the N×K matrix tik.
type DataOutput struct {
	Completed []Float `json:"completed" yaml:"completed"`
	Stat      any     `json:"stat,omitempty" yaml:"stat,omitempty"`
}

// ParamOutput is one exported parameter vector.
//
// Stat holds one column for imported parameters ("value") and three
// otherwise ("median" and both bounds of the confidence interval). Log
// holds the chain of every coefficient, keyed by coefficient name.
type ParamOutput struct {
	Stat     map[string][]Float `json:"stat" yaml:"stat"`
	Log      map[string][]Float `json:"log,omitempty" yaml:"log,omitempty"`
	ParamStr string             `json:"paramStr" yaml:"paramStr"`
}

// VariableOutput is the "variable" section of a Response.
type VariableOutput struct {
	Type  map[string]string                 `json:"type" yaml:"type"`
	Data  map[string]DataOutput             `json:"data" yaml:"data"`
	Param map[string]map[string]ParamOutput `json:"param" yaml:"param"`
}

// Response is the output of a run.
type Response struct {
	Strategy StrategyParam   `json:"strategy" yaml:"strategy"`
	Mixture  MixtureOutput   `json:"mixture" yaml:"mixture"`
	Variable *VariableOutput `json:"variable,omitempty" yaml:"variable,omitempty"`
}

// WriteResponse encodes resp as indented JSON.
func WriteResponse(w io.Writer, resp *Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(resp)
}

// Float is a float64 whose non-finite values survive a JSON round trip.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}

	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts numbers and the
// strings produced by MarshalJSON.
func (f *Float) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := ParseFloat(s)
	if err != nil {
		return err
	}
	*f = Float(v)

	return nil
}

// ParseFloat reads a number or one of "NaN", "Inf", "+Inf", "-Inf".
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadFloat, s)
	}

	return v, nil
}

// Floats converts a slice.
func Floats(v []float64) []Float {
	out := make([]Float, len(v))
	for i, x := range v {
		out[i] = Float(x)
	}

	return out
}

// Ints converts a slice of codes, adding offset to each one.
func Ints(v []int, offset int) []Float {
	out := make([]Float, len(v))
	for i, x := range v {
		out[i] = Float(x + offset)
	}

	return out
}

// Rows copies m row by row; a nil m gives nil.
func Rows(m *matrix.Dense) [][]Float {
	if m == nil {
		return nil
	}
	out := make([][]Float, m.Rows())
	for i := range out {
		out[i] = Floats(m.Row(i))
	}

	return out
}
