package run_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvmixt/composer"
	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/run"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func load(t *testing.T, path string) *jsonio.Request {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	req, err := jsonio.ReadRequest(f)
	require.NoError(t, err)

	return req
}

func TestLearn(t *testing.T) {
	req := load(t, "testdata/learn.json")
	core, logs := observer.New(zap.InfoLevel)

	resp, err := run.Learn(context.Background(), req, run.WithLogger(zap.New(core)), run.WithParallelism(2))
	require.NoError(t, err)
	m := resp.Mixture
	require.Empty(t, m.WarnLog)

	_, err = uuid.Parse(m.RunID)
	assert.NoError(t, err)
	assert.Equal(t, run.Digest(req.Variables), m.InputDigest)
	assert.Equal(t, "learn", m.Mode)
	assert.Equal(t, uint64(11), m.Seed)
	assert.Equal(t, 20, m.NbInd)
	assert.Equal(t, 2, m.NbCluster)
	// 2 proportions, 2×3 + 2×3 modalities, 2 Poisson means
	assert.Equal(t, 1+6+6+2, m.NbFreeParameters)
	assert.Less(t, float64(m.BIC), float64(m.LnObservedLikelihood))
	assert.LessOrEqual(t, float64(m.LnCompletedLikelihood), float64(m.LnObservedLikelihood)+1e-9)
	assert.Len(t, m.CompletedProbabilityLogBurnIn, 20)
	assert.Len(t, m.CompletedProbabilityLogRun, 20)

	require.NotNil(t, m.IDClass)
	assert.Equal(t, []string{"k: 1", "k: 2"}, m.IDClass.RowNames)
	assert.Equal(t, []string{"a", "b", "count"}, m.IDClass.ColNames)
	require.NotNil(t, m.Delta)
	assert.Len(t, m.Delta.Data, 3)
	require.NotNil(t, m.LnProbaGivenClass)
	assert.Len(t, m.LnProbaGivenClass.Data, 20)

	v := resp.Variable
	require.NotNil(t, v)
	assert.Equal(t, run.LatentClassType, v.Type[composer.ClassName])
	assert.Equal(t, "Poisson_k", v.Type["count"])

	zi := v.Data[composer.ClassName].Completed
	require.Len(t, zi, 20)
	for i := 1; i < 10; i++ {
		assert.Equal(t, zi[0], zi[i])
		assert.Equal(t, zi[10], zi[10+i])
	}
	assert.NotEqual(t, zi[0], zi[10])

	pi := v.Param[composer.ClassName][composer.PropName]
	assert.Len(t, pi.Stat["median"], 2)
	assert.Equal(t, "nModality: 4", v.Param["a"][mixture.NumericalParam].ParamStr)
	assert.Len(t, v.Param["a"][mixture.NumericalParam].Stat["q 97.5%"], 8)

	assert.NotZero(t, logs.FilterMessage("trial selected").Len())
	assert.NotZero(t, logs.FilterMessage("run done").Len())
}

func TestLearnThenPredict(t *testing.T) {
	learn, err := run.Learn(context.Background(), load(t, "testdata/learn.json"))
	require.NoError(t, err)
	require.Empty(t, learn.Mixture.WarnLog)

	var buf bytes.Buffer
	require.NoError(t, jsonio.WriteResponse(&buf, learn))

	req := load(t, "testdata/learn.json")
	req.Mode = "predict"
	req.Param = buf.Bytes()

	resp, err := run.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, resp.Mixture.WarnLog)
	assert.Equal(t, "predict", resp.Mixture.Mode)

	// imported parameters have a single statistic column
	pi := resp.Variable.Param[composer.ClassName][composer.PropName]
	assert.Equal(t, learn.Variable.Param[composer.ClassName][composer.PropName].Stat["median"], pi.Stat["value"])
	assert.Nil(t, pi.Log)

	zi := resp.Variable.Data[composer.ClassName].Completed
	require.Len(t, zi, 20)
	assert.NotEqual(t, zi[0], zi[10])
}

const predictParam = `{
  "variable": {
    "param": {
      "z_class": {"pi": {"stat": {"median": [0.5, 0.5]}, "paramStr": "nModality: 2"}},
      "cat": {"NumericalParam": {"stat": {"median": [0.45, 0.45, 0.05, 0.05, 0.05, 0.05, 0.45, 0.45]}, "paramStr": "nModality: 4"}},
      "count": {"NumericalParam": {"stat": {"median": [1.5, 8.5]}, "paramStr": ""}},
      "g": {"NumericalParam": {"stat": {"value": [0, 1, 10, 1]}, "paramStr": ""}}
    }
  }
}`

func TestPredict(t *testing.T) {
	req := &jsonio.Request{
		Mode:            "predict",
		NbClass:         2,
		ConfidenceLevel: 0.95,
		MCStrategy:      jsonio.StrategyParam{NbGibbsBurnInIter: 10, NbGibbsIter: 30},
		Variables: []jsonio.Variable{
			{ID: "cat", Model: "Categorical_pjk", Data: []string{"1", "4", "?", "2"}},
			{ID: "count", Model: "Poisson_k", Data: []string{"1", "9", "8", "?"}},
			{ID: "g", Model: "Gaussian_sjk", Data: []string{"0.2", "9.7", "[9:11]", "-0.5"}},
		},
		Param: []byte(predictParam),
	}

	resp, err := run.Predict(context.Background(), req, run.WithSeed(5))
	require.NoError(t, err)
	require.Empty(t, resp.Mixture.WarnLog)
	assert.Equal(t, []jsonio.Float{1, 2, 2, 1}, resp.Variable.Data[composer.ClassName].Completed)

	g := resp.Variable.Data["g"].Completed
	assert.GreaterOrEqual(t, float64(g[2]), 9.0)
	assert.LessOrEqual(t, float64(g[2]), 11.0)
	assert.Equal(t, "Gaussian_sjk", resp.Variable.Type["g"])
}

func TestPredict_MissingParam(t *testing.T) {
	req := load(t, "testdata/learn.json")
	req.Mode = "predict"

	resp, err := run.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "No parameters provided for prediction. The param field must hold the output of a learning run.\n", resp.Mixture.WarnLog)
	assert.Nil(t, resp.Variable)

	req.Param = []byte(`{"variable"`)
	resp, err = run.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "The param field is not a valid learning output.\n", resp.Mixture.WarnLog)
}

func TestLearn_UnsupportedModel(t *testing.T) {
	resp, err := run.Learn(context.Background(), load(t, "../jsonio/testdata/arg_list.json"))
	require.NoError(t, err)

	var want strings.Builder
	for _, id := range []string{"ordinal1", "ordinal2", "ordinal3"} {
		want.WriteString("The model Ordinal has been selected to describe the variable " + id +
			" but it is not implemented yet. Please choose an available model for this variable.\n")
	}
	assert.Equal(t, want.String(), resp.Mixture.WarnLog)
	assert.Nil(t, resp.Variable)
}

func TestLearn_NoValidVariable(t *testing.T) {
	req := load(t, "testdata/learn.json")
	req.Variables = []jsonio.Variable{{ID: composer.ClassName, Model: run.LatentClassType, Data: []string{"1", "2", "?"}}}

	resp, err := run.Learn(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "No valid variable in the input. Please check the descriptor file.\n", resp.Mixture.WarnLog)
}

func TestLearn_ValidationGate(t *testing.T) {
	req := load(t, "testdata/learn.json")
	req.NbClass = 0
	req.ConfidenceLevel = 1.5
	req.Variables[1].ID = "a"

	resp, err := run.Learn(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resp.Mixture.WarnLog, "The number of classes must be at least 1, while 0 was provided.\n")
	assert.Contains(t, resp.Mixture.WarnLog, "The confidence level must be in (0, 1], while 1.5 was provided.\n")
	assert.Contains(t, resp.Mixture.WarnLog, "Several variables bear the same name: a, while only a variable per name is allowed.\n")
	assert.Nil(t, resp.Variable)

	req = load(t, "testdata/learn.json")
	req.Variables = nil
	resp, err = run.Learn(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "No valid data provided. Please check the data provided in input.\n", resp.Mixture.WarnLog)
}

func TestLearn_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run.Learn(ctx, load(t, "testdata/learn.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_Errors(t *testing.T) {
	_, err := run.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, run.ErrNilRequest)

	_, err = run.Execute(context.Background(), &jsonio.Request{Mode: "cluster"})
	assert.ErrorIs(t, err, jsonio.ErrUnknownMode)
}

func TestDigest(t *testing.T) {
	vars := load(t, "testdata/learn.json").Variables
	d := run.Digest(vars)
	assert.Equal(t, d, run.Digest(vars))

	vars[0].Data[0] = "2"
	assert.NotEqual(t, d, run.Digest(vars))
}
