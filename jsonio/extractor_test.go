package jsonio_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmixt/confint"
	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/mixture"
)

func TestExtractor_Modalities(t *testing.T) {
	e := jsonio.NewExtractor()
	e.ExportModalities("cat", []int{0, 1, 1}, []mixture.IndividualModalities{
		{Index: 2, Modalities: []mixture.ModalityProba{{Modality: 1, Proba: 0.75}, {Modality: 0, Proba: 0.25}}},
	})

	b, err := json.Marshal(e.Output(nil).Data["cat"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed": [1, 2, 2], "stat": [[3, [2, 0.75], [1, 0.25]]]}`, string(b))
}

func TestExtractor_IntervalsAndClasses(t *testing.T) {
	e := jsonio.NewExtractor()
	e.ExportIntervals("g", []float64{0.5, 1.5}, []mixture.IndividualInterval{
		{Index: 1, Interval: confint.Interval{Median: 1.5, Low: 1, High: 2}},
	})
	tik, err := matrix.NewFromRows([][]float64{{1, 0}, {0.5, 0.5}})
	require.NoError(t, err)
	e.ExportClasses("z_class", []int{0, 1}, tik)

	out := e.Output(map[string]string{"g": "Gaussian_sjk"})
	assert.Equal(t, "Gaussian_sjk", out.Type["g"])

	b, err := json.Marshal(out.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"g": {"completed": [0.5, 1.5], "stat": [[2, 1.5, 1, 2]]},
		"z_class": {"completed": [1, 2], "stat": [[1, 0], [0.5, 0.5]]}
	}`, string(b))
}

func TestExtractor_Param(t *testing.T) {
	s := confint.NewParamStat(0.95)
	for it := 0; it <= 4; it++ {
		s.SampleParam(it, 4, []float64{float64(it), 10})
	}

	e := jsonio.NewExtractor()
	e.ExportParam("x", mixture.NumericalParam, s, []string{"a", "b"}, "desc")
	po := e.Output(nil).Param["x"][mixture.NumericalParam]

	assert.Equal(t, "desc", po.ParamStr)
	assert.ElementsMatch(t, []string{"median", "q 2.5%", "q 97.5%"}, keys(po.Stat))
	assert.Equal(t, []jsonio.Float{2, 10}, po.Stat["median"])
	assert.Equal(t, []jsonio.Float{0, 1, 2, 3, 4}, po.Log["a"])
	assert.Len(t, po.Log["b"], 5)
}

func TestExtractor_ImportedParam(t *testing.T) {
	s := confint.NewParamStat(0.95)
	s.SetParamStorage([]float64{0.4, 0.6})

	e := jsonio.NewExtractor()
	e.ExportParam("z_class", "pi", s, []string{"k: 1", "k: 2"}, "nModality: 2")
	got := e.Output(nil).Param["z_class"]["pi"]

	want := jsonio.ParamOutput{
		Stat:     map[string][]jsonio.Float{"value": {0.4, 0.6}},
		ParamStr: "nModality: 2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imported parameter mismatch (-want +got):\n%s", diff)
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}
