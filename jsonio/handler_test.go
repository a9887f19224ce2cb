package jsonio_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/mixture"
)

// Compile-time checks.
var (
	_ mixture.DataHandler    = (*jsonio.DataHandler)(nil)
	_ mixture.ParamSetter    = (*jsonio.ParamSetter)(nil)
	_ mixture.DataExtractor  = (*jsonio.Extractor)(nil)
	_ mixture.ParamExtractor = (*jsonio.Extractor)(nil)
)

func loadRequest(t *testing.T) *jsonio.Request {
	t.Helper()
	f, err := os.Open("testdata/arg_list.json")
	require.NoError(t, err)
	defer f.Close()

	req, err := jsonio.ReadRequest(f)
	require.NoError(t, err)

	return req
}

func TestReadRequest(t *testing.T) {
	req := loadRequest(t)
	mode, err := req.RunMode()
	require.NoError(t, err)
	assert.Equal(t, mixture.Learning, mode)
	assert.Equal(t, 2, req.NbClass)
	assert.Equal(t, 0.95, req.ConfidenceLevel)
	require.NotNil(t, req.Seed)
	assert.Equal(t, uint64(42), *req.Seed)
	assert.Equal(t, 20, req.MCStrategy.NSemTry)
	assert.Len(t, req.Variables, 13)

	req.Mode = "cluster"
	_, err = req.RunMode()
	assert.ErrorIs(t, err, jsonio.ErrUnknownMode)
}

func TestReadRequest_Invalid(t *testing.T) {
	_, err := jsonio.ReadRequest(strings.NewReader(`{"mode": `))
	assert.ErrorIs(t, err, jsonio.ErrInvalidJSON)
}

func TestListData(t *testing.T) {
	req := loadRequest(t)
	h := jsonio.NewDataHandler(req.Variables)
	log := h.ListData()
	require.True(t, log.Empty(), log.String())

	assert.Equal(t, 10, h.NbSample())
	assert.Equal(t, 13, h.NbVariable())
	assert.Equal(t, "Poisson_k", h.Info()["poisson2"])
	assert.Equal(t, "Ordinal", h.ReturnType()["ordinal3"])

	data, paramStr, log := h.GetDataStr("categorical1")
	require.True(t, log.Empty())
	assert.Equal(t, []string{"5", "6", "8", "4", "?", "9", "2", "7", "3", "10"}, data)
	assert.Empty(t, paramStr)

	_, paramStr, _ = h.GetDataStr("categorical3")
	assert.Equal(t, "nModality: 3", paramStr)
}

func TestListData_AbsentVariable(t *testing.T) {
	h := jsonio.NewDataHandler(loadRequest(t).Variables)
	require.True(t, h.ListData().Empty())

	_, _, log := h.GetDataStr("absent_id_var")
	assert.Equal(t, "Data from the variable: absent_id_var has been requested but is absent from the provided data. Please check that all the necessary data is provided.\n", log.String())
	assert.True(t, log.Has(diag.InputValidation))

	aug := augdata.New[int](0)
	_, log = h.GetDataInt("absent_id_var", aug, -1)
	assert.False(t, log.Empty())
}

func TestListData_DuplicateID(t *testing.T) {
	vars := loadRequest(t).Variables
	vars[1].ID = "categorical1"

	log := jsonio.NewDataHandler(vars).ListData()
	assert.Equal(t, "Several variables bear the same name: categorical1, while only a variable per name is allowed.\n", log.String())
}

func TestListData_EmptyVariable(t *testing.T) {
	vars := loadRequest(t).Variables
	vars[1].Data = nil

	log := jsonio.NewDataHandler(vars).ListData()
	assert.Equal(t,
		"Variable: categorical2 has 0 samples."+
			"Variable: categorical2 has 0 individuals, while the previous variable had 10 individuals. All variables must have the same number of individuals.\n",
		log.String())
}

func TestGetDataInt(t *testing.T) {
	h := jsonio.NewDataHandler(loadRequest(t).Variables)
	require.True(t, h.ListData().Empty())

	aug := augdata.New[int](0)
	_, log := h.GetDataInt("categorical2", aug, -1)
	require.True(t, log.Empty(), log.String())
	require.Equal(t, 10, aug.Len())
	assert.Equal(t, 0, aug.Data[0])
	assert.Equal(t, 1, aug.Data[1])
	assert.Equal(t, augdata.Missing, aug.MisData[3].Type)
	assert.Equal(t, augdata.MissingFiniteValues, aug.MisData[6].Type)
	assert.Equal(t, []int{0, 1}, aug.MisData[6].Values)
}

func TestGetDataReal(t *testing.T) {
	h := jsonio.NewDataHandler(loadRequest(t).Variables)
	require.True(t, h.ListData().Empty())

	aug := augdata.New[float64](0)
	_, log := h.GetDataReal("gaussian2", aug, 0)
	require.True(t, log.Empty(), log.String())
	assert.InDelta(t, 10.2, aug.Data[0], 1e-12)
	assert.Equal(t, augdata.MissingLUIntervals, aug.MisData[2].Type)
	assert.Equal(t, augdata.MissingRUIntervals, aug.MisData[8].Type)
}

func TestGetData_ParseError(t *testing.T) {
	h := jsonio.NewDataHandler([]jsonio.Variable{
		{ID: "x", Model: "Poisson_k", Data: []string{"1", "two", "3"}},
	})
	require.True(t, h.ListData().Empty())

	aug := augdata.New[int](0)
	_, log := h.GetDataInt("x", aug, 0)
	assert.Equal(t, "In x, individual i: 1 present an error. two is not recognized as a valid format.\n", log.String())
	assert.True(t, log.Has(diag.Parse))
}
