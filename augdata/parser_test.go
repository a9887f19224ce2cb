package augdata_test

import (
	"testing"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/stretchr/testify/assert"
)

// TestParser_Int covers every token format with a -1 offset.
func TestParser_Int(t *testing.T) {
	p := augdata.NewParser(-1)

	cases := []struct {
		in   string
		v    int
		mv   augdata.MisVal[int]
		okay bool
	}{
		{"3", 2, augdata.MisVal[int]{Type: augdata.Present}, true},
		{" 10 ", 9, augdata.MisVal[int]{Type: augdata.Present}, true},
		{"?", 0, augdata.MisVal[int]{Type: augdata.Missing}, true},
		{"{5 2, 5}", 0, augdata.MisVal[int]{Type: augdata.MissingFiniteValues, Values: []int{1, 4}}, true},
		{"[4:2]", 0, augdata.MisVal[int]{Type: augdata.MissingIntervals, Values: []int{1, 3}}, true},
		{"[-inf:3]", 0, augdata.MisVal[int]{Type: augdata.MissingLUIntervals, Values: []int{2}}, true},
		{"[3:+inf]", 0, augdata.MisVal[int]{Type: augdata.MissingRUIntervals, Values: []int{2}}, true},
		{"[3:3]", 0, augdata.MisVal[int]{}, false},
		{"2.5", 0, augdata.MisVal[int]{}, false},
		{"abc", 0, augdata.MisVal[int]{}, false},
	}
	for _, c := range cases {
		v, mv, ok := p.Parse(c.in)
		assert.Equal(t, c.okay, ok, c.in)
		if c.okay {
			assert.Equal(t, c.v, v, c.in)
			assert.Equal(t, c.mv, mv, c.in)
		}
	}
}

// TestParser_Real reads real-valued tokens without offset.
func TestParser_Real(t *testing.T) {
	p := augdata.NewParser(0.0)

	v, mv, ok := p.Parse("-1.25")
	assert.True(t, ok)
	assert.Equal(t, -1.25, v)
	assert.Equal(t, augdata.Present, mv.Type)

	_, mv, ok = p.Parse("[0.5:2.5]")
	assert.True(t, ok)
	assert.Equal(t, []float64{0.5, 2.5}, mv.Values)
}
