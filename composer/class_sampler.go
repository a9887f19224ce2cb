// SPDX-License-Identifier: MIT

package composer

import (
	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/numeric"
	"github.com/katalvlaran/lvmixt/statistic"
)

// ClassSampler draws the latent class of one individual from its row of tik.
// User supplied labels are left untouched, candidate lists restrict the draw.
type ClassSampler struct {
	zi     *augdata.AugmentedData[int]
	tik    *matrix.Dense
	drawer statistic.Drawer
}

// NewClassSampler returns a ClassSampler writing into zi.
func NewClassSampler(zi *augdata.AugmentedData[int], tik *matrix.Dense, d statistic.Drawer) *ClassSampler {
	return &ClassSampler{zi: zi, tik: tik, drawer: d}
}

// SampleIndividual redraws zi[i]. The missingness tag never changes.
func (s *ClassSampler) SampleIndividual(i int) {
	mv := s.zi.MisData[i]
	switch mv.Type {
	case augdata.Present:
		return
	case augdata.MissingFiniteValues:
		s.zi.Data[i] = statistic.SampleAmong(s.drawer, s.tik.Row(i), mv.Values, numeric.MinStat)
	default:
		s.zi.Data[i] = s.drawer.Sample(s.tik.Row(i))
	}
}

// classDataStat accumulates the labels drawn during the Gibbs run. At the
// last iteration the row of tik becomes the empirical label frequencies and
// unsupervised labels are set to the most frequent class.
type classDataStat struct {
	zi     *augdata.AugmentedData[int]
	tik    *matrix.Dense
	counts [][]float64
}

func newClassDataStat(zi *augdata.AugmentedData[int], tik *matrix.Dense) *classDataStat {
	return &classDataStat{zi: zi, tik: tik, counts: make([][]float64, zi.Len())}
}

func (d *classDataStat) sampleVals(i, iteration, iterationMax int) {
	if iteration == 0 || d.counts[i] == nil {
		d.counts[i] = make([]float64, d.tik.Cols())
	}
	d.counts[i][d.zi.Data[i]]++
	if iteration != iterationMax {
		return
	}

	row := d.tik.Row(i)
	total := float64(iterationMax + 1)
	for k, c := range d.counts[i] {
		row[k] = c / total
	}
	if d.zi.MisData[i].Type != augdata.Present {
		d.zi.Data[i], _ = matrix.ArgMax(row)
	}
	d.counts[i] = nil
}
