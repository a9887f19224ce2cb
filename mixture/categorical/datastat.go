// SPDX-License-Identifier: MIT

package categorical

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/mixture"
)

// DataStat summarises imputed modalities as the smallest set of most
// frequent modalities whose cumulated frequency reaches the confidence level.
type DataStat struct {
	aug    *augdata.AugmentedData[int]
	level  float64
	counts [][]float64
	stat   [][]mixture.ModalityProba
}

// NewDataStat returns a DataStat for aug at the given confidence level.
func NewDataStat(aug *augdata.AugmentedData[int], level float64) *DataStat {
	return &DataStat{aug: aug, level: level}
}

// Reset implements mixture.DataStat.
func (d *DataStat) Reset(n int) {
	d.counts = make([][]float64, n)
	d.stat = make([][]mixture.ModalityProba, n)
}

// SampleVals implements mixture.DataStat. At iterationMax the frequencies
// are sorted by decreasing value, ties by increasing modality, truncated
// once the cumulated frequency reaches the level, and Data[i] is set to
// the most frequent modality.
func (d *DataStat) SampleVals(i, iteration, iterationMax int) {
	if d.aug.MisData[i].Type == augdata.Present {
		return
	}
	if iteration == 0 || d.counts[i] == nil {
		d.counts[i] = make([]float64, d.aug.DataRange.Range)
	}
	d.counts[i][d.aug.Data[i]]++
	if iteration != iterationMax {
		return
	}

	total := float64(iterationMax + 1)
	pairs := make([]mixture.ModalityProba, len(d.counts[i]))
	for m, c := range d.counts[i] {
		pairs[m] = mixture.ModalityProba{Modality: m, Proba: c / total}
	}
	slices.SortStableFunc(pairs, func(a, b mixture.ModalityProba) int {
		return cmp.Compare(b.Proba, a.Proba)
	})

	var out []mixture.ModalityProba
	var cum float64
	for _, p := range pairs {
		if p.Proba == 0 {
			break
		}
		out = append(out, p)
		cum += p.Proba
		if cum >= d.level {
			break
		}
	}
	d.stat[i] = out
	d.counts[i] = nil
	d.aug.Data[i] = out[0].Modality
}

// Stat returns the summary of individual i, nil when none was computed.
func (d *DataStat) Stat(i int) []mixture.ModalityProba { return d.stat[i] }

// Export implements mixture.DataStat.
func (d *DataStat) Export(idName string, dx mixture.DataExtractor) {
	var stat []mixture.IndividualModalities
	for i, s := range d.stat {
		if s != nil {
			stat = append(stat, mixture.IndividualModalities{Index: i, Modalities: s})
		}
	}
	dx.ExportModalities(idName, d.aug.Data, stat)
}
