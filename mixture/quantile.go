// SPDX-License-Identifier: MIT

package mixture

import (
	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/confint"
)

// QuantileDataStat summarises numeric imputations by their median and
// central interval, and imputes the median at the last iteration.
type QuantileDataStat[T augdata.Number] struct {
	aug   *augdata.AugmentedData[T]
	level float64
	q     *confint.QuantileStat
}

// NewQuantileDataStat returns a QuantileDataStat for aug.
func NewQuantileDataStat[T augdata.Number](aug *augdata.AugmentedData[T], level float64) *QuantileDataStat[T] {
	return &QuantileDataStat[T]{aug: aug, level: level, q: confint.NewQuantileStat(0, level)}
}

// Reset implements DataStat.
func (d *QuantileDataStat[T]) Reset(n int) {
	d.q = confint.NewQuantileStat(n, d.level)
}

// SampleVals implements DataStat.
func (d *QuantileDataStat[T]) SampleVals(i, iteration, iterationMax int) {
	if d.aug.MisData[i].Type == augdata.Present {
		return
	}
	if d.q.Sample(i, iteration, iterationMax, float64(d.aug.Data[i])) {
		iv, _ := d.q.Stat(i)
		d.aug.Data[i] = T(iv.Median)
	}
}

// Export implements DataStat.
func (d *QuantileDataStat[T]) Export(idName string, dx DataExtractor) {
	var stat []IndividualInterval
	completed := make([]float64, d.aug.Len())
	for i, v := range d.aug.Data {
		completed[i] = float64(v)
		if iv, ok := d.q.Stat(i); ok {
			stat = append(stat, IndividualInterval{Index: i, Interval: iv})
		}
	}
	dx.ExportIntervals(idName, completed, stat)
}
