// SPDX-License-Identifier: MIT

package statistic

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NewRand returns a PCG generator seeded from seed. Seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// TruncatedNormal draws from N(mu, sigma²) restricted to [lo, hi] by
// inverting the CDF. Infinite bounds are allowed. When the interval has
// no numerical mass the closest bound to mu is returned.
func TruncatedNormal(mu, sigma, lo, hi float64, src rand.Source) float64 {
	n := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	pLo, pHi := n.CDF(lo), n.CDF(hi)
	if pHi-pLo <= 0 {
		if math.Abs(lo-mu) < math.Abs(hi-mu) {
			return lo
		}

		return hi
	}
	u := distuv.Uniform{Min: pLo, Max: pHi, Src: src}.Rand()
	x := n.Quantile(u)

	return math.Min(math.Max(x, lo), hi)
}

// TruncatedPoisson draws from Poisson(lambda) restricted to [lo, hi],
// hi < 0 meaning no upper bound. Bounded supports are drawn exactly,
// unbounded ones by rejection.
func TruncatedPoisson(d Drawer, lambda float64, lo, hi int, src rand.Source) int {
	p := distuv.Poisson{Lambda: lambda, Src: src}
	if hi >= 0 {
		w := make([]float64, hi-lo+1)
		for x := lo; x <= hi; x++ {
			w[x-lo] = math.Exp(p.LogProb(float64(x)))
		}

		return lo + d.Sample(w)
	}
	for try := 0; try < 10000; try++ {
		if x := int(p.Rand()); x >= lo {
			return x
		}
	}

	return lo
}
