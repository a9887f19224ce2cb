// SPDX-License-Identifier: MIT

package composer

import (
	"math"

	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/numeric"
)

// BIC returns lnObs - 0.5·nbFree·ln(nbInd).
func BIC(lnObservedLikelihood float64, nbFreeParameters, nbInd int) float64 {
	return lnObservedLikelihood - 0.5*float64(nbFreeParameters)*math.Log(float64(nbInd))
}

// ICL returns lnComp - 0.5·nbFree·ln(nbInd).
func ICL(lnCompletedLikelihood float64, nbFreeParameters, nbInd int) float64 {
	return lnCompletedLikelihood - 0.5*float64(nbFreeParameters)*math.Log(float64(nbInd))
}

// BIC evaluates the criterion on the current state.
func (c *Composer) BIC() float64 {
	return BIC(c.LnObservedLikelihood(), c.NbFreeParameters(), c.nbInd)
}

// ICL evaluates the criterion on the current state.
func (c *Composer) ICL() float64 {
	return ICL(c.LnCompletedLikelihood(), c.NbFreeParameters(), c.nbInd)
}

// LnProbaGivenClass returns the N×K matrix of Σ_j lnObserved_j(i, k),
// the observed log-density of each individual given its class.
func (c *Composer) LnProbaGivenClass() *matrix.Dense {
	out, _ := matrix.NewDense(c.nbInd, c.nbClass)
	for i := 0; i < c.nbInd; i++ {
		row := out.Row(i)
		for k := range row {
			for _, m := range c.mixtures {
				row[k] += m.LnObservedProbability(i, k)
			}
		}
	}

	return out
}

// perVariableTik returns the posterior of every class for individual i
// using variable j alone.
func (c *Composer) perVariableTik(i, j int, out []float64) {
	for k := range out {
		out[k] = math.Log(c.prop[k]) + c.mixtures[j].LnObservedProbability(i, k)
	}
	_, _ = matrix.LogToMulti(out, out)
}

// IDClass returns the K×J matrix of class discrimination by variable: the
// entropy of the single variable posteriors, summed over individuals and
// normalised by N·ln(K). With a single class every entry is 1.
func (c *Composer) IDClass() *matrix.Dense {
	nbVar := len(c.mixtures)
	if nbVar == 0 {
		return nil
	}
	if c.nbClass == 1 {
		out, _ := matrix.NewFilled(c.nbClass, nbVar, 1)
		return out
	}

	out, _ := matrix.NewDense(c.nbClass, nbVar)
	t := make([]float64, c.nbClass)
	for i := 0; i < c.nbInd; i++ {
		for j := 0; j < nbVar; j++ {
			c.perVariableTik(i, j, t)
			for k, p := range t {
				if p > numeric.Epsilon {
					v, _ := out.At(k, j)
					_ = out.Set(k, j, v-p*math.Log(p))
				}
			}
		}
	}

	den := float64(c.nbInd) * math.Log(float64(c.nbClass))
	out.Apply(func(_, _ int, v float64) float64 { return v / den })

	return out
}

// Delta returns the symmetric J×J matrix of distances between variables:
// the root mean square difference of their single variable posteriors.
func (c *Composer) Delta() *matrix.Dense {
	nbVar := len(c.mixtures)
	if nbVar == 0 {
		return nil
	}
	out, _ := matrix.NewDense(nbVar, nbVar)
	t := make([][]float64, nbVar)
	for j := range t {
		t[j] = make([]float64, c.nbClass)
	}

	for i := 0; i < c.nbInd; i++ {
		for j := 0; j < nbVar; j++ {
			c.perVariableTik(i, j, t[j])
		}
		for j := 0; j < nbVar; j++ {
			for h := j + 1; h < nbVar; h++ {
				var d float64
				for k := 0; k < c.nbClass; k++ {
					diff := t[j][k] - t[h][k]
					d += diff * diff
				}
				v, _ := out.At(j, h)
				_ = out.Set(j, h, v+d)
			}
		}
	}

	for j := 0; j < nbVar; j++ {
		for h := j + 1; h < nbVar; h++ {
			v, _ := out.At(j, h)
			v = math.Sqrt(v / float64(c.nbInd))
			_ = out.Set(j, h, v)
			_ = out.Set(h, j, v)
		}
	}

	return out
}
