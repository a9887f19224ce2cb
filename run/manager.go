// SPDX-License-Identifier: MIT

package run

import (
	"github.com/katalvlaran/lvmixt/composer"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/mixture/categorical"
	"github.com/katalvlaran/lvmixt/mixture/gaussian"
	"github.com/katalvlaran/lvmixt/mixture/poisson"
)

// Models lists the model names a variable can be described with.
var Models = []string{categorical.ModelName, gaussian.ModelName, poisson.ModelName}

// newMixture builds the mixture of one variable, or returns nil for an
// unknown model. Every mixture draws from the composer generator.
func newMixture(c *composer.Composer, id, model string) mixture.Mixture {
	switch model {
	case categorical.ModelName:
		return categorical.New(id, c.NbClass(), c.ConfidenceLevel(), c.Drawer(), c.Rand())
	case gaussian.ModelName:
		return gaussian.New(id, c.NbClass(), c.ConfidenceLevel(), c.Rand())
	case poisson.ModelName:
		return poisson.New(id, c.NbClass(), c.ConfidenceLevel(), c.Drawer(), c.Rand())
	default:
		return nil
	}
}

// createMixtures registers one mixture per variable, in request order.
// The latent class variable is read by the composer itself.
func createMixtures(c *composer.Composer, vars []jsonio.Variable) diag.Log {
	var log diag.Log
	for _, v := range vars {
		if v.ID == composer.ClassName {
			continue
		}
		m := newMixture(c, v.ID, v.Model)
		if m == nil {
			log.Addf(diag.InputValidation, "The model %s has been selected to describe the variable %s but it is not implemented yet. Please choose an available model for this variable.\n", v.Model, v.ID)
			continue
		}
		c.RegisterMixture(m)
	}
	if log.Empty() && c.NbVar() == 0 {
		log.Add(diag.InputValidation, "No valid variable in the input. Please check the descriptor file.\n")
	}

	return log
}
