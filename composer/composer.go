// SPDX-License-Identifier: MIT

package composer

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmixt/augdata"
	"github.com/katalvlaran/lvmixt/confint"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/matrix"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/numeric"
	"github.com/katalvlaran/lvmixt/statistic"
)

const (
	// ClassName is the identifier of the latent class variable in data
	// handlers, parameter setters and extractors.
	ClassName = "z_class"

	// PropName is the parameter name of the mixing proportions.
	PropName = "pi"
)

// Phase distinguishes the SEM burn-in from the recorded run.
type Phase int

const (
	// BurnIn iterations only log the completed likelihood.
	BurnIn Phase = iota
	// Run iterations also record parameters and imputations.
	Run
)

// Composer is the latent class part of a mixture model together with the
// registry of per-variable mixtures. It is not safe for concurrent use.
type Composer struct {
	nbInd, nbClass int
	opts           Options
	log            *zap.Logger
	rng            *rand.Rand

	prop []float64
	tik  *matrix.Dense
	zi   *augdata.AugmentedData[int]

	sampler   *ClassSampler
	classStat *classDataStat
	paramStat *confint.ParamStat
	paramStr  string

	mixtures []mixture.Mixture

	completedCache []float64 // log Σ_k of the last E-step, per individual
	lnRow          []float64 // E-step scratch, nbClass long
	burnInLog      []float64
	runLog         []float64

	lastPartition []int
	nStable       int
}

// New returns a Composer for nbInd individuals and nbClass classes with
// uniform prop and tik and every label set to 0.
func New(nbInd, nbClass int, opts ...Option) (*Composer, error) {
	if nbInd <= 0 {
		return nil, ErrInvalidIndividuals
	}
	if nbClass <= 0 {
		return nil, ErrInvalidClasses
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Rand == nil {
		o.Rand = statistic.NewRand(0)
	}
	if o.Drawer == nil {
		o.Drawer = statistic.NewMultinomial(o.Rand)
	}

	tik, err := matrix.NewFilled(nbInd, nbClass, 1/float64(nbClass))
	if err != nil {
		return nil, fmt.Errorf("composer: tik: %w", err)
	}
	zi := augdata.New[int](nbInd)
	zi.SetAllMissing(nbInd)
	zi.SetRange(0, nbClass-1)

	c := &Composer{
		nbInd:          nbInd,
		nbClass:        nbClass,
		opts:           o,
		log:            o.Logger,
		rng:            o.Rand,
		prop:           make([]float64, nbClass),
		tik:            tik,
		zi:             zi,
		paramStat:      confint.NewParamStat(o.ConfidenceLevel),
		paramStr:       fmt.Sprintf("nModality: %d", nbClass),
		completedCache: make([]float64, nbInd),
		lnRow:          make([]float64, nbClass),
	}
	c.resetProp()
	c.sampler = NewClassSampler(zi, tik, o.Drawer)
	c.classStat = newClassDataStat(zi, tik)

	return c, nil
}

func (c *Composer) resetProp() {
	for k := range c.prop {
		c.prop[k] = 1 / float64(c.nbClass)
	}
}

// NbInd returns the number of individuals.
func (c *Composer) NbInd() int { return c.nbInd }

// NbClass returns the number of classes.
func (c *Composer) NbClass() int { return c.nbClass }

// NbVar returns the number of registered mixtures.
func (c *Composer) NbVar() int { return len(c.mixtures) }

// Rand returns the generator of the composer. Mixtures of the same run
// are expected to share it.
func (c *Composer) Rand() *rand.Rand { return c.rng }

// Drawer returns the categorical draw of the class sampler.
func (c *Composer) Drawer() statistic.Drawer { return c.opts.Drawer }

// ConfidenceLevel returns the level of the parameter intervals.
func (c *Composer) ConfidenceLevel() float64 { return c.opts.ConfidenceLevel }

// Prop returns the live proportions.
func (c *Composer) Prop() []float64 { return c.prop }

// Tik returns the live posterior matrix.
func (c *Composer) Tik() *matrix.Dense { return c.tik }

// Zi returns the live latent labels.
func (c *Composer) Zi() *augdata.AugmentedData[int] { return c.zi }

// ParamStat returns the statistics on the proportions.
func (c *Composer) ParamStat() *confint.ParamStat { return c.paramStat }

// ParamStr returns the descriptor of the proportions, "nModality: K".
func (c *Composer) ParamStr() string { return c.paramStr }

// Mixtures returns the registered mixtures in registration order.
func (c *Composer) Mixtures() []mixture.Mixture { return c.mixtures }

// RegisterMixture appends m to the registry.
func (c *Composer) RegisterMixture(m mixture.Mixture) {
	c.mixtures = append(c.mixtures, m)
}

// ParamNames returns "k: 1" … "k: K".
func (c *Composer) ParamNames() []string {
	names := make([]string, c.nbClass)
	for k := range names {
		names[k] = fmt.Sprintf("k: %d", k+numeric.MinModality)
	}

	return names
}

// MixtureNames returns the ids of the registered mixtures.
func (c *Composer) MixtureNames() []string {
	names := make([]string, len(c.mixtures))
	for j, m := range c.mixtures {
		names[j] = m.IDName()
	}

	return names
}

// CompletedProbabilityLog returns, per iteration of the given phase, the
// sum over individuals of the completed log-likelihood of the E-step.
func (c *Composer) CompletedProbabilityLog(p Phase) []float64 {
	if p == BurnIn {
		return c.burnInLog
	}

	return c.runLog
}

// SetDataParam reads every registered mixture and the latent labels. In
// prediction the proportions are read from ps under ClassName / PropName.
func (c *Composer) SetDataParam(h mixture.DataHandler, ps mixture.ParamSetter, mode mixture.RunMode) diag.Log {
	var log diag.Log
	for _, m := range c.mixtures {
		mLog := m.SetDataParam(h, ps, mode)
		if mLog.Empty() && m.NbInd() != c.nbInd {
			mLog.Addf(diag.InputValidation, "Variable %s has %d individuals while %d are expected.\n", m.IDName(), m.NbInd(), c.nbInd)
		}
		log.Append(mLog)
	}
	log.Append(c.SetZi(h))

	if mode == mixture.Prediction {
		log.Append(c.setProportion(ps))
	}

	return log
}

func (c *Composer) setProportion(ps mixture.ParamSetter) diag.Log {
	prop, _, log := ps.GetParam(ClassName, PropName)
	if !log.Empty() {
		return log
	}
	if len(prop) != c.nbClass {
		log.Addf(diag.InputValidation, "The proportions of %s have %d coefficients while the number of class is %d.\n", ClassName, len(prop), c.nbClass)
		return log
	}
	copy(c.prop, prop)
	c.paramStat.SetParamStorage(c.prop)

	return log
}

// SetZi reads the user supplied labels when the handler provides ClassName,
// otherwise every label is missing. Labels are validated against [1, K] on
// input and stored 0-based.
func (c *Composer) SetZi(h mixture.DataHandler) diag.Log {
	var log diag.Log
	if _, ok := h.Info()[ClassName]; !ok {
		c.zi.SetAllMissing(c.nbInd)
		c.zi.SetRange(0, c.nbClass-1)
		return log
	}

	if _, dLog := h.GetDataInt(ClassName, c.zi, -numeric.MinModality); !dLog.Empty() {
		return dLog
	}
	if c.zi.Len() != c.nbInd {
		log.Addf(diag.InputValidation, "Variable %s has %d individuals while %d are expected.\n", ClassName, c.zi.Len(), c.nbInd)
		return log
	}

	accepted := augdata.Accept(augdata.Present, augdata.Missing, augdata.MissingFiniteValues)
	if mis := c.zi.CheckMissingType(accepted); !mis.Empty() {
		log.Addf(diag.InputValidation, "Variable %s contains latent classes and has unsupported missing value types.\n", ClassName)
		log.Append(mis)
	}
	log.Append(c.zi.SortAndCheckMissing())

	c.zi.ComputeRange()
	r := c.zi.DataRange
	if r.HasRange && r.Min < 0 {
		log.Addf(diag.InputValidation,
			"The %s latent class variable has a lowest provided value of: %d while the minimal value has to be: %d. Please check the encoding of this variable to ensure proper bounds.\n",
			ClassName, numeric.MinModality+r.Min, numeric.MinModality)
	}
	if r.HasRange && r.Max > c.nbClass-1 {
		log.Addf(diag.InputValidation,
			"The %s latent class variable has a highest provided value of: %d while the maximal value can not exceed the number of class: %d. Please check the encoding of this variable to ensure proper bounds.\n",
			ClassName, numeric.MinModality+r.Max, numeric.MinModality+c.nbClass-1)
	}
	c.zi.SetRange(0, c.nbClass-1)

	return log
}

// ClassInd returns, for every class, the individuals currently assigned to it.
func (c *Composer) ClassInd() [][]int {
	classInd := make([][]int, c.nbClass)
	for i, k := range c.zi.Data {
		classInd[k] = append(classInd[k], i)
	}

	return classInd
}

// population returns the number of individuals in each class.
func (c *Composer) population() []int {
	pop := make([]int, c.nbClass)
	for _, k := range c.zi.Data {
		pop[k]++
	}

	return pop
}

// SampleZ draws every label from tik without touching the variables.
func (c *Composer) SampleZ() {
	for i := 0; i < c.nbInd; i++ {
		c.sampler.SampleIndividual(i)
	}
}

// SStep draws every label, then the unobserved values of every variable
// given the new label. It returns the smallest class population.
func (c *Composer) SStep() int {
	for i := 0; i < c.nbInd; i++ {
		c.SStepInd(i)
	}

	return slices.Min(c.population())
}

// SStepInd is SStep restricted to individual i.
func (c *Composer) SStepInd(i int) {
	c.sampler.SampleIndividual(i)
	c.sampleUnobservedInd(i)
}

// SampleUnobserved redraws the unobserved values of every variable given
// the current labels.
func (c *Composer) SampleUnobserved() {
	for i := 0; i < c.nbInd; i++ {
		c.sampleUnobservedInd(i)
	}
}

func (c *Composer) sampleUnobservedInd(i int) {
	k := c.zi.Data[i]
	for _, m := range c.mixtures {
		m.SampleUnobserved(i, k)
	}
}

// SStepNbAttempts repeats SStep until every class holds at least
// MinIndPerClass individuals. After maxAttempts failed draws the returned
// log is non-empty.
func (c *Composer) SStepNbAttempts(maxAttempts int) diag.Log {
	var log diag.Log
	var minPop int
	for n := 0; n < maxAttempts; n++ {
		minPop = c.SStep()
		if minPop >= c.opts.MinIndPerClass {
			return log
		}
		c.log.Debug("s-step produced an under-populated class",
			zap.Int("attempt", n), zap.Int("minPopulation", minPop))
	}
	log.Addf(diag.Degenerate,
		"The latent class sampling failed to populate every class with at least %d individual(s) after %d attempts. The smallest class contains %d individual(s). Try a lower number of classes.\n",
		c.opts.MinIndPerClass, maxAttempts, minPop)

	return log
}

// lnCompleted returns log(prop[k]) + Σ_j lnCompleted_j(i, k).
func (c *Composer) lnCompleted(i, k int) float64 {
	sum := math.Log(c.prop[k])
	for _, m := range c.mixtures {
		sum += m.LnCompletedProbability(i, k)
	}

	return sum
}

// lnObserved returns log(prop[k]) + Σ_j lnObserved_j(i, k).
func (c *Composer) lnObserved(i, k int) float64 {
	sum := math.Log(c.prop[k])
	for _, m := range c.mixtures {
		sum += m.LnObservedProbability(i, k)
	}

	return sum
}

// EStep recomputes tik from the completed data.
func (c *Composer) EStep() {
	for i := 0; i < c.nbInd; i++ {
		c.EStepInd(i)
	}
}

// EStepInd recomputes row i of tik from the completed data.
func (c *Composer) EStepInd(i int) {
	for k := range c.lnRow {
		c.lnRow[k] = c.lnCompleted(i, k)
	}
	c.completedCache[i], _ = matrix.LogToMulti(c.lnRow, c.tik.Row(i))
}

// EStepObserved recomputes tik from the observed data only, marginalising
// the missing values. Individuals with a zero density in every class are
// reported.
func (c *Composer) EStepObserved() diag.Log {
	var zero diag.Log
	lnComp := make([]float64, c.nbClass)
	for i := 0; i < c.nbInd; i++ {
		for k := range lnComp {
			lnComp[k] = c.lnObserved(i, k)
		}
		if lnNorm, _ := matrix.LogToMulti(lnComp, c.tik.Row(i)); math.IsInf(lnNorm, -1) {
			zero.Addf(diag.Numerical, "Observation %d has a 0 density of probability.\n", i)
		}
	}
	if zero.Empty() {
		return zero
	}

	var log diag.Log
	log.Add(diag.Numerical, "Error in the observed E-step:\n")
	log.Append(zero)

	return log
}

// PStep sets prop to the label frequencies.
func (c *Composer) PStep() {
	pop := c.population()
	for k, n := range pop {
		c.prop[k] = float64(n) / float64(c.nbInd)
	}
}

// MapStep sets every unsupervised label to the most probable class.
func (c *Composer) MapStep() {
	for i := 0; i < c.nbInd; i++ {
		c.MapStepInd(i)
	}
}

// MapStepInd sets label i to the most probable class, lowest k on ties.
// User supplied labels are kept and a finite candidate set restricts the
// choice.
func (c *Composer) MapStepInd(i int) {
	mv := c.zi.MisData[i]
	switch mv.Type {
	case augdata.Present:
		return
	case augdata.MissingFiniteValues:
		c.zi.Data[i] = argMaxAmong(c.tik.Row(i), mv.Values)
	default:
		c.zi.Data[i], _ = matrix.ArgMax(c.tik.Row(i))
	}
}

// argMaxAmong returns the candidate with the largest p, lowest on ties.
func argMaxAmong(p []float64, candidates []int) int {
	if len(candidates) == 0 {
		k, _ := matrix.ArgMax(p)
		return k
	}
	best := candidates[0]
	for _, k := range candidates[1:] {
		if p[k] > p[best] || (p[k] == p[best] && k < best) {
			best = k
		}
	}

	return best
}

// MStep runs the P-step and the M-step of every mixture.
func (c *Composer) MStep() diag.Log {
	c.PStep()
	classInd := c.ClassInd()

	var log diag.Log
	for _, m := range c.mixtures {
		log.Append(m.MStep(classInd))
	}

	return log
}

// CheckNbIndPerClass reports an empty class.
func (c *Composer) CheckNbIndPerClass() diag.Log {
	var log diag.Log
	if slices.Min(c.population()) == 0 {
		log.Add(diag.Degenerate, "At least one class is empty. Maybe you provided more classes than individuals, or the constraints on the classes of the observations are too tight.\n")
	}

	return log
}

// CheckSampleCondition checks the class populations and the per-variable
// sample conditions.
func (c *Composer) CheckSampleCondition() diag.Log {
	log := c.CheckNbIndPerClass()
	if !log.Empty() {
		return log
	}
	classInd := c.ClassInd()
	for _, m := range c.mixtures {
		log.Append(m.CheckSampleCondition(classInd))
	}

	return log
}

// InitData draws uniform labels and a model-free imputation of every
// variable.
func (c *Composer) InitData() {
	c.tik.Fill(1 / float64(c.nbClass))
	c.SampleZ()
	for _, m := range c.mixtures {
		for i := 0; i < c.nbInd; i++ {
			m.InitData(i)
		}
	}
}

// InitParam resets the proportions to uniform and initialises every
// mixture from a sub-partition holding at most nInitPerClass randomly
// chosen individuals of each class.
func (c *Composer) InitParam(nInitPerClass int) diag.Log {
	c.resetProp()

	classInd := c.ClassInd()
	sub := make([][]int, c.nbClass)
	for k, ind := range classInd {
		if len(ind) <= nInitPerClass {
			sub[k] = ind
			continue
		}
		picked := make([]int, nInitPerClass)
		for p, q := range c.rng.Perm(len(ind))[:nInitPerClass] {
			picked[p] = ind[q]
		}
		slices.Sort(picked)
		sub[k] = picked
	}

	var log diag.Log
	for _, m := range c.mixtures {
		if mLog := m.InitParam(sub); !mLog.Empty() {
			log.Addf(diag.Degenerate, "Error(s) in variable: %s:\n", m.IDName())
			log.Append(mLog)
		}
	}

	return log
}

// InitializeLatent starts a Markov chain from known parameters: observed
// E-step, then labels and unobserved values drawn from it. Callers that
// need populated classes follow with CheckSampleCondition.
func (c *Composer) InitializeLatent() diag.Log {
	if log := c.EStepObserved(); !log.Empty() {
		c.log.Debug("observed e-step found individuals with zero density", zap.Int("count", log.Len()-1))
		return log
	}
	c.SStep()

	return diag.Log{}
}

// NbFreeParameters returns K-1 plus the free parameters of every mixture.
func (c *Composer) NbFreeParameters() int {
	sum := c.nbClass - 1
	for _, m := range c.mixtures {
		sum += m.NbFreeParameters()
	}

	return sum
}

// LnObservedLikelihood returns Σ_i log Σ_k prop[k] p(x_i | k), with the
// missing values marginalised.
func (c *Composer) LnObservedLikelihood() float64 {
	var sum float64
	row := make([]float64, c.nbClass)
	for i := 0; i < c.nbInd; i++ {
		for k := range row {
			row[k] = c.lnObserved(i, k)
		}
		sum += matrix.LogSumExp(row)
	}

	return sum
}

// LnCompletedLikelihood returns Σ_i log Σ_k prop[k] p(x_i | k) on the
// completed data.
func (c *Composer) LnCompletedLikelihood() float64 {
	var sum float64
	row := make([]float64, c.nbClass)
	for i := 0; i < c.nbInd; i++ {
		for k := range row {
			row[k] = c.lnCompleted(i, k)
		}
		sum += matrix.LogSumExp(row)
	}

	return sum
}

// StoreSEMRun records iteration of iterationMax. Both phases log the
// completed likelihood of the last E-step. The run phase also records the
// parameters and the imputations of every mixture, and at iterationMax
// replaces the proportions by their median.
func (c *Composer) StoreSEMRun(iteration, iterationMax int, p Phase) {
	lnComp := floats.Sum(c.completedCache)
	switch p {
	case BurnIn:
		if iteration == 0 {
			c.burnInLog = c.burnInLog[:0]
		}
		c.burnInLog = append(c.burnInLog, lnComp)
		return
	case Run:
		if iteration == 0 {
			c.runLog = c.runLog[:0]
		}
		c.runLog = append(c.runLog, lnComp)
	}

	for _, m := range c.mixtures {
		m.StoreSEMRun(iteration, iterationMax)
		for i := 0; i < c.nbInd; i++ {
			m.StoreGibbsRun(i, iteration, iterationMax)
		}
	}
	c.paramStat.SampleParam(iteration, iterationMax, c.prop)
	if iteration == iterationMax {
		c.paramStat.NormalizeParam(c.nbClass)
		copy(c.prop, c.paramStat.Expectation())
	}
}

// StoreGibbsRun records the label and the imputations of individual i.
func (c *Composer) StoreGibbsRun(i, iteration, iterationMax int) {
	c.classStat.sampleVals(i, iteration, iterationMax)
	for _, m := range c.mixtures {
		m.StoreGibbsRun(i, iteration, iterationMax)
	}
}

// ResetStability forgets the partition history used by PartitionStable.
func (c *Composer) ResetStability() {
	c.lastPartition = nil
	c.nStable = 0
}

// PartitionStable compares the labels with those of the previous call.
// It returns true once more than ratio of the labels stayed identical
// for n consecutive calls.
func (c *Composer) PartitionStable(ratio float64, n int) bool {
	if c.lastPartition != nil {
		same := 0
		for i, k := range c.zi.Data {
			if c.lastPartition[i] == k {
				same++
			}
		}
		if ratio < float64(same)/float64(c.nbInd) {
			c.nStable++
		} else {
			c.nStable = 0
		}
	}
	c.lastPartition = slices.Clone(c.zi.Data)

	return n <= c.nStable
}

// ExportDataParam hands the labels, tik and the proportions to the
// extractors, then every mixture in registration order.
func (c *Composer) ExportDataParam(dx mixture.DataExtractor, px mixture.ParamExtractor) {
	dx.ExportClasses(ClassName, c.zi.Data, c.tik)
	px.ExportParam(ClassName, PropName, c.paramStat, c.ParamNames(), c.paramStr)
	for _, m := range c.mixtures {
		m.ExportDataParam(dx, px)
	}
}
