// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmixt/composer"
	"github.com/katalvlaran/lvmixt/diag"
	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/strategy"
)

// LatentClassType is the type reported for the latent class variable.
const LatentClassType = "LatentClass"

// Execute dispatches req to Learn or Predict according to its mode.
func Execute(ctx context.Context, req *jsonio.Request, opts ...Option) (*jsonio.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	mode, err := req.RunMode()
	if err != nil {
		return nil, err
	}
	if mode == mixture.Prediction {
		return Predict(ctx, req, opts...)
	}

	return Learn(ctx, req, opts...)
}

// Learn estimates a mixture on the variables of req and exports the best
// of NbTrialInInit independent trials. Statistical failures are reported
// in the warnLog of the Response; the error is only set for a nil request
// or a cancelled ctx.
func Learn(ctx context.Context, req *jsonio.Request, opts ...Option) (*jsonio.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	r := newRunner(req, mixture.Learning, opts)
	if log := r.validate(); !log.Empty() {
		return r.fail(log), nil
	}

	so := strategy.Apply(r.sopts...)
	best, trials, err := strategy.BestOf(ctx, so.NbTrialInInit, so.Parallelism, r.learnTrial)
	if err != nil {
		return nil, fmt.Errorf("run: learn: %w", err)
	}
	if best < 0 {
		return r.fail(trials[0].Log), nil
	}
	r.log.Info("trial selected",
		zap.Int("trial", best),
		zap.Int("trials", len(trials)),
		zap.Float64("lnObservedLikelihood", trials[best].Score))

	return r.export(trials[best].Value), nil
}

// Predict classifies the variables of req with the parameters of the
// learning Response held in req.Param.
func Predict(ctx context.Context, req *jsonio.Request, opts ...Option) (*jsonio.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	r := newRunner(req, mixture.Prediction, opts)
	log := r.validate()

	var ps *jsonio.ParamSetter
	if len(req.Param) == 0 {
		log.Add(diag.InputValidation, "No parameters provided for prediction. The param field must hold the output of a learning run.\n")
	} else {
		var err error
		if ps, err = jsonio.NewParamSetter(req.Param); err != nil {
			log.Add(diag.InputValidation, "The param field is not a valid learning output.\n")
		}
	}
	if !log.Empty() {
		return r.fail(log), nil
	}

	c, log := r.read(r.seed, ps, r.log)
	if !log.Empty() {
		return r.fail(log), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run: predict: %w", err)
	}

	gibbs, err := strategy.NewGibbsStrategy(c, mixture.Prediction, r.sopts...)
	if err != nil {
		return r.fail(diag.FromErr(diag.InputValidation, err)), nil
	}
	if log = gibbs.Run(); !log.Empty() {
		return r.fail(log), nil
	}

	return r.export(c), nil
}

// runner carries the state shared by the phases of one request.
type runner struct {
	req     *jsonio.Request
	mode    mixture.RunMode
	seed    uint64
	start   time.Time
	log     *zap.Logger
	handler *jsonio.DataHandler
	sopts   []strategy.Option
	resp    *jsonio.Response
}

func newRunner(req *jsonio.Request, mode mixture.RunMode, opts []Option) *runner {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var seed uint64
	switch {
	case o.Seed != nil:
		seed = *o.Seed
	case req.Seed != nil:
		seed = *req.Seed
	default:
		seed = rand.Uint64()
	}

	runID := uuid.NewString()
	log := o.Logger.With(zap.String("run_id", runID), zap.String("mode", mode.String()))
	log.Info("run started", zap.Int("variables", len(req.Variables)), zap.Int("nbClass", req.NbClass), zap.Uint64("seed", seed))

	return &runner{
		req:     req,
		mode:    mode,
		seed:    seed,
		start:   time.Now(),
		log:     log,
		handler: jsonio.NewDataHandler(req.Variables),
		sopts:   strategyOptions(req.MCStrategy, o.Parallelism, log),
		resp: &jsonio.Response{
			Strategy: req.MCStrategy,
			Mixture: jsonio.MixtureOutput{
				RunID:       runID,
				InputDigest: Digest(req.Variables),
				Mode:        mode.String(),
				Seed:        seed,
			},
		},
	}
}

// strategyOptions maps the request fields on the strategy options. Zero
// fields keep the defaults.
func strategyOptions(sp jsonio.StrategyParam, parallelism int, log *zap.Logger) []strategy.Option {
	d := strategy.DefaultOptions()
	opts := []strategy.Option{
		strategy.WithLogger(log),
		strategy.WithParallelism(parallelism),
		strategy.WithSEM(orDefault(sp.NbBurnInIter, d.NbBurnInIter), orDefault(sp.NbIter, d.NbIter)),
		strategy.WithGibbs(orDefault(sp.NbGibbsBurnInIter, d.NbGibbsBurnInIter), orDefault(sp.NbGibbsIter, d.NbGibbsIter)),
		strategy.WithNInitPerClass(orDefault(sp.NInitPerClass, d.NInitPerClass)),
		strategy.WithNSemTry(orDefault(sp.NSemTry, d.NSemTry)),
		strategy.WithNbTrialInInit(orDefault(sp.NbTrialInInit, d.NbTrialInInit)),
	}
	if sp.NStableCriterion > 0 {
		ratio := sp.RatioStableCriterion
		if ratio == 0 {
			ratio = d.RatioStableCriterion
		}
		opts = append(opts, strategy.WithStableCriterion(ratio, sp.NStableCriterion))
	}

	return opts
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}

	return v
}

// validate is the first phase: settings and raw variables.
func (r *runner) validate() diag.Log {
	var log diag.Log
	if r.req.NbClass < 1 {
		log.Addf(diag.InputValidation, "The number of classes must be at least 1, while %d was provided.\n", r.req.NbClass)
	}
	if lvl := r.req.ConfidenceLevel; !(lvl > 0 && lvl <= 1) {
		log.Addf(diag.InputValidation, "The confidence level must be in (0, 1], while %g was provided.\n", lvl)
	}
	if err := strategy.Apply(r.sopts...).Validate(); err != nil {
		log.Addf(diag.InputValidation, "Invalid strategy parameters: %v.\n", err)
	}
	if len(r.req.Variables) == 0 {
		log.Add(diag.InputValidation, "No valid data provided. Please check the data provided in input.\n")
	}
	log.Append(r.handler.ListData())

	return log
}

// read is the second phase: one composer with its mixtures, filled from
// the handler.
func (r *runner) read(seed uint64, ps mixture.ParamSetter, log *zap.Logger) (*composer.Composer, diag.Log) {
	c, err := composer.New(r.handler.NbSample(), r.req.NbClass,
		composer.WithSeed(seed),
		composer.WithConfidenceLevel(r.req.ConfidenceLevel),
		composer.WithLogger(log))
	if err != nil {
		return nil, diag.FromErr(diag.InputValidation, err)
	}
	if l := createMixtures(c, r.req.Variables); !l.Empty() {
		return nil, l
	}

	return c, c.SetDataParam(r.handler, ps, r.mode)
}

// learnTrial reads, estimates and refines one independent composer.
func (r *runner) learnTrial(ctx context.Context, n int) strategy.Trial[*composer.Composer] {
	log := r.log.With(zap.Int("trial", n))
	failed := func(l diag.Log) strategy.Trial[*composer.Composer] {
		log.Debug("trial failed", zap.String("warnLog", l.String()))
		return strategy.Trial[*composer.Composer]{Score: math.NaN(), Log: l}
	}

	c, l := r.read(r.seed+uint64(n), nil, log)
	if !l.Empty() {
		return failed(l)
	}

	opts := append(append([]strategy.Option(nil), r.sopts...), strategy.WithLogger(log))
	sem, err := strategy.NewSemStrategy(c, opts...)
	if err != nil {
		return failed(diag.FromErr(diag.InputValidation, err))
	}
	if l = sem.Run(); !l.Empty() {
		return failed(l)
	}
	if err := ctx.Err(); err != nil {
		return failed(diag.FromErr(diag.InputValidation, err))
	}

	gibbs, err := strategy.NewGibbsStrategy(c, mixture.Learning, opts...)
	if err != nil {
		return failed(diag.FromErr(diag.InputValidation, err))
	}
	if l = gibbs.Run(); !l.Empty() {
		return failed(l)
	}

	score := c.LnObservedLikelihood()
	log.Debug("trial done", zap.Float64("lnObservedLikelihood", score))

	return strategy.Trial[*composer.Composer]{Value: c, Score: score}
}

// fail closes a stopped run.
func (r *runner) fail(log diag.Log) *jsonio.Response {
	r.resp.Mixture.WarnLog = log.String()
	r.resp.Mixture.RunTime = time.Since(r.start).Seconds()
	r.log.Warn("run stopped", zap.Int("diagnostics", log.Len()), zap.Error(log.Err()))

	return r.resp
}

// export is the last phase.
func (r *runner) export(c *composer.Composer) *jsonio.Response {
	e := jsonio.NewExtractor()
	c.ExportDataParam(e, e)

	m := &r.resp.Mixture
	nbFree := c.NbFreeParameters()
	lnObs, lnComp := c.LnObservedLikelihood(), c.LnCompletedLikelihood()
	m.NbInd = c.NbInd()
	m.NbSample = r.handler.NbSample()
	m.NbCluster = c.NbClass()
	m.NbFreeParameters = nbFree
	m.LnObservedLikelihood = jsonio.Float(lnObs)
	m.LnCompletedLikelihood = jsonio.Float(lnComp)
	m.BIC = jsonio.Float(composer.BIC(lnObs, nbFree, c.NbInd()))
	m.ICL = jsonio.Float(composer.ICL(lnComp, nbFree, c.NbInd()))

	names := c.MixtureNames()
	idc := jsonio.NewNamedMatrix(c.IDClass(), c.ParamNames(), names)
	pgc := jsonio.NewNamedMatrix(c.LnProbaGivenClass(), nil, c.ParamNames())
	delta := jsonio.NewNamedMatrix(c.Delta(), names, names)
	m.IDClass, m.LnProbaGivenClass, m.Delta = &idc, &pgc, &delta
	m.CompletedProbabilityLogBurnIn = jsonio.Floats(c.CompletedProbabilityLog(composer.BurnIn))
	m.CompletedProbabilityLogRun = jsonio.Floats(c.CompletedProbabilityLog(composer.Run))

	types := r.handler.ReturnType()
	if _, ok := types[composer.ClassName]; !ok {
		types[composer.ClassName] = LatentClassType
	}
	r.resp.Variable = e.Output(types)
	m.RunTime = time.Since(r.start).Seconds()

	r.log.Info("run done",
		zap.Float64("lnObservedLikelihood", lnObs),
		zap.Float64("BIC", float64(m.BIC)),
		zap.Float64("runTime", m.RunTime))

	return r.resp
}
