package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/aviasim/internal/config"
	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/logging"
	"github.com/san-kum/aviasim/internal/scenario"
	"github.com/san-kum/aviasim/internal/sim"
)

// Outcome is everything one run produced, ready for display or export.
type Outcome struct {
	ID         string
	Mode       scenario.Mode
	Integrator string
	Scenario   *scenario.Scenario
	Result     *dynamo.Result
	Panel      *display.Panel
	Started    time.Time
	Elapsed    time.Duration
}

// Experiment runs the full pipeline for one configuration: build the
// scenario, integrate it and prepare the display panel.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Experiment {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   logger,
	}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Scenario builds the scenario the configuration describes, jitter included.
func (e *Experiment) Scenario() (*scenario.Scenario, scenario.Mode, error) {
	mode, err := scenario.ParseMode(e.cfg.Scenario.Mode)
	if err != nil {
		return nil, mode, err
	}
	opts, err := e.cfg.BuilderOptions()
	if err != nil {
		return nil, mode, err
	}
	b := scenario.NewBuilder(append(opts, scenario.WithLogger(e.logger))...)

	sc, err := b.Build(mode, e.cfg.Scenario.Overrides)
	if err != nil {
		return nil, mode, err
	}
	if e.cfg.Scenario.Jitter > 0 {
		sc, err = b.Jitter(sc, mode, e.cfg.Scenario.Jitter)
		if err != nil {
			return nil, mode, err
		}
	}
	return sc, mode, nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrValidation, err)
	}
	opts, err := e.cfg.DisplayOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrValidation, err)
	}

	sc, mode, err := e.Scenario()
	if err != nil {
		return nil, err
	}
	return e.RunScenario(ctx, sc, mode, e.cfg.Integrator, opts)
}

// RunScenario integrates an already built scenario with the named
// integrator under the configured timeout and wraps the result in an Outcome.
func (e *Experiment) RunScenario(ctx context.Context, sc *scenario.Scenario, mode scenario.Mode, integratorName string, opts display.Options) (*Outcome, error) {
	integrator, err := e.registry.GetIntegrator(integratorName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrValidation, err)
	}

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	id := uuid.NewString()
	log := e.logger.With("run", id)
	log.Info("run started", "mode", mode, "integrator", integratorName, "samples", e.cfg.Samples)

	s := sim.New(sc.System(), integrator, log)
	for _, m := range e.registry.DefaultMetrics(sc) {
		s.AddMetric(m)
	}
	if log.Enabled(ctx, logging.LevelTrace) {
		s.AddObserver(&sampleTrace{ctx: ctx, log: log})
	}

	start := time.Now()
	result, err := s.Run(ctx, sc.State(), e.cfg.SimConfig())
	if err != nil {
		log.Error("run failed", "err", err)
		return nil, err
	}
	elapsed := time.Since(start)

	log.Info("run finished",
		"elapsed", elapsed,
		"steps", result.StepsTaken,
		"rejected", result.StepsRejected,
		"breaches", result.Metrics["restriction_breaches"],
	)

	return &Outcome{
		ID:         id,
		Mode:       mode,
		Integrator: integratorName,
		Scenario:   sc,
		Result:     result,
		Panel:      display.Build(sc, &result.Trajectory, opts),
		Started:    start,
		Elapsed:    elapsed,
	}, nil
}

// sampleTrace logs every recorded grid sample at trace level.
type sampleTrace struct {
	ctx context.Context
	log *slog.Logger
}

func (st *sampleTrace) OnSample(i int, x dynamo.State, t float64) {
	st.log.Log(st.ctx, logging.LevelTrace, "sample recorded", "i", i, "t", t, "state", []float64(x))
}
