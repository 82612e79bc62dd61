package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/logging"
)

type Simulator struct {
	sys        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *slog.Logger
}

// New builds a simulator. A nil logger discards output.
func New(sys dynamo.System, integrator dynamo.Integrator, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     logger,
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over [0, 1] and returns cfg.Samples evenly spaced
// states. Non-finite or out-of-limit states abort with *dynamo.DivergedError;
// no partial trajectory is returned.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrValidation, err)
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system expects %d",
			dynamo.ErrValidation, len(x0), s.sys.StateDim())
	}
	if !x0.IsValid() {
		return nil, &dynamo.DivergedError{State: x0.Clone(), Reason: "initial state is not finite"}
	}

	grid := dynamo.Grid(cfg.Samples)
	result := &dynamo.Result{
		Trajectory: dynamo.Trajectory{
			Times:  grid,
			States: make([]dynamo.State, 0, len(grid)),
		},
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	s.record(result, 0, x)

	adaptive, isAdaptive := s.integrator.(dynamo.AdaptiveIntegrator)
	dt := 0.25 / float64(cfg.Samples-1)
	t := 0.0

	for i := 1; i < len(grid); i++ {
		target := grid[i]

		if isAdaptive {
			for t < target {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if result.StepsTaken+result.StepsRejected >= cfg.MaxSteps {
					return nil, s.diverged(result.StepsTaken, t, x, "step budget exhausted")
				}

				h := math.Min(dt, target-t)
				truncated := h < dt
				xNew, dtNext, err := adaptive.StepAdaptive(s.sys, x, t, h, cfg.Tolerance)
				if errors.Is(err, dynamo.ErrStepRejected) {
					result.StepsRejected++
					dt = dtNext
					if dt < cfg.MinDt {
						return nil, s.diverged(result.StepsTaken, t, x, "step size underflow")
					}
					continue
				}
				if err != nil {
					return nil, s.diverged(result.StepsTaken, t, x, err.Error())
				}

				x = xNew
				if truncated {
					t = target
					dt = math.Max(dt, dtNext)
				} else {
					t += h
					dt = dtNext
				}
				result.StepsTaken++
				s.logger.Log(ctx, logging.LevelTrace, "step accepted", "t", t, "dt", h)

				if reason := s.check(x, cfg); reason != "" {
					return nil, s.diverged(result.StepsTaken, t, x, reason)
				}
			}
		} else {
			h := (target - grid[i-1]) / float64(cfg.Substeps)
			for k := 0; k < cfg.Substeps; k++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				x = s.integrator.Step(s.sys, x, t, h)
				t += h
				result.StepsTaken++

				if reason := s.check(x, cfg); reason != "" {
					return nil, s.diverged(result.StepsTaken, t, x, reason)
				}
			}
			t = target
		}

		s.record(result, i, x)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("integration finished",
		"samples", len(grid),
		"steps", result.StepsTaken,
		"rejected", result.StepsRejected)

	return result, nil
}

func (s *Simulator) record(result *dynamo.Result, i int, x dynamo.State) {
	t := result.Times[i]
	result.States = append(result.States, x.Clone())
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnSample(i, x, t)
	}
}

func (s *Simulator) check(x dynamo.State, cfg dynamo.Config) string {
	if !x.IsValid() {
		return "invalid state (NaN/Inf)"
	}
	if m := x.MaxAbs(); m > cfg.DivergenceLimit {
		return fmt.Sprintf("state magnitude %.3g exceeds limit %.3g", m, cfg.DivergenceLimit)
	}
	return ""
}

func (s *Simulator) diverged(step int, t float64, x dynamo.State, reason string) error {
	s.logger.Warn("simulation diverged", "step", step, "t", t, "reason", reason)
	return &dynamo.DivergedError{Step: step, Time: t, State: x.Clone(), Reason: reason}
}
