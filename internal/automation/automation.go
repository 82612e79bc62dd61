// Package automation runs many scenarios in sequence: one-field sweeps and
// seeded random ensembles.
package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/san-kum/aviasim/internal/config"
	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/experiment"
)

// ParameterSweep varies one override field, such as "u1" or "f1_k", over an
// evenly spaced range while everything else follows Base.
type ParameterSweep struct {
	Base     *config.Config
	Field    string
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	Value       float64
	FinalState  dynamo.State
	Breaches    float64
	FirstBreach float64
	Err         error
}

func (s *ParameterSweep) Validate() error {
	if s.Field == "" {
		return fmt.Errorf("sweep field is required")
	}
	if s.NumSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", s.NumSteps)
	}
	if s.Max < s.Min {
		return fmt.Errorf("sweep max %g is below min %g", s.Max, s.Min)
	}
	return nil
}

// isParamField reports whether field names a driver or coupling parameter
// rather than an initial value or restriction.
func isParamField(field string) bool {
	return strings.HasPrefix(field, "fak") || (strings.HasPrefix(field, "f") && strings.Contains(field, "_"))
}

// RunSweep runs one simulation per sweep value. A run that fails validation
// or diverges is recorded with its error and the sweep continues; context
// errors stop the sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		value := sweep.Min + float64(i)*paramStep

		cfg := cloneConfig(sweep.Base)
		cfg.Scenario.Mode = "override"
		cfg.Scenario.Overrides[sweep.Field] = strconv.FormatFloat(value, 'f', -1, 64)
		if isParamField(sweep.Field) {
			cfg.Scenario.AcceptParams = true
		}

		out, err := experiment.New(cfg, logger).Run(ctx)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		res := SweepResult{Value: value, Err: err}
		if err == nil {
			res.FinalState = out.Result.States[out.Result.Len()-1]
			res.Breaches = out.Result.Metrics["restriction_breaches"]
			res.FirstBreach = out.Result.Metrics["first_breach_time"]
		}
		results = append(results, res)

		logger.Debug("sweep step", "step", i+1, "of", sweep.NumSteps, "field", sweep.Field, "value", value, "err", err)
	}

	return results, nil
}

// MonteCarloConfig runs NumTrials scenarios in random mode with seeds
// Seed, Seed+1, ... so any trial can be replayed on its own.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
}

type MonteCarloResult struct {
	TrialID    int
	Seed       int64
	InitState  dynamo.State
	FinalState dynamo.State
	// Breached is true when any indicator exceeded its restriction.
	Breached bool
	Err      error
}

func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, logger *slog.Logger) ([]MonteCarloResult, error) {
	if mc.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least 1 trial, got %d", mc.NumTrials)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]MonteCarloResult, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		cfg := cloneConfig(mc.Base)
		cfg.Scenario.Mode = "random"
		cfg.Scenario.Seed = mc.Seed + int64(trial)

		out, err := experiment.New(cfg, logger).Run(ctx)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		res := MonteCarloResult{TrialID: trial, Seed: cfg.Scenario.Seed, Err: err}
		if err == nil {
			res.InitState = out.Result.States[0]
			res.FinalState = out.Result.States[out.Result.Len()-1]
			res.Breached = out.Result.Metrics["restriction_breaches"] > 0
		}
		results = append(results, res)

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo progress", "done", trial+1, "of", mc.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts trials that breached a restriction, stayed clear,
// or failed to run.
func MonteCarloStats(results []MonteCarloResult) (breached, clear, failed int) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Breached:
			breached++
		default:
			clear++
		}
	}
	return
}

func cloneConfig(base *config.Config) *config.Config {
	if base == nil {
		base = config.DefaultConfig()
	}
	cfg := *base
	cfg.Scenario.Overrides = make(map[string]string, len(base.Scenario.Overrides)+1)
	for k, v := range base.Scenario.Overrides {
		cfg.Scenario.Overrides[k] = v
	}
	return &cfg
}
