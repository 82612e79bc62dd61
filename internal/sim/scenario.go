package sim

import (
	"context"
	"log/slog"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/scenario"
)

// RunScenario integrates one scenario on a fresh simulator and returns its
// trajectory. Each call owns all of its state.
func RunScenario(ctx context.Context, sc *scenario.Scenario, integrator dynamo.Integrator, cfg dynamo.Config, logger *slog.Logger, metrics ...dynamo.Metric) (*dynamo.Result, error) {
	s := New(sc.System(), integrator, logger)
	for _, m := range metrics {
		s.AddMetric(m)
	}
	return s.Run(ctx, sc.State(), cfg)
}
