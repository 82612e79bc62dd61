package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/integrators"
	"github.com/san-kum/aviasim/internal/metrics"
	"github.com/san-kum/aviasim/internal/normalize"
	"github.com/san-kum/aviasim/internal/scenario"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metric instances for one run of sc.
func (r *Registry) DefaultMetrics(sc *scenario.Scenario) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewStability(normalize.Gentle.Lo, normalize.Gentle.Hi),
		metrics.NewBreach(sc.RestrictionSlice()),
		metrics.NewFirstBreach(sc.RestrictionSlice()),
		metrics.NewActivity(),
	}
}
