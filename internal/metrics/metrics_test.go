package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/integrators"
	"github.com/san-kum/aviasim/internal/scenario"
	"github.com/san-kum/aviasim/internal/sim"
)

func TestStability(t *testing.T) {
	m := NewStability(0, 1)
	m.Observe(dynamo.State{0.5, 0.5}, 0)
	m.Observe(dynamo.State{0.5, 1.2}, 0.5)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 after reset, got %f", m.Value())
	}
}

func TestBreach(t *testing.T) {
	m := NewBreach([]float64{0.5, 0.5})
	first := NewFirstBreach([]float64{0.5, 0.5})
	for _, obs := range []struct {
		x dynamo.State
		t float64
	}{
		{dynamo.State{0.4, 0.4}, 0},
		{dynamo.State{0.5, 0.4}, 0.1},
		{dynamo.State{0.6, 0.4}, 0.25},
		{dynamo.State{0.6, 0.9}, 0.5},
	} {
		m.Observe(obs.x, obs.t)
		first.Observe(obs.x, obs.t)
	}

	if m.Value() != 2 {
		t.Errorf("expected 2 breaches, got %f", m.Value())
	}
	if first.Value() != 0.25 {
		t.Errorf("expected first breach at 0.25, got %f", first.Value())
	}

	m.Reset()
	first.Reset()
	if m.Value() != 0 || first.Value() != -1 {
		t.Error("expected empty breach metrics after reset")
	}
}

func TestActivity(t *testing.T) {
	m := NewActivity()
	m.Observe(dynamo.State{0, 0}, 0)
	m.Observe(dynamo.State{0.1, -0.1}, 0.5)
	m.Observe(dynamo.State{0.1, -0.1}, 1)

	if got := m.Value(); got < 0.0999 || got > 0.1001 {
		t.Errorf("expected 0.1, got %f", got)
	}
}

func TestMetricsDuringRun(t *testing.T) {
	sc := scenario.Canonical()
	breach := NewBreach(sc.RestrictionSlice())
	first := NewFirstBreach(sc.RestrictionSlice())
	stab := NewStability(-0.1, 1.1)

	res, err := sim.RunScenario(context.Background(), sc, integrators.NewRK45(), dynamo.DefaultConfig(), nil, breach, first, stab, NewActivity())
	if err != nil {
		t.Fatal(err)
	}

	if res.Metrics["stability"] != 1.0 {
		t.Errorf("expected canonical run to stay in the safety band, got %f", res.Metrics["stability"])
	}
	// X1 climbs from 0.5 to 1.0 past its 0.9 ceiling.
	if res.Metrics["restriction_breaches"] == 0 {
		t.Error("expected X1 to breach its restriction")
	}
	if ft := res.Metrics["first_breach_time"]; ft <= 0 || ft > 1 {
		t.Errorf("expected first breach inside (0, 1], got %f", ft)
	}
	if res.Metrics["activity"] <= 0 {
		t.Error("expected positive activity")
	}
}
