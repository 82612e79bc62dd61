package automation

import (
	"context"
	"strconv"
	"testing"

	"github.com/san-kum/aviasim/internal/config"
	"github.com/san-kum/aviasim/internal/scenario"
)

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Base:     config.DefaultConfig(),
		Field:    "u1",
		Min:      0.1,
		Max:      0.5,
		NumSteps: 3,
	}

	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{0.1, 0.3, 0.5} {
		if diff := results[i].Value - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("step %d: expected value %.2f, got %.4f", i, want, results[i].Value)
		}
		if results[i].Err != nil {
			t.Errorf("step %d failed: %v", i, results[i].Err)
		}
	}
}

func TestRunSweepRecordsFailures(t *testing.T) {
	// Restriction 0.2 with strict policy rejects initial values above it.
	base := config.DefaultConfig()
	base.Scenario.Overrides = map[string]string{"u_restrictions1": "0.2"}

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base: base, Field: "u1", Min: 0.1, Max: 0.3, NumSteps: 2,
	}, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if results[0].Err != nil {
		t.Errorf("u1=0.1 should run, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("u1=0.3 should fail validation")
	}
	if _, ok := base.Scenario.Overrides["u1"]; ok {
		t.Error("sweep must not modify the base config")
	}
}

func TestParameterSweepValidate(t *testing.T) {
	tests := []struct {
		name  string
		sweep ParameterSweep
	}{
		{"no field", ParameterSweep{NumSteps: 3}},
		{"one step", ParameterSweep{Field: "u1", NumSteps: 1}},
		{"inverted range", ParameterSweep{Field: "u1", Min: 1, Max: 0, NumSteps: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sweep.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIsParamField(t *testing.T) {
	for field, want := range map[string]bool{
		"u1": false, "u_restrictions3": false, "fak2_b": true, "f18_k": true,
	} {
		if got := isParamField(field); got != want {
			t.Errorf("isParamField(%q) = %v, want %v", field, got, want)
		}
	}
}

func TestRunMonteCarlo(t *testing.T) {
	mc := &MonteCarloConfig{Base: config.DefaultConfig(), NumTrials: 4, Seed: 7}

	results, err := RunMonteCarlo(context.Background(), mc, nil)
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(results))
	}
	if results[0].Seed != 7 || results[3].Seed != 10 {
		t.Errorf("unexpected seeds %d..%d", results[0].Seed, results[3].Seed)
	}

	breached, clear, failed := MonteCarloStats(results)
	if breached+clear+failed != 4 {
		t.Errorf("stats do not add up: %d+%d+%d", breached, clear, failed)
	}
	if failed != 0 {
		t.Errorf("random mode autocorrects, expected no failures, got %d", failed)
	}

	again, _ := RunMonteCarlo(context.Background(), mc, nil)
	for i := range results {
		if results[i].InitState[0] != again[i].InitState[0] {
			t.Errorf("trial %d not reproducible", i)
		}
	}
}

func TestRunMonteCarloCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunMonteCarlo(ctx, &MonteCarloConfig{NumTrials: 3}, nil)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunSweepReportsFirstBreach(t *testing.T) {
	// The canonical X1 climbs from 0.5 towards 1.0.
	base := config.DefaultConfig()
	base.Scenario.Overrides = map[string]string{}
	for i := range scenario.CanonicalInitial {
		base.Scenario.Overrides[scenario.InitialField(i)] = strconv.FormatFloat(scenario.CanonicalInitial[i], 'f', -1, 64)
		base.Scenario.Overrides[scenario.RestrictionField(i)] = strconv.FormatFloat(scenario.CanonicalRestrictions[i], 'f', -1, 64)
	}
	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base: base, Field: "u_restrictions1", Min: 0.55, Max: 1.0, NumSteps: 2,
	}, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("value %.2f failed: %v", r.Value, r.Err)
		}
		if (r.Breaches == 0) != (r.FirstBreach == -1) {
			t.Errorf("value %.2f: %v breaches but first breach at %.3f", r.Value, r.Breaches, r.FirstBreach)
		}
		if r.Breaches > 0 && (r.FirstBreach <= 0 || r.FirstBreach > 1) {
			t.Errorf("value %.2f: first breach %.3f outside (0, 1]", r.Value, r.FirstBreach)
		}
	}
	if results[0].Breaches == 0 {
		t.Error("expected a breach with the restriction lowered to 0.55")
	}
}
