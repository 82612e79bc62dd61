package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/aviasim/internal/normalize"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Samples != 50 {
		t.Errorf("expected 50 samples, got %d", cfg.Samples)
	}
	if cfg.Integrator != "rk45" {
		t.Errorf("expected integrator rk45, got %s", cfg.Integrator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("batch")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Samples != 100 {
		t.Errorf("expected 100 samples, got %d", cfg.Samples)
	}
	if cfg.Display.Floor != 1e-3 {
		t.Errorf("expected floor 1e-3, got %g", cfg.Display.Floor)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Error("preset should keep defaults it does not set")
	}
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	data := `
samples: 100
timeout: 2s
scenario:
  mode: override
  policy: autocorrect
  overrides:
    u1: "0.3"
    u_restrictions1: "0.2"
display:
  clip: gentle
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Samples != 100 {
		t.Errorf("expected 100 samples, got %d", cfg.Samples)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.Timeout)
	}
	if cfg.Scenario.Overrides["u1"] != "0.3" {
		t.Errorf("expected override u1=0.3, got %q", cfg.Scenario.Overrides["u1"])
	}
	if cfg.Integrator != DefaultIntegrator {
		t.Errorf("omitted keys should keep defaults, got integrator %q", cfg.Integrator)
	}
	opts, err := cfg.DisplayOptions()
	if err != nil || opts.Clip != normalize.GentleClip {
		t.Errorf("expected gentle clip, got %v (%v)", opts.Clip, err)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("samples: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for one sample")
	}

	if err := os.WriteFile(path, []byte("scenario:\n  mode: chaos\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("web")
	cfg.Scenario.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario.Seed != 99 || loaded.Scenario.Jitter != 0.05 || loaded.Timeout != cfg.Timeout {
		t.Errorf("round trip mismatch: %+v", loaded.Scenario)
	}
}

func TestDisplayOptionsRejectsRescale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Clip = "rescale"
	if _, err := cfg.DisplayOptions(); err == nil {
		t.Error("expected error for non-clip display mode")
	}
}
