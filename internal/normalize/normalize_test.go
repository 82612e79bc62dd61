package normalize

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestHardClipBounds(t *testing.T) {
	g := NewWithT(t)
	in := []float64{-1e9, -0.5, 0, 0.3, 1, 1.7, 1e12}

	out := ForDisplay(in, HardClip, nil)
	for _, v := range out {
		g.Expect(v).To(BeNumerically(">=", 0))
		g.Expect(v).To(BeNumerically("<=", 1))
	}
	g.Expect(out[3]).To(Equal(0.3))

	gentle := ForDisplay(in, GentleClip, nil)
	g.Expect(gentle[0]).To(Equal(-0.1))
	g.Expect(gentle[len(gentle)-1]).To(Equal(1.1))
	g.Expect(in[0]).To(Equal(-1e9), "input must not be modified")
}

func TestRescaleIdempotentInRange(t *testing.T) {
	g := NewWithT(t)
	in := []float64{0, 0.25, 0.5, 1}

	out := ForDisplay(in, Rescale, nil)
	g.Expect(out).To(Equal(in))

	out[0] = 42
	g.Expect(in[0]).To(Equal(0.0), "output must not alias input")
}

func TestRescaleOutOfRange(t *testing.T) {
	g := NewWithT(t)
	out := ForDisplay([]float64{-1, 0, 1, 3}, Rescale, nil)

	g.Expect(out[0]).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(out[3]).To(BeNumerically("~", 0.9, 1e-12))
	g.Expect(out[1]).To(BeNumerically("~", 0.3, 1e-12))
	g.Expect(out[2]).To(BeNumerically("~", 0.5, 1e-12))
}

func TestRescaleConstant(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ForDisplay([]float64{2, 2, 2}, Rescale, nil)).To(Equal([]float64{0.5, 0.5, 0.5}))
	g.Expect(ForDisplay(nil, Rescale, nil)).To(BeEmpty())
}

func TestRestrictionAware(t *testing.T) {
	g := NewWithT(t)
	values := []float64{0.2, 0.9, 0.5, 1.4}
	restrictions := []float64{1, 0.6, 1, 1}

	out := ForDisplay(values, RestrictionAware, restrictions)
	// capped: 0.2 0.6 0.5 1.0
	g.Expect(out[0]).To(BeNumerically("~", 0.05, 1e-12))
	g.Expect(out[3]).To(BeNumerically("~", 0.95, 1e-12))
	g.Expect(out[1]).To(BeNumerically("~", 0.05+0.9*0.4/0.8, 1e-12))
	for _, v := range out {
		g.Expect(v).To(BeNumerically(">=", RadarBand.Lo))
		g.Expect(v).To(BeNumerically("<=", RadarBand.Hi))
	}
}

func TestRestrictionAwareConstant(t *testing.T) {
	g := NewWithT(t)
	out := CapAndRescale([]float64{0.7, 0.9}, []float64{0.5, 0.5})
	g.Expect(out).To(Equal([]float64{0.5, 0.5}))

	out = CapAndRescale([]float64{2, 2}, []float64{3, 3})
	g.Expect(out).To(Equal([]float64{0.95, 0.95}))
}

func TestRestrictionAwareWithoutRestrictions(t *testing.T) {
	g := NewWithT(t)
	in := []float64{0.1, 0.5, 0.9}
	g.Expect(ForDisplay(in, RestrictionAware, nil)).To(Equal(in))

	out := ForDisplay([]float64{0, 0.5, 1}, RestrictionAware, nil)
	g.Expect(out[0]).To(BeNumerically("~", 0.05, 1e-12))
	g.Expect(out[2]).To(BeNumerically("~", 0.95, 1e-12))
}

func TestFloor(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Floor([]float64{-1, 0.005, 0.5}, 0.01)).To(Equal([]float64{0.01, 0.01, 0.5}))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
	}{
		{"", HardClip},
		{"hard_clip", HardClip},
		{"gentle", GentleClip},
		{"rescale", Rescale},
		{"restriction_aware", RestrictionAware},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.expected {
			t.Errorf("%q: expected %v, got %v (%v)", tt.in, tt.expected, got, err)
		}
	}
	if _, err := ParseMode("fancy"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBandMid(t *testing.T) {
	if m := PlotBand.Mid(); math.Abs(m-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %f", m)
	}
}
