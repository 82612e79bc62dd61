package normalize

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestSmoothEdges(t *testing.T) {
	g := NewWithT(t)
	in := []float64{1, 2, 3, 4, 5, 6, 7}

	out := Smooth(in, 5)
	g.Expect(out).To(HaveLen(len(in)))
	g.Expect(out[0]).To(Equal(1.0))
	g.Expect(out[1]).To(BeNumerically("~", 2.0, 1e-12)) // mean(1,2,3)
	g.Expect(out[3]).To(BeNumerically("~", 4.0, 1e-12)) // mean(2..6)
	g.Expect(out[5]).To(BeNumerically("~", 6.0, 1e-12)) // mean(5,6,7)
	g.Expect(out[6]).To(Equal(7.0))
}

func TestSmoothFlattensNoise(t *testing.T) {
	g := NewWithT(t)
	in := []float64{0, 1, 0, 1, 0, 1, 0, 1, 0}
	out := Smooth(in, 3)
	for i := 1; i < len(out)-1; i++ {
		g.Expect(out[i]).To(BeNumerically("~", 1.0/3+float64(1-i%2)/3, 1e-12))
	}
	for _, v := range out {
		g.Expect(math.IsNaN(v)).To(BeFalse())
	}
}

func TestSmoothShortOrTrivial(t *testing.T) {
	g := NewWithT(t)
	in := []float64{3, 1}
	g.Expect(Smooth(in, 5)).To(Equal(in))
	g.Expect(Smooth(in, 1)).To(Equal(in))
	g.Expect(Smooth(nil, 3)).To(BeEmpty())
}

func TestSmoothEvenWindow(t *testing.T) {
	g := NewWithT(t)
	in := []float64{1, 2, 3, 4, 5}
	g.Expect(Smooth(in, 4)).To(Equal(Smooth(in, 5)))
}

func TestCubicIdentityBelowFourPoints(t *testing.T) {
	g := NewWithT(t)
	ts := []float64{0, 0.5, 1}
	ys := []float64{0.2, 0.8, 0.4}

	t2, y2 := Cubic(ts, ys, 1000)
	g.Expect(t2).To(Equal(ts))
	g.Expect(y2).To(Equal(ys))
}

func TestCubicMismatchedLengths(t *testing.T) {
	g := NewWithT(t)
	ts := []float64{0, 0.25, 0.5, 1}
	ys := []float64{1, 2, 3}

	t2, y2 := Cubic(ts, ys, 100)
	g.Expect(t2).To(Equal(ts))
	g.Expect(y2).To(Equal(ys))
}

func TestCubicReproducesCubic(t *testing.T) {
	g := NewWithT(t)
	f := func(x float64) float64 { return 0.2 + x - 0.5*x*x + 0.3*x*x*x }

	ts := make([]float64, 11)
	ys := make([]float64, 11)
	for i := range ts {
		ts[i] = float64(i) / 10
		ys[i] = f(ts[i])
	}

	t2, y2 := Cubic(ts, ys, 1000)
	g.Expect(t2).To(HaveLen(1000))
	g.Expect(t2[0]).To(Equal(0.0))
	g.Expect(t2[999]).To(BeNumerically("~", 1.0, 1e-12))
	for i := range t2 {
		g.Expect(y2[i]).To(BeNumerically("~", f(t2[i]), 1e-9))
	}
}
