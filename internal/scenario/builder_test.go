package scenario_test

import (
	"errors"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/model"
	"github.com/san-kum/aviasim/internal/scenario"
)

func validOverrides() map[string]string {
	values := map[string]string{}
	for i := 0; i < dynamo.NumIndicators; i++ {
		values[scenario.InitialField(i)] = "0.3"
		values[scenario.RestrictionField(i)] = "0.8"
	}
	return values
}

var _ = Describe("Builder", func() {
	Describe("fixed mode", func() {
		It("returns the canonical constants", func() {
			sc, err := scenario.NewBuilder().Build(scenario.Fixed, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Initial).To(Equal([8]float64{0.5, 0.6, 0.4, 0.55, 0.3, 0.35, 0.45, 0.25}))
			Expect(sc.Restrictions).To(Equal([8]float64{0.9, 0.95, 0.85, 0.9, 0.7, 0.75, 0.8, 0.6}))
			Expect(sc.Drivers).To(Equal(model.CanonicalDrivers))
			Expect(sc.Couplings).To(Equal(model.CanonicalCouplings))
			Expect(sc.Validate()).To(Succeed())
		})

		It("returns independent copies", func() {
			b := scenario.NewBuilder()
			first := b.Fixed()
			first.Initial[0] = 0.99
			Expect(b.Fixed().Initial[0]).To(Equal(0.5))
		})
	})

	Describe("random mode", func() {
		It("is reproducible for the same seed", func() {
			a := scenario.NewBuilder(scenario.WithSeed(42)).Random()
			b := scenario.NewBuilder(scenario.WithSeed(42)).Random()
			Expect(a).To(Equal(b))
		})

		It("differs across seeds", func() {
			a := scenario.NewBuilder(scenario.WithSeed(1)).Random()
			b := scenario.NewBuilder(scenario.WithSeed(2)).Random()
			Expect(a.Initial).NotTo(Equal(b.Initial))
		})

		It("keeps values in range and never randomizes parameters", func() {
			for seed := int64(0); seed < 50; seed++ {
				sc := scenario.NewBuilder(scenario.WithSeed(seed)).Random()
				for i, v := range sc.Initial {
					Expect(v).To(BeNumerically(">=", 0.05))
					Expect(v).To(BeNumerically("<=", 0.95))
					Expect(sc.Restrictions[i]).To(BeNumerically(">", v))
				}
				Expect(sc.Drivers).To(Equal(model.CanonicalDrivers))
				Expect(sc.Couplings).To(Equal(model.CanonicalCouplings))
			}
		})
	})

	Describe("override mode", func() {
		It("reads initial values and restrictions", func() {
			values := validOverrides()
			values["u4"] = "0,42"
			sc, err := scenario.NewBuilder().FromOverrides(values)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Initial[3]).To(BeNumerically("~", 0.42, 1e-12))
			Expect(sc.Restrictions[7]).To(Equal(0.8))
		})

		It("defaults missing and unparsable fields", func() {
			sc, perrs := scenario.ParseOverrides(map[string]string{"u1": "abc", "u2": "0.4"}, false)
			Expect(sc.Initial[0]).To(Equal(scenario.DefaultInitial))
			Expect(sc.Initial[1]).To(Equal(0.4))
			Expect(sc.Restrictions[0]).To(Equal(scenario.DefaultRestriction))
			Expect(perrs).To(HaveLen(2*dynamo.NumIndicators - 1))
			Expect(errors.Is(perrs[0], dynamo.ErrParse)).To(BeTrue())
			Expect(perrs[0].Field).To(Equal("u1"))
		})

		It("clamps values into their valid ranges", func() {
			values := validOverrides()
			values["u1"] = "5"
			values["u_restrictions1"] = "7"
			values["u2"] = "-3"
			sc, _ := scenario.ParseOverrides(values, false)
			Expect(sc.Initial[0]).To(Equal(0.95))
			Expect(sc.Restrictions[0]).To(Equal(1.0))
			Expect(sc.Initial[1]).To(Equal(0.05))
		})

		It("ignores parameter fields unless enabled", func() {
			values := validOverrides()
			values["fak1_a"] = "0.2"
			values["f1_k"] = "0.5"

			fixed, _ := scenario.ParseOverrides(values, false)
			Expect(fixed.Drivers).To(Equal(model.CanonicalDrivers))

			open, _ := scenario.ParseOverrides(values, true)
			Expect(open.Drivers[0]).To(Equal(dynamo.Pair{0.2, 0.37}))
			Expect(open.Couplings[0][0]).To(Equal(0.5))
		})

		It("clamps accepted parameters", func() {
			values := validOverrides()
			values["fak2_b"] = "-2"
			values["f3_k"] = "9"
			values["f3_b"] = "0"
			sc, _ := scenario.ParseOverrides(values, true)
			Expect(sc.Drivers[1][1]).To(Equal(-0.5))
			Expect(sc.Couplings[2]).To(Equal(dynamo.Pair{0.8, 0.1}))
		})

		It("keeps canonical parameters for fields that were not supplied", func() {
			sc, _ := scenario.ParseOverrides(map[string]string{}, true)
			Expect(sc.Drivers).To(Equal(model.CanonicalDrivers))
			Expect(sc.Couplings).To(Equal(model.CanonicalCouplings))

			values := validOverrides()
			values["f1_k"] = "0.3"
			swept, _ := scenario.ParseOverrides(values, true)
			Expect(swept.Couplings[0]).To(Equal(dynamo.Pair{0.3, model.CanonicalCouplings[0][1]}))
			Expect(swept.Couplings[1:]).To(Equal(model.CanonicalCouplings[1:]))
		})

		Context("with a restriction at or below its initial value", func() {
			var values map[string]string

			BeforeEach(func() {
				values = validOverrides()
				values["u4"] = "0.6"
				values["u_restrictions4"] = "0.5"
			})

			It("rejects the scenario under the strict policy", func() {
				_, err := scenario.NewBuilder(scenario.WithPolicy(scenario.Strict)).FromOverrides(values)
				Expect(err).To(MatchError(dynamo.ErrValidation))

				var verr *dynamo.ValidationError
				Expect(errors.As(err, &verr)).To(BeTrue())
				Expect(verr.Index).To(Equal(3))
				Expect(err.Error()).To(ContainSubstring("X4"))
				Expect(err.Error()).To(ContainSubstring("0.60"))
				Expect(err.Error()).To(ContainSubstring("0.50"))
			})

			It("treats equality as a violation", func() {
				values["u_restrictions4"] = "0.6"
				_, err := scenario.NewBuilder().FromOverrides(values)
				Expect(err).To(MatchError(dynamo.ErrValidation))
			})

			It("raises the restriction under the autocorrect policy", func() {
				sc, err := scenario.NewBuilder(scenario.WithPolicy(scenario.AutoCorrect)).FromOverrides(values)
				Expect(err).NotTo(HaveOccurred())
				Expect(sc.Restrictions[3]).To(BeNumerically("~", 0.65, 1e-12))
				Expect(sc.Validate()).To(Succeed())
			})
		})
	})

	Describe("jitter", func() {
		It("is reproducible and bounded", func() {
			base := scenario.Canonical()
			a, err := scenario.NewBuilder(scenario.WithSeed(7), scenario.WithPolicy(scenario.AutoCorrect)).Jitter(base, scenario.Fixed, 0.05)
			Expect(err).NotTo(HaveOccurred())
			b, _ := scenario.NewBuilder(scenario.WithSeed(7), scenario.WithPolicy(scenario.AutoCorrect)).Jitter(base, scenario.Fixed, 0.05)
			Expect(a).To(Equal(b))
			for i, v := range a.Initial {
				Expect(v).To(BeNumerically("~", base.Initial[i], 0.05+1e-12))
			}
			Expect(base.Initial).To(Equal(scenario.CanonicalInitial))
		})

		It("is a copy when amplitude is zero", func() {
			base := scenario.Canonical()
			out, err := scenario.NewBuilder().Jitter(base, scenario.Fixed, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(base))
			Expect(out).NotTo(BeIdenticalTo(base))
		})

		It("always repairs random scenarios under the strict policy", func() {
			for seed := int64(0); seed < 200; seed++ {
				b := scenario.NewBuilder(scenario.WithSeed(seed))
				sc, err := b.Build(scenario.Random, nil)
				Expect(err).NotTo(HaveOccurred())
				out, err := b.Jitter(sc, scenario.Random, 0.05)
				Expect(err).NotTo(HaveOccurred(), "seed %d", seed)
				Expect(out.Validate()).To(Succeed(), "seed %d", seed)
			}
		})

		It("rejects a jittered override past its restriction under the strict policy", func() {
			sc := scenario.Canonical()
			sc.Restrictions[0] = sc.Initial[0] + 0.001
			failed := false
			for seed := int64(0); seed < 20 && !failed; seed++ {
				_, err := scenario.NewBuilder(scenario.WithSeed(seed)).Jitter(sc, scenario.Override, 0.05)
				failed = errors.Is(err, dynamo.ErrValidation)
			}
			Expect(failed).To(BeTrue())
		})
	})
})

var _ = Describe("parsing modes and policies", func() {
	DescribeTable("ParseMode",
		func(in string, want scenario.Mode) {
			got, err := scenario.ParseMode(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("empty", "", scenario.Fixed),
		Entry("fixed", "fixed", scenario.Fixed),
		Entry("random", "Random", scenario.Random),
		Entry("default_random", "default_random", scenario.Random),
		Entry("override", "override", scenario.Override),
	)

	It("rejects unknown names", func() {
		_, err := scenario.ParseMode("chaos")
		Expect(err).To(HaveOccurred())
		_, err = scenario.ParsePolicy("lenient")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips policy names", func() {
		for _, p := range []scenario.Policy{scenario.Strict, scenario.AutoCorrect} {
			got, err := scenario.ParsePolicy(p.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(p))
		}
	})

	It("names override fields", func() {
		a, b := scenario.DriverFields(4)
		Expect(a + " " + b).To(Equal("fak5_a fak5_b"))
		k, c := scenario.CouplingFields(17)
		Expect(k + " " + c).To(Equal("f18_k f18_b"))
		Expect(scenario.RestrictionField(2)).To(Equal("u_restrictions" + strconv.Itoa(3)))
	})
})
