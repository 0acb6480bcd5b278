package stability_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/stability"
)

func params(planet, moon, submoon, submoonRadius float64) physics.Params {
	return physics.Params{
		PlanetMass:         planet,
		MoonMass:           moon,
		SubmoonMass:        submoon,
		PlanetOrbitRadius:  20,
		MoonOrbitRadius:    0.4,
		SubmoonOrbitRadius: submoonRadius,
	}
}

func score(p physics.Params) stability.Stats {
	d, err := physics.Derive(p)
	Expect(err).NotTo(HaveOccurred())
	return stability.Score(p, d)
}

var _ = Describe("Score", func() {
	It("rates a favourable configuration High", func() {
		stats := score(params(25, 0.5, 0.08, 0.5))

		// 50 → +20, 6.25 → +30, 0.5 → +30
		Expect(stats.Score).To(Equal(80))
		Expect(stats.Tier).To(Equal(stability.TierHigh))
		Expect(stats.Lifetime.String()).To(Equal(">100 million years"))
		Expect(stats.Tidal).To(Equal(stability.TidalWeak))
		Expect(stats.CriticalParameters).To(BeEmpty())
	})

	It("rates a hostile configuration Very Low with every criterion violated", func() {
		stats := score(params(50, 0.2, 0.15, 1.2))

		Expect(stats.Score).To(Equal(0))
		Expect(stats.Tier).To(Equal(stability.TierVeryLow))
		Expect(stats.Tier.String()).To(Equal("Very Low"))
		Expect(stats.Lifetime).To(Equal(stability.LifetimeUnder10My))
		Expect(stats.Tidal).To(Equal(stability.TidalExtreme))
		Expect(stats.CriticalParameters).To(Equal([]string{
			stability.MsgPlanetMoonRatio,
			stability.MsgMoonSubmoonRatio,
			stability.MsgSubmoonPosition,
		}))
	})

	It("reaches the maximum of 100", func() {
		stats := score(params(10, 1, 0.1, 0.5))
		Expect(stats.Score).To(Equal(stability.MaxScore))
		Expect(stats.CriticalParameters).To(BeEmpty())
	})

	It("is deterministic", func() {
		p := params(28, 0.5, 0.05, 0.65)
		d, err := physics.Derive(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(stability.Score(p, d)).To(Equal(stability.Score(p, d)))
	})

	It("recomputes ratios when derived quantities are absent", func() {
		p := params(25, 0.5, 0.08, 0.5)
		Expect(stability.Score(p, physics.Derived{}).Score).To(Equal(score(p).Score))
	})

	It("reports the moon to planet orbit ratio", func() {
		p := params(28, 0.5, 0.05, 0.5)
		d, err := physics.Derive(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(stability.Score(p, d).OrbitRatio).To(BeNumerically("~", d.MoonOrbitDistance/20, 1e-12))
	})

	It("returns critical parameters that do not alias on Clone", func() {
		stats := score(params(50, 0.2, 0.15, 1.2))
		c := stats.Clone()
		c.CriticalParameters[0] = "changed"
		Expect(stats.CriticalParameters[0]).To(Equal(stability.MsgPlanetMoonRatio))
	})
})

var _ = Describe("MassRatioScore", func() {
	DescribeTable("planet/moon contribution",
		func(ratio float64, expected int) {
			// moon/submoon ratio of 1 contributes nothing
			Expect(stability.MassRatioScore(ratio, 1)).To(Equal(expected))
		},
		Entry("well below 40", 10.0, 30),
		Entry("just below 40", 39.999, 30),
		Entry("at 40", 40.0, 20),
		Entry("just below 60", 59.999, 20),
		Entry("at 60", 60.0, 10),
		Entry("just below 80", 79.999, 10),
		Entry("at 80", 80.0, 0),
		Entry("far above", 250.0, 0),
	)

	DescribeTable("moon/submoon contribution",
		func(ratio float64, expected int) {
			// planet/moon ratio of 100 contributes nothing
			Expect(stability.MassRatioScore(100, ratio)).To(Equal(expected))
		},
		Entry("above 8", 8.001, 40),
		Entry("at 8", 8.0, 30),
		Entry("above 5", 5.001, 30),
		Entry("at 5", 5.0, 15),
		Entry("above 3", 3.001, 15),
		Entry("at 3", 3.0, 0),
		Entry("below 1", 0.5, 0),
	)
})

var _ = Describe("OrbitalScore", func() {
	DescribeTable("bands are closed intervals",
		func(r float64, expected int) {
			Expect(stability.OrbitalScore(r)).To(Equal(expected))
		},
		Entry("0.4", 0.4, 30),
		Entry("0.5", 0.5, 30),
		Entry("0.6", 0.6, 30),
		Entry("0.3", 0.3, 20),
		Entry("0.7", 0.7, 20),
		Entry("0.2", 0.2, 10),
		Entry("0.8", 0.8, 10),
		Entry("0.19", 0.19, 0),
		Entry("0.81", 0.81, 0),
		Entry("1.5", 1.5, 0),
	)
})

var _ = Describe("Classify", func() {
	DescribeTable("thresholds are inclusive lower bounds",
		func(s int, tier stability.Tier, lifetime string, tidal stability.Tidal) {
			gotTier, gotLifetime, gotTidal := stability.Classify(s)
			Expect(gotTier).To(Equal(tier))
			Expect(gotLifetime.String()).To(Equal(lifetime))
			Expect(gotTidal).To(Equal(tidal))
		},
		Entry("100", 100, stability.TierHigh, ">100 million years", stability.TidalWeak),
		Entry("80", 80, stability.TierHigh, ">100 million years", stability.TidalWeak),
		Entry("79", 79, stability.TierMedium, "50–100 million years", stability.TidalModerate),
		Entry("50", 50, stability.TierMedium, "50–100 million years", stability.TidalModerate),
		Entry("49", 49, stability.TierLow, "10–50 million years", stability.TidalStrong),
		Entry("30", 30, stability.TierLow, "10–50 million years", stability.TidalStrong),
		Entry("29", 29, stability.TierVeryLow, "<10 million years", stability.TidalExtreme),
		Entry("0", 0, stability.TierVeryLow, "<10 million years", stability.TidalExtreme),
	)

	It("orders tiers from VeryLow to High", func() {
		Expect(stability.TierVeryLow < stability.TierLow).To(BeTrue())
		Expect(stability.TierLow < stability.TierMedium).To(BeTrue())
		Expect(stability.TierMedium < stability.TierHigh).To(BeTrue())
		Expect(stability.TidalExtreme > stability.TidalStrong).To(BeTrue())
		Expect(stability.TidalModerate > stability.TidalWeak).To(BeTrue())
	})
})

var _ = Describe("boundary sweep", func() {
	It("always yields an integer score in [0, 100] equal to its sub-scores", func() {
		planetRatios := []float64{1, 39.9, 40, 40.1, 59.9, 60, 60.1, 79.9, 80, 80.1, 500}
		moonRatios := []float64{0.5, 2.9, 3, 3.1, 4.9, 5, 5.1, 7.9, 8, 8.1, 100}
		radii := []float64{0.05, 0.19, 0.2, 0.21, 0.29, 0.3, 0.31, 0.39, 0.4, 0.5, 0.6, 0.61, 0.69, 0.7, 0.71, 0.79, 0.8, 0.81, 1.5}

		for _, pm := range planetRatios {
			for _, ms := range moonRatios {
				for _, r := range radii {
					moon := 1.0
					p := physics.Params{
						PlanetMass:         pm * moon,
						MoonMass:           moon,
						SubmoonMass:        moon / ms,
						PlanetOrbitRadius:  20,
						MoonOrbitRadius:    0.4,
						SubmoonOrbitRadius: r,
					}
					d := physics.Derived{PlanetToMoonMassRatio: pm, MoonToSubmoonMassRatio: ms}
					stats := stability.Score(p, d)

					Expect(stats.Score).To(BeNumerically(">=", 0))
					Expect(stats.Score).To(BeNumerically("<=", stability.MaxScore))
					Expect(stats.Score).To(Equal(stability.MassRatioScore(pm, ms) + stability.OrbitalScore(r)))
					Expect(len(stats.CriticalParameters)).To(BeNumerically("<=", 3))
				}
			}
		}
	})
})

var _ = Describe("text encoding", func() {
	It("round-trips enums through JSON labels", func() {
		stats := score(params(45, 0.6, 0.15, 0.75))
		data, err := json.Marshal(stats)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"tier":"` + stats.Tier.String() + `"`))

		var back stability.Stats
		Expect(json.Unmarshal(data, &back)).To(Succeed())
		Expect(back.Tier).To(Equal(stats.Tier))
		Expect(back.Lifetime).To(Equal(stats.Lifetime))
		Expect(back.Tidal).To(Equal(stats.Tidal))
		Expect(back.Score).To(Equal(stats.Score))
	})

	It("rejects unknown labels", func() {
		var tier stability.Tier
		Expect(tier.UnmarshalText([]byte("Sublime"))).NotTo(Succeed())
	})

	It("never produces non-finite ratios for valid params", func() {
		stats := score(params(100, 0.1, 0.01, 0.5))
		Expect(math.IsInf(stats.PlanetToMoonMassRatio, 0)).To(BeFalse())
		Expect(math.IsNaN(stats.MoonToSubmoonMassRatio)).To(BeFalse())
	})
})
