package coolant_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fusionsketch/internal/config"
	"github.com/san-kum/fusionsketch/internal/coolant"
	"github.com/san-kum/fusionsketch/internal/fusion"
)

func paramOf(err error) string {
	var pe *fusion.ParamError
	if errors.As(err, &pe) {
		return pe.Param
	}
	return ""
}

var _ = Describe("TemperatureRise", func() {
	It("matches the 10 kW reference load", func() {
		rise, err := coolant.TemperatureRise(10000, 2.2, 850)
		Expect(err).NotTo(HaveOccurred())
		Expect(rise).To(BeNumerically("~", 5.3476, 1e-3))
	})

	It("increases with power", func() {
		lo, _ := coolant.TemperatureRise(5000, 2.2, 850)
		hi, _ := coolant.TemperatureRise(10000, 2.2, 850)
		Expect(hi).To(BeNumerically(">", lo))
	})

	It("decreases with mass flow and specific heat", func() {
		base, _ := coolant.TemperatureRise(10000, 2.2, 850)
		moreFlow, _ := coolant.TemperatureRise(10000, 4.4, 850)
		moreCp, _ := coolant.TemperatureRise(10000, 2.2, 1700)
		Expect(moreFlow).To(BeNumerically("<", base))
		Expect(moreCp).To(BeNumerically("<", base))
	})

	DescribeTable("rejects non-positive divisors",
		func(massFlow, cp float64, param string) {
			_, err := coolant.TemperatureRise(10000, massFlow, cp)
			Expect(err).To(MatchError(fusion.ErrDivisionUndefined))
			Expect(paramOf(err)).To(Equal(param))
		},
		Entry("zero mass flow", 0.0, 850.0, "mass_flow"),
		Entry("negative mass flow", -1.0, 850.0, "mass_flow"),
		Entry("zero specific heat", 2.2, 0.0, "specific_heat"),
		Entry("negative specific heat", 2.2, -850.0, "specific_heat"),
		Entry("NaN mass flow", math.NaN(), 850.0, "mass_flow"),
		Entry("NaN specific heat", 2.2, math.NaN(), "specific_heat"),
	)
})

var _ = Describe("OutletTemperature", func() {
	It("is the identity at zero rise", func() {
		for _, tin := range []float64{0, 193, 300.5, -10} {
			Expect(coolant.OutletTemperature(tin, 0)).To(Equal(tin))
		}
	})

	It("adds the rise to the inlet", func() {
		rise, _ := coolant.TemperatureRise(10000, 2.2, 850)
		Expect(coolant.OutletTemperature(193, rise)).To(BeNumerically("~", 198.35, 1e-2))
	})
})

var _ = Describe("TotalChannelLength", func() {
	It("multiplies length, coils and channels", func() {
		Expect(coolant.TotalChannelLength(0.5, 4, 2)).To(BeNumerically("~", 4.0, 1e-12))
	})

	It("is homogeneous in the per-coil length", func() {
		base := coolant.TotalChannelLength(0.5, 4, 2)
		Expect(coolant.TotalChannelLength(1.5, 4, 2)).To(BeNumerically("~", 3*base, 1e-12))
	})
})

var _ = Describe("FlowVelocity", func() {
	It("applies ṁ/(ρ·π·r²) to the reference channel", func() {
		v, err := coolant.FlowVelocity(2.2, 1100, 0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNumerically("~", 25.465, 1e-2))
		Expect(v).NotTo(BeNumerically("~", 0.79, 0.1))
	})

	It("scales inversely with density", func() {
		v1, _ := coolant.FlowVelocity(2.2, 1100, 0.01)
		v2, _ := coolant.FlowVelocity(2.2, 2200, 0.01)
		Expect(v1 / v2).To(BeNumerically("~", 2, 1e-12))
	})

	It("scales inversely with the square of the diameter", func() {
		v1, _ := coolant.FlowVelocity(2.2, 1100, 0.01)
		v2, _ := coolant.FlowVelocity(2.2, 1100, 0.03)
		Expect(v1 / v2).To(BeNumerically("~", 9, 1e-9))
	})

	DescribeTable("rejects non-positive divisors",
		func(density, diameter float64, param string) {
			_, err := coolant.FlowVelocity(2.2, density, diameter)
			Expect(err).To(MatchError(fusion.ErrDivisionUndefined))
			Expect(paramOf(err)).To(Equal(param))
		},
		Entry("zero density", 0.0, 0.01, "density"),
		Entry("negative density", -1100.0, 0.01, "density"),
		Entry("zero diameter", 1100.0, 0.0, "channel_diameter"),
		Entry("negative diameter", 1100.0, -0.01, "channel_diameter"),
		Entry("NaN density", math.NaN(), 0.01, "density"),
		Entry("NaN diameter", 1100.0, math.NaN(), "channel_diameter"),
	)
})

var _ = Describe("TemperatureProfile", func() {
	It("runs from inlet to outlet", func() {
		for _, n := range []int{2, 3, 50} {
			pts, err := coolant.TemperatureProfile(193, 5.35, 4, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(pts).To(HaveLen(n))
			Expect(pts[0]).To(Equal(fusion.Point{X: 0, Y: 193}))
			Expect(pts[n-1].X).To(Equal(4.0))
			Expect(pts[n-1].Y).To(BeNumerically("~", 198.35, 1e-12))
		}
	})

	It("is linear in distance", func() {
		pts, _ := coolant.TemperatureProfile(100, 10, 2, 5)
		for _, p := range pts {
			Expect(p.Y).To(BeNumerically("~", 100+5*p.X, 1e-12))
		}
	})

	DescribeTable("rejects unusable flow path lengths",
		func(length float64) {
			pts, err := coolant.TemperatureProfile(193, 5, length, 10)
			Expect(err).To(MatchError(fusion.ErrDivisionUndefined))
			Expect(paramOf(err)).To(Equal("total_length"))
			Expect(pts).To(BeNil())
		},
		Entry("zero", 0.0),
		Entry("negative", -4.0),
		Entry("NaN", math.NaN()),
		Entry("infinite", math.Inf(1)),
	)

	It("ends exactly at the flow path length", func() {
		pts, err := coolant.TemperatureProfile(193, 5.35, 4, 50)
		Expect(err).NotTo(HaveOccurred())
		Expect(pts[49].X).To(Equal(4.0))
	})
})

var _ = Describe("Classify", func() {
	It("treats the bound itself as safe", func() {
		Expect(coolant.Classify(250, 250)).To(Equal(coolant.Safe))
		Expect(coolant.Classify(249.9, 250)).To(Equal(coolant.Safe))
		Expect(coolant.Classify(250.1, 250)).To(Equal(coolant.Unsafe))
	})

	It("names the status", func() {
		Expect(coolant.Safe.String()).To(Equal("SAFE"))
		Expect(coolant.Unsafe.String()).To(Equal("UNSAFE"))
	})
})

var _ = Describe("Evaluate", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.DefaultConfig()
	})

	It("rejects a NaN mass flow from the config", func() {
		cfg.Coolant.MassFlow = math.NaN()
		_, err := coolant.Evaluate(cfg)
		Expect(err).To(MatchError(fusion.ErrDivisionUndefined))
		Expect(paramOf(err)).To(Equal("mass_flow"))
	})

	It("reports the reference loop as safe", func() {
		res, err := coolant.Evaluate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rise).To(BeNumerically("~", 5.35, 1e-2))
		Expect(res.Outlet).To(BeNumerically("~", 198.35, 1e-2))
		Expect(res.TotalLength).To(BeNumerically("~", 4.0, 1e-12))
		Expect(res.Status).To(Equal(coolant.Safe))
		Expect(res.Profile).To(HaveLen(cfg.Coolant.ProfileSamples))
		Expect(res.Summary()).To(Equal("Cooling OK. Rise = 5.3 K. Velocity = 25.46 m/s."))
	})

	It("performs the real safety comparison", func() {
		cfg.Coolant.MassFlow = 0.15
		res, err := coolant.Evaluate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Outlet).To(BeNumerically(">", cfg.Coolant.MaxTemp))
		Expect(res.Status).To(Equal(coolant.Unsafe))
		Expect(res.Summary()).To(HavePrefix("Cooling UNSAFE."))
	})

	It("propagates the first undefined division", func() {
		cfg.Coolant.Density = 0
		_, err := coolant.Evaluate(cfg)
		Expect(err).To(MatchError(fusion.ErrDivisionUndefined))
		Expect(paramOf(err)).To(Equal("density"))
	})

	It("fails when no channels are configured", func() {
		cfg.Coolant.ChannelsPerCoil = 0
		_, err := coolant.Evaluate(cfg)
		Expect(paramOf(err)).To(Equal("total_length"))
	})

	It("builds the cooling profile figure", func() {
		res, _ := coolant.Evaluate(cfg)
		fig := res.Figure()
		Expect(fig.Title).To(Equal("Supercritical CO2 Cooling Profile"))
		Expect(fig.XLabel).To(Equal("Flow path (m)"))
		Expect(fig.YLabel).To(Equal("Temp (K)"))
		Expect(fig.Grid).To(BeTrue())
		Expect(fig.RefLines).To(HaveLen(1))
		Expect(fig.RefLines[0].Y).To(Equal(cfg.Coolant.MaxTemp))
	})
})
