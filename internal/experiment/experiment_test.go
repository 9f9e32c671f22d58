package experiment_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/life"
)

func baseConfig() experiment.Config {
	return experiment.Config{
		Sim:         life.DefaultConfig(),
		Preset:      "clustering",
		Particles:   200,
		Steps:       25,
		SampleEvery: 10,
		Seed:        9,
	}
}

var _ = Describe("Experiment", func() {
	It("requires Setup before Run", func() {
		_, err := experiment.New(baseConfig()).Run(context.Background())
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("rejects invalid configurations",
		func(mutate func(*experiment.Config)) {
			cfg := baseConfig()
			mutate(&cfg)
			Expect(experiment.New(cfg).Setup()).To(MatchError(life.ErrConfig))
		},
		Entry("zero sample interval", func(c *experiment.Config) { c.SampleEvery = 0 }),
		Entry("negative steps", func(c *experiment.Config) { c.Steps = -1 }),
		Entry("negative particles", func(c *experiment.Config) { c.Particles = -5 }),
		Entry("unknown preset", func(c *experiment.Config) { c.Preset = "nope" }),
		Entry("bad sim config", func(c *experiment.Config) { c.Sim.Width = 0 }),
	)

	It("samples at start, every interval and after the last step", func() {
		e := experiment.New(baseConfig())
		Expect(e.Setup()).To(Succeed())

		res, err := e.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(25))

		ticks := make([]int, len(res.Samples))
		for i, s := range res.Samples {
			ticks[i] = s.Tick
			Expect(s.Particles).To(Equal(200))
		}
		Expect(ticks).To(Equal([]int{0, 10, 20, 25}))
		Expect(res.Final).To(HaveLen(200))
		Expect(res.Metrics).To(HaveKey("kinetic_energy"))
		Expect(res.Metrics).To(HaveKey("crowding"))
		Expect(res.Samples[0].KineticEnergy).To(BeZero())
	})

	It("is reproducible for a fixed seed", func() {
		run := func() *experiment.Result {
			e := experiment.New(baseConfig())
			Expect(e.Setup()).To(Succeed())
			res, err := e.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			return res
		}
		a, b := run(), run()
		Expect(a.Samples).To(Equal(b.Samples))
		Expect(a.Final).To(Equal(b.Final))
	})

	It("returns the partial result on cancellation", func() {
		e := experiment.New(baseConfig())
		Expect(e.Setup()).To(Succeed())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := e.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).NotTo(BeNil())
		Expect(res.Steps).To(BeZero())
		Expect(res.Samples).To(HaveLen(1))
	})

	It("extracts named series", func() {
		e := experiment.New(baseConfig())
		Expect(e.Setup()).To(Succeed())
		res, err := e.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		ke, err := res.Series("kinetic_energy")
		Expect(err).NotTo(HaveOccurred())
		Expect(ke).To(HaveLen(len(res.Samples)))

		_, err = res.Series("entropy")
		Expect(err).To(MatchError(life.ErrConfig))
	})

	It("logs as a group", func() {
		res := &experiment.Result{Seed: 3, Steps: 10, Metrics: map[string]float64{"mean_speed": 1.5}}
		v := res.LogValue()
		Expect(v.Kind()).To(Equal(slog.KindGroup))
		Expect(v.Group()).To(ContainElement(slog.Float64("mean_speed", 1.5)))
	})
})
