package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/matrix"
	"github.com/san-kum/particlelife/internal/sim"
)

func twoTypeConfig() life.Config {
	cfg := life.DefaultConfig()
	cfg.NumTypes = 2
	cfg.Friction = 0
	cfg.Speed = 1
	cfg.MaxForce = 1
	return cfg
}

var _ = Describe("Simulation", func() {
	var (
		cfg life.Config
		s   *sim.Simulation
	)

	BeforeEach(func() {
		cfg = life.DefaultConfig()
		var err error
		s, err = sim.New(cfg, sim.WithSeed(42), sim.WithParticles(300))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects an invalid configuration", func() {
			bad := cfg
			bad.InteractionRadius = 0
			_, err := sim.New(bad)
			Expect(err).To(MatchError(life.ErrConfig))
		})

		It("rejects a matrix of the wrong size", func() {
			_, err := sim.New(cfg, sim.WithMatrix(matrix.New(3)))
			Expect(err).To(MatchError(life.ErrDimensionMismatch))
		})

		It("starts running with a matrix sized to the type count", func() {
			Expect(s.IsPaused()).To(BeFalse())
			Expect(s.Matrix().Size()).To(Equal(cfg.NumTypes))
			Expect(s.Len()).To(Equal(300))
		})
	})

	Describe("determinism", func() {
		It("produces identical trajectories for identical seeds", func() {
			a, err := sim.New(cfg, sim.WithSeed(7), sim.WithParticles(400))
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.New(cfg, sim.WithSeed(7), sim.WithParticles(400))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 25; i++ {
				Expect(a.Step(cfg.Dt)).To(Succeed())
				Expect(b.Step(cfg.Dt)).To(Succeed())
			}
			Expect(a.Particles()).To(Equal(b.Particles()))
		})
	})

	Describe("run state", func() {
		It("leaves particles unchanged while paused", func() {
			before := s.Particles()
			s.SetPaused(true)
			for i := 0; i < 10; i++ {
				Expect(s.Step(cfg.Dt)).To(Succeed())
			}
			Expect(s.Particles()).To(Equal(before))
			Expect(s.Tick()).To(BeZero())
		})

		It("toggles between running and paused", func() {
			Expect(s.TogglePaused()).To(BeTrue())
			Expect(s.State()).To(Equal(sim.Paused))
			Expect(s.TogglePaused()).To(BeFalse())
			Expect(s.State()).To(Equal(sim.Running))
		})

		It("advances tick and time only while running", func() {
			Expect(s.Step(0.25)).To(Succeed())
			Expect(s.Step(0.25)).To(Succeed())
			Expect(s.Tick()).To(Equal(2))
			Expect(s.Time()).To(BeNumerically("~", 0.5, 1e-12))
		})
	})

	Describe("Step", func() {
		DescribeTable("rejects a bad time step without mutating",
			func(dt float64) {
				before := s.Particles()
				Expect(s.Step(dt)).To(MatchError(life.ErrConfig))
				Expect(s.Particles()).To(Equal(before))
			},
			Entry("negative", -0.1),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("keeps every particle inside the domain under wrap", func() {
			for i := 0; i < 100; i++ {
				Expect(s.Step(cfg.Dt)).To(Succeed())
			}
			for _, p := range s.Snapshot() {
				Expect(p.X).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Width)))
				Expect(p.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Height)))
			}
		})

		It("keeps every particle inside the domain under bounce", func() {
			bounce := cfg
			bounce.Wrap = false
			Expect(s.Configure(bounce)).To(Succeed())
			for i := 0; i < 100; i++ {
				Expect(s.Step(cfg.Dt)).To(Succeed())
			}
			for _, p := range s.Snapshot() {
				Expect(p.X).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Width)))
				Expect(p.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Height)))
			}
		})

		It("notifies observers after each step", func() {
			var ticks []int
			s.AddObserver(sim.ObserverFunc(func(tick int, _ float64, ps []life.Particle) {
				ticks = append(ticks, tick)
				Expect(ps).To(HaveLen(300))
			}))
			for i := 0; i < 3; i++ {
				Expect(s.Step(cfg.Dt)).To(Succeed())
			}
			Expect(ticks).To(Equal([]int{1, 2, 3}))
		})
	})

	Describe("pair forces", func() {
		It("pulls a particle toward an attractive neighbour with the attenuated magnitude", func() {
			two := twoTypeConfig()
			m, err := matrix.FromRows([][]float64{{0, 1}, {0, 0}})
			Expect(err).NotTo(HaveOccurred())

			s2, err := sim.New(two, sim.WithSeed(1), sim.WithMatrix(m))
			Expect(err).NotTo(HaveOccurred())
			Expect(s2.SetParticles([]life.Particle{
				{X: 100, Y: 100, Type: 0},
				{X: 150, Y: 100, Type: 1},
			})).To(Succeed())

			Expect(s2.Step(1)).To(Succeed())
			ps := s2.Particles()

			want := 1.0 * (1 - (50.0-10.0)/(80.0-10.0)) * two.MaxForce
			Expect(ps[0].VX).To(BeNumerically("~", want, 1e-9))
			Expect(ps[0].VY).To(BeNumerically("~", 0, 1e-12))
			Expect(ps[1].VX).To(BeNumerically("~", 0, 1e-12))
		})

		It("pulls particles of a self-attracting type toward each other symmetrically", func() {
			two := twoTypeConfig()
			m, err := matrix.FromRows([][]float64{{0, 0}, {0, 1}})
			Expect(err).NotTo(HaveOccurred())
			s2, err := sim.New(two, sim.WithSeed(1), sim.WithMatrix(m))
			Expect(err).NotTo(HaveOccurred())
			Expect(s2.SetParticles([]life.Particle{
				{X: 300, Y: 300, Type: 1},
				{X: 330, Y: 340, Type: 1},
			})).To(Succeed())

			Expect(s2.Step(1)).To(Succeed())
			ps := s2.Particles()
			Expect(ps[0].VX).To(BeNumerically("~", -ps[1].VX, 1e-12))
			Expect(ps[0].VY).To(BeNumerically("~", -ps[1].VY, 1e-12))

			Expect(ps[0].VX).To(BeNumerically(">", 0))
			Expect(ps[0].VY).To(BeNumerically(">", 0))
			Expect(ps[1].VX).To(BeNumerically("<", 0))
			Expect(ps[1].VY).To(BeNumerically("<", 0))
			// Velocity is parallel to the separation (30, 40).
			Expect(ps[0].VY / ps[0].VX).To(BeNumerically("~", 40.0/30.0, 1e-9))
		})

		It("applies a neighbor reached through two folded cells once", func() {
			small := twoTypeConfig()
			small.Width, small.Height = 160, 160
			m, err := matrix.FromRows([][]float64{{1, 1}, {1, 1}})
			Expect(err).NotTo(HaveOccurred())
			s2, err := sim.New(small, sim.WithSeed(1), sim.WithMatrix(m))
			Expect(err).NotTo(HaveOccurred())
			Expect(s2.SetParticles([]life.Particle{
				{X: 40, Y: 40, Type: 0},
				{X: 90, Y: 40, Type: 0},
			})).To(Succeed())

			Expect(s2.Step(0)).To(Succeed())
			want := 1.0 * (1 - (50.0-10.0)/(80.0-10.0)) * small.MaxForce
			Expect(s2.Particles()[0].VX).To(BeNumerically("~", want, 1e-9))
		})

		It("interacts across the top and bottom seam with the default domain", func() {
			two := twoTypeConfig()
			Expect(two.WrapAligned()).To(BeTrue())
			m, err := matrix.FromRows([][]float64{{1, 1}, {1, 1}})
			Expect(err).NotTo(HaveOccurred())
			s2, err := sim.New(two, sim.WithSeed(1), sim.WithMatrix(m))
			Expect(err).NotTo(HaveOccurred())
			Expect(s2.SetParticles([]life.Particle{
				{X: 100, Y: 5, Type: 0},
				{X: 100, Y: two.Height - 55, Type: 0},
			})).To(Succeed())

			Expect(s2.Step(0)).To(Succeed())
			ps := s2.Particles()
			Expect(ps[0].VY).To(BeNumerically("<", 0))
			Expect(ps[1].VY).To(BeNumerically(">", 0))
			Expect(ps[0].VY).To(BeNumerically("~", -ps[1].VY, 1e-12))
		})

		It("interacts across the wrapped edge", func() {
			two := twoTypeConfig()
			m, err := matrix.FromRows([][]float64{{1, 1}, {1, 1}})
			Expect(err).NotTo(HaveOccurred())
			s2, err := sim.New(two, sim.WithSeed(1), sim.WithMatrix(m))
			Expect(err).NotTo(HaveOccurred())
			Expect(s2.SetParticles([]life.Particle{
				{X: 5, Y: 300, Type: 0},
				{X: 775, Y: 300, Type: 0},
			})).To(Succeed())

			Expect(s2.Step(0)).To(Succeed())
			ps := s2.Particles()
			Expect(ps[0].VX).To(BeNumerically("<", 0))
			Expect(ps[1].VX).To(BeNumerically(">", 0))
		})
	})

	Describe("particles", func() {
		It("resets to the requested population inside the domain", func() {
			Expect(s.ResetParticles(500)).To(Succeed())
			snap := s.Snapshot()
			Expect(snap).To(HaveLen(500))
			for _, p := range snap {
				Expect(p.X).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Width)))
				Expect(p.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Height)))
				Expect(p.Type).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.NumTypes)))
			}
		})

		It("rejects a negative population", func() {
			Expect(s.ResetParticles(-1)).To(MatchError(life.ErrConfig))
			Expect(s.Len()).To(Equal(300))
		})

		It("spawns around a point and appends", func() {
			Expect(s.SpawnParticles(400, 300, 20)).To(Succeed())
			snap := s.Snapshot()
			Expect(snap).To(HaveLen(320))
			for _, p := range snap[300:] {
				Expect(math.Hypot(p.X-400, p.Y-300)).To(BeNumerically("<=", sim.SpawnRadius))
			}
		})

		It("folds spawned particles into the domain", func() {
			Expect(s.SpawnParticles(2, 2, 50)).To(Succeed())
			for _, p := range s.Snapshot()[300:] {
				Expect(p.X).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Width)))
				Expect(p.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.Height)))
			}
		})

		It("returns snapshots that do not alias internal state", func() {
			snap := s.Snapshot()
			snap[0].X = -1000
			Expect(s.Snapshot()[0].X).NotTo(Equal(-1000.0))
		})

		It("rejects particles whose type is outside the matrix", func() {
			err := s.SetParticles([]life.Particle{{Type: cfg.NumTypes}})
			Expect(err).To(MatchError(life.ErrIndex))
		})

		It("rejects non-finite positions and keeps the old set", func() {
			err := s.SetParticles([]life.Particle{{X: math.NaN(), Y: 10}})
			Expect(err).To(MatchError(life.ErrConfig))
			Expect(s.Len()).To(Equal(300))
		})

		It("folds out-of-domain positions under wrap", func() {
			Expect(s.SetParticles([]life.Particle{
				{X: cfg.Width + 0.01, Y: -5},
			})).To(Succeed())
			p := s.Particles()[0]
			Expect(p.X).To(BeNumerically("~", 0.01, 1e-9))
			Expect(p.Y).To(BeNumerically("~", cfg.Height-5, 1e-9))
		})

		It("clamps out-of-domain positions under bounce", func() {
			bounce := cfg
			bounce.Wrap = false
			Expect(s.Configure(bounce)).To(Succeed())
			Expect(s.SetParticles([]life.Particle{
				{X: cfg.Width + 3, Y: 20, VX: 1},
			})).To(Succeed())
			p := s.Particles()[0]
			Expect(p.X).To(Equal(cfg.Width - 1))
			Expect(p.VX).To(BeNumerically("<", 0))
		})
	})

	Describe("matrix", func() {
		It("applies a named preset", func() {
			Expect(s.SetPreset("symbiosis")).To(Succeed())
			v, err := s.Matrix().At(0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically(">", 0))
		})

		It("rejects unknown presets", func() {
			Expect(s.SetPreset("nope")).To(MatchError(life.ErrConfig))
		})

		It("rejects a preset that does not fit the type count", func() {
			three := cfg
			three.NumTypes = 3
			Expect(s.Configure(three)).To(Succeed())
			Expect(s.SetPreset("chains")).To(MatchError(life.ErrDimensionMismatch))
		})

		It("clamps cell edits and reports bad indices", func() {
			Expect(s.SetCell(0, 1, 4)).To(Succeed())
			v, _ := s.Matrix().At(0, 1)
			Expect(v).To(Equal(1.0))
			Expect(s.SetCell(0, cfg.NumTypes, 0.5)).To(MatchError(life.ErrIndex))
		})

		It("returns a copy", func() {
			m := s.Matrix()
			Expect(m.SetCell(0, 0, -1)).To(Succeed())
			Expect(s.Matrix().Rows()).NotTo(Equal(m.Rows()))
		})
	})

	Describe("Configure", func() {
		It("applies nothing when the configuration is invalid", func() {
			bad := cfg
			bad.Friction = -1
			bad.NumTypes = 2
			Expect(s.Configure(bad)).To(MatchError(life.ErrConfig))
			Expect(s.Config()).To(Equal(cfg))
			Expect(s.Matrix().Size()).To(Equal(cfg.NumTypes))
		})

		It("regenerates matrix and particles when the type count changes", func() {
			four := cfg
			four.NumTypes = 4
			Expect(s.Configure(four)).To(Succeed())
			Expect(s.Matrix().Size()).To(Equal(4))
			Expect(s.Len()).To(Equal(300))
			for _, p := range s.Snapshot() {
				Expect(p.Type).To(BeNumerically("<", 4))
			}
		})

		It("confines particles when the domain shrinks", func() {
			small := cfg
			small.Width, small.Height = 200, 100
			Expect(s.Configure(small)).To(Succeed())
			for _, p := range s.Snapshot() {
				Expect(p.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 200.0)))
				Expect(p.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", 100.0)))
			}
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one member per seed", func() {
		cfg := life.DefaultConfig()
		e := sim.NewEnsemble(cfg, 3, 100, sim.WithParticles(50))
		results, err := e.Run(context.Background(), 5, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(100 + i)))
			Expect(r.Steps).To(Equal(5))
			Expect(r.Sim.Tick()).To(Equal(5))
		}
	})

	It("keeps per-member seeds when the caller passes a seed option", func() {
		cfg := life.DefaultConfig()
		e := sim.NewEnsemble(cfg, 3, 100, sim.WithSeed(7), sim.WithParticles(20))
		results, err := e.Run(context.Background(), 1, nil)
		Expect(err).NotTo(HaveOccurred())
		for i, r := range results {
			Expect(r.Sim.Seed()).To(Equal(int64(100 + i)))
		}
		Expect(results[0].Sim.Snapshot()).NotTo(Equal(results[1].Sim.Snapshot()))
	})

	It("stops on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := sim.NewEnsemble(life.DefaultConfig(), 2, 1)
		_, err := e.Run(ctx, 10, nil)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("propagates setup errors", func() {
		e := sim.NewEnsemble(life.DefaultConfig(), 2, 1)
		_, err := e.Run(context.Background(), 1, func(s *sim.Simulation) error {
			return s.SetPreset("missing")
		})
		Expect(err).To(MatchError(life.ErrConfig))
	})
})
