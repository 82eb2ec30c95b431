package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/physics"
)

var _ = Describe("Gravity", func() {
	var g *physics.Gravity

	BeforeEach(func() {
		g = physics.New(1.0)
	})

	Describe("PairForce", func() {
		It("gives 0.25 for unit masses two apart", func() {
			f := g.PairForce(1, r2.Vec{X: 2}, 1, r2.Vec{})
			Expect(r2.Norm(f)).To(BeNumerically("~", 0.25, 1e-15))
			Expect(f.Y).To(BeZero())
			Expect(f.X).To(BeNumerically(">", 0), "target is pulled toward the source")
		})

		DescribeTable("is antisymmetric",
			func(ma float64, pa r2.Vec, mb float64, pb r2.Vec) {
				ab := g.PairForce(ma, pa, mb, pb)
				ba := g.PairForce(mb, pb, ma, pa)
				Expect(ab.X).To(Equal(-ba.X))
				Expect(ab.Y).To(Equal(-ba.Y))
			},
			Entry("unit masses", 1.0, r2.Vec{X: 2}, 1.0, r2.Vec{}),
			Entry("sun and planet", 1.989e10, r2.Vec{X: 960, Y: 540}, 5.98e4, r2.Vec{X: 1805.95, Y: 540}),
			Entry("skewed", 3.3, r2.Vec{X: -1.7, Y: 8.25}, 0.004, r2.Vec{X: 12.5, Y: -3}),
			Entry("asteroid pair", 1e-6, r2.Vec{X: 1300.1, Y: 200.9}, 9.9e-5, r2.Vec{X: 1300.3, Y: 201}),
		)

		It("returns exactly zero for coincident bodies", func() {
			p := r2.Vec{X: 4, Y: 4}
			f := g.PairForce(10, p, 3, p)
			Expect(f).To(Equal(r2.Vec{}))
			Expect(math.IsNaN(f.X) || math.IsInf(f.X, 0)).To(BeFalse())
		})
	})

	Describe("NetForce", func() {
		var (
			sun *body.Sun
			a   *body.Body
			b   *body.Body
		)

		BeforeEach(func() {
			sun = &body.Sun{Body: body.Body{Mass: 100}}
			a = &body.Body{Mass: 1, Position: r2.Vec{X: 10}}
			b = &body.Body{Mass: 2, Position: r2.Vec{X: 10, Y: 5}}
		})

		It("skips self interaction", func() {
			f := g.NetForce(a, sun, []*body.Body{a})
			Expect(f).To(Equal(g.PairForce(sun.Mass, sun.Position, a.Mass, a.Position)))
		})

		It("adds the other bodies on top of the sun term", func() {
			f := g.NetForce(a, sun, []*body.Body{a, b})
			want := r2.Add(
				g.PairForce(sun.Mass, sun.Position, a.Mass, a.Position),
				g.PairForce(b.Mass, b.Position, a.Mass, a.Position),
			)
			Expect(f).To(Equal(want))
		})

		It("ignores a body sitting on top of the target", func() {
			c := &body.Body{Mass: 50, Position: a.Position}
			f := g.NetForce(a, sun, []*body.Body{a, c})
			Expect(f).To(Equal(g.NetForce(a, sun, []*body.Body{a})))
		})
	})

	Describe("Accumulate", func() {
		It("matches NetForce for every body", func() {
			sun := &body.Sun{Body: body.Body{Mass: 1000}}
			all := []*body.Body{
				{Mass: 1, Position: r2.Vec{X: 10}},
				{Mass: 2, Position: r2.Vec{Y: -7}},
				{Mass: 0.5, Position: r2.Vec{X: -3, Y: 3}},
				{Mass: 0.5, Position: r2.Vec{X: -3, Y: 3}},
			}

			out := g.Accumulate(sun, all, nil)
			Expect(out).To(HaveLen(len(all)))
			for i, tgt := range all {
				Expect(out[i]).To(Equal(g.NetForce(tgt, sun, all)))
			}
		})

		It("reuses the output buffer", func() {
			sun := &body.Sun{Body: body.Body{Mass: 1}}
			all := []*body.Body{{Mass: 1, Position: r2.Vec{X: 1}}}
			buf := make([]r2.Vec, 0, 8)
			out := g.Accumulate(sun, all, buf)
			Expect(out).To(HaveLen(1))
			Expect(cap(out)).To(Equal(8))
		})

		It("conserves momentum between movers when the sun is massless", func() {
			sun := &body.Sun{}
			all := []*body.Body{
				{Mass: 3, Position: r2.Vec{X: 1, Y: 2}},
				{Mass: 5, Position: r2.Vec{X: -4, Y: 0.5}},
				{Mass: 7, Position: r2.Vec{X: 2, Y: -6}},
			}
			out := g.Accumulate(sun, all, nil)
			var sum r2.Vec
			for _, f := range out {
				sum = r2.Add(sum, f)
			}
			Expect(sum.X).To(BeNumerically("~", 0, 1e-12))
			Expect(sum.Y).To(BeNumerically("~", 0, 1e-12))
		})
	})

	Describe("Energy", func() {
		It("is negative for a bound circular orbit", func() {
			sun := &body.Sun{Body: body.Body{Mass: 1000}}
			r := 10.0
			v := math.Sqrt(g.G * sun.Mass / r)
			p := &body.Body{Mass: 1, Position: r2.Vec{X: r}, Velocity: r2.Vec{Y: v}}

			e := g.Energy(sun, []*body.Body{p})
			Expect(e).To(BeNumerically("~", -0.5*sun.Mass/r, 1e-9))
			Expect(g.AngularMomentum(sun, []*body.Body{p})).To(BeNumerically("~", r*v, 1e-9))
		})
	})
})
