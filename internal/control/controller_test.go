package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/camera"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/control"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/integrators"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/physics"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/registry"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

func newState() *sim.State {
	pop, err := registry.Initialize(registry.Params{
		G:        1,
		TimeStep: 10,
		Sun:      registry.SunParams{Name: "Sun", Mass: 1, Diameter: 20, Position: r2.Vec{X: 400, Y: 300}},
		Planets: []registry.PlanetParams{
			{Name: "A", Mass: 1e-3, Diameter: 2, BaseDistance: 100},
			{Name: "B", Mass: 2e-3, Diameter: 3, BaseDistance: 200},
		},
		Belt: registry.BeltParams{
			Count: 20, InnerRadius: 250, OuterRadius: 300,
			MinMass: 1e-6, MaxMass: 1e-4, MinDiameter: 0.1, MaxDiameter: 2,
		},
	}, rand.New(rand.NewSource(3)))
	Expect(err).NotTo(HaveOccurred())

	cam, err := camera.New(800, 600, 0.5)
	Expect(err).NotTo(HaveOccurred())

	clock, err := sim.NewClock(10, 0.1, 100)
	Expect(err).NotTo(HaveOccurred())

	return &sim.State{Population: pop, Camera: cam, Clock: clock}
}

var _ = Describe("Controller", func() {
	var (
		st   *sim.State
		ctrl *control.Controller
	)

	BeforeEach(func() {
		st = newState()
		ctrl = control.New(st, control.DefaultTuning(), nil)
	})

	Describe("Zoom", func() {
		It("multiplies once per event regardless of magnitude", func() {
			ctrl.Zoom(3)
			Expect(st.Camera.Zoom).To(BeNumerically("~", 0.55, 1e-12))
		})

		It("divides on negative events", func() {
			ctrl.Zoom(-1)
			Expect(st.Camera.Zoom).To(BeNumerically("~", 0.5/1.1, 1e-12))
		})

		It("ignores zero", func() {
			ctrl.Zoom(0)
			Expect(st.Camera.Zoom).To(Equal(0.5))
		})

		It("has no bounds", func() {
			for i := 0; i < 200; i++ {
				ctrl.Zoom(-1)
			}
			Expect(st.Camera.Zoom).To(BeNumerically(">", 0))
			Expect(st.Camera.Zoom).To(BeNumerically("<", 1e-8))
		})
	})

	Describe("Pan", func() {
		It("moves per held key", func() {
			ctrl.PanHeld(control.Direction{Up: true, Left: true})
			Expect(st.Camera.Pan).To(Equal(r2.Vec{X: 10, Y: 10}))

			ctrl.PanHeld(control.Direction{Down: true, Right: true})
			ctrl.PanHeld(control.Direction{Down: true})
			Expect(st.Camera.Pan).To(Equal(r2.Vec{X: 0, Y: -10}))
		})

		It("cancels opposite keys", func() {
			ctrl.PanHeld(control.Direction{Up: true, Down: true, Left: true, Right: true})
			Expect(st.Camera.Pan).To(Equal(r2.Vec{}))
		})

		It("only drags between begin and end", func() {
			ctrl.Drag(r2.Vec{X: 5, Y: 5})
			Expect(st.Camera.Pan).To(Equal(r2.Vec{}))

			ctrl.BeginDrag()
			Expect(ctrl.Dragging()).To(BeTrue())
			ctrl.Drag(r2.Vec{X: 5, Y: -2})
			ctrl.Drag(r2.Vec{X: 1, Y: 1})
			ctrl.EndDrag()
			ctrl.Drag(r2.Vec{X: 100})

			Expect(st.Camera.Pan).To(Equal(r2.Vec{X: 6, Y: -1}))
		})
	})

	Describe("TimeStep", func() {
		impliedVelocities := func() []r2.Vec {
			var out []r2.Vec
			for _, b := range st.Population.Movers() {
				out = append(out, b.ImpliedVelocity(st.Clock.TimeStep))
			}
			return out
		}

		It("scales by the factor", func() {
			ts, changed := ctrl.SpeedUp()
			Expect(changed).To(BeTrue())
			Expect(ts).To(BeNumerically("~", 12, 1e-12))

			ts, _ = ctrl.SlowDown()
			Expect(ts).To(BeNumerically("~", 10, 1e-12))
		})

		It("clamps to the clock bounds", func() {
			for i := 0; i < 50; i++ {
				ctrl.SpeedUp()
			}
			Expect(st.Clock.TimeStep).To(Equal(100.0))

			_, changed := ctrl.SpeedUp()
			Expect(changed).To(BeFalse())

			for i := 0; i < 100; i++ {
				ctrl.SlowDown()
			}
			Expect(st.Clock.TimeStep).To(Equal(0.1))
		})

		It("keeps every implied velocity across a change", func() {
			s := sim.New(physics.New(1), integrators.NewVerlet())
			for i := 0; i < 10; i++ {
				s.Tick(st)
			}

			before := impliedVelocities()
			ctrl.SpeedUp()
			after := impliedVelocities()

			Expect(after).To(HaveLen(len(before)))
			for i := range before {
				Expect(r2.Norm(r2.Sub(after[i], before[i]))).To(BeNumerically("<", 1e-9))
			}
		})

		It("leaves the sun untouched", func() {
			sun := st.Population.Sun.Body
			ctrl.SlowDown()
			Expect(st.Population.Sun.Body).To(Equal(sun))
		})
	})

	Describe("Apply", func() {
		It("routes a frame of input", func() {
			ctrl.Apply(control.Input{
				Held:      control.Direction{Up: true, Left: true},
				Wheel:     1,
				DragStart: true,
				Motion:    r2.Vec{X: 3, Y: -4},
				Faster:    true,
			})

			Expect(st.Camera.Zoom).To(BeNumerically("~", 0.55, 1e-12))
			Expect(st.Camera.Pan.X).To(BeNumerically("~", 13, 1e-12))
			Expect(st.Camera.Pan.Y).To(BeNumerically("~", 6, 1e-12))
			Expect(st.Clock.TimeStep).To(BeNumerically("~", 12, 1e-12))
			Expect(ctrl.Dragging()).To(BeTrue())
		})

		It("drops motion once the drag ends", func() {
			ctrl.Apply(control.Input{DragStart: true, DragEnd: true, Motion: r2.Vec{X: 5}})
			Expect(ctrl.Dragging()).To(BeFalse())
			pan := st.Camera.Pan

			ctrl.Apply(control.Input{Motion: r2.Vec{X: 5}, Slower: true})
			Expect(st.Camera.Pan).To(Equal(pan))
			Expect(st.Clock.TimeStep).To(BeNumerically("~", 10/1.2, 1e-12))
		})
	})
})
