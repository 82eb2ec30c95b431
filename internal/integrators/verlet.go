package integrators

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
)

// ForceField computes the net force on every body from one position
// snapshot, writing into out when it can.
type ForceField interface {
	Accumulate(sun *body.Sun, all []*body.Body, out []r2.Vec) []r2.Vec
}

// Advance moves b by one position-Verlet step:
//
//	next = 2·pos − prev + (F/m)·ts²
//
// Velocity is refreshed from the new pair of positions and is not read.
func Advance(b *body.Body, force r2.Vec, timeStep float64) {
	acc := r2.Scale(1/b.Mass, force)
	old := b.Position
	next := r2.Add(r2.Sub(r2.Scale(2, old), b.PreviousPosition), r2.Scale(timeStep*timeStep, acc))

	b.PreviousPosition = old
	b.Position = next
	b.Velocity = r2.Scale(1/timeStep, r2.Sub(next, old))
}

type Verlet struct {
	forces []r2.Vec
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

// Step computes every force before moving any body.
func (v *Verlet) Step(field ForceField, sun *body.Sun, all []*body.Body, timeStep float64) {
	v.forces = field.Accumulate(sun, all, v.forces)
	for i, b := range all {
		Advance(b, v.forces[i], timeStep)
	}
}

// Forces from the last Step, indexed like its bodies.
func (v *Verlet) Forces() []r2.Vec { return v.forces }
