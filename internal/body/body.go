// Package body holds the mass-bearing records of the solar system: the Sun,
// the planets and the asteroid belt.
//
// Velocity is never an integration input. It is derived from Position and
// PreviousPosition after every step and kept only as a readout, so any
// out-of-band change to the time step must go through [Body.Retime].
package body

import (
	"gonum.org/v1/gonum/spatial/r2"
)

type Kind int

const (
	KindSun Kind = iota
	KindPlanet
	KindAsteroid
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	case KindAsteroid:
		return "asteroid"
	}
	return "unknown"
}

// Body is a point mass. Radius is display-scale only.
type Body struct {
	Name  string
	Color string

	Mass   float64
	Radius float64

	Position         r2.Vec
	PreviousPosition r2.Vec
	Velocity         r2.Vec
}

func (b *Body) Core() *Body { return b }

func (b *Body) Diameter() float64 { return 2 * b.Radius }

// Retime rebuilds the position history for a new time step so the next
// integration step implies the current velocity.
func (b *Body) Retime(timeStep float64) {
	b.PreviousPosition = r2.Sub(b.Position, r2.Scale(timeStep, b.Velocity))
}

// ImpliedVelocity is the velocity the integrator will see on its next step.
func (b *Body) ImpliedVelocity(timeStep float64) r2.Vec {
	return r2.Scale(1/timeStep, r2.Sub(b.Position, b.PreviousPosition))
}

func (b *Body) Speed(timeStep float64) float64 {
	return r2.Norm(b.ImpliedVelocity(timeStep))
}

// Massive is the view shared by every body kind.
type Massive interface {
	Core() *Body
	Kind() Kind
}

type Sun struct {
	Body
}

func (*Sun) Kind() Kind { return KindSun }

type Planet struct {
	Body

	// OrbitalRadius is the distance from the Sun at seeding time. It is kept
	// for reference rings and never recomputed.
	OrbitalRadius float64
}

func (*Planet) Kind() Kind { return KindPlanet }

type Asteroid struct {
	Body
}

func (*Asteroid) Kind() Kind { return KindAsteroid }
