// Package registry seeds the bodies of a run: the Sun at a fixed point, the
// planets on circular orbits, and an asteroid belt sampled inside an annulus.
package registry

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
)

var ErrContract = errors.New("registry: invalid parameters")

type SunParams struct {
	Name     string
	Color    string
	Mass     float64
	Diameter float64
	Position r2.Vec
}

type PlanetParams struct {
	Name     string
	Color    string
	Mass     float64
	Diameter float64

	// BaseDistance is measured from the Sun's surface.
	BaseDistance float64
}

// BeltParams radii are measured from the Sun's centre.
type BeltParams struct {
	Count       int
	InnerRadius float64
	OuterRadius float64
	MinMass     float64
	MaxMass     float64
	MinDiameter float64
	MaxDiameter float64
	Color       string
}

type Params struct {
	G        float64
	TimeStep float64
	Sun      SunParams
	Planets  []PlanetParams
	Belt     BeltParams
}

func CircularSpeed(g, centralMass, r float64) float64 {
	return math.Sqrt(g * centralMass / r)
}

// Initialize builds the population. Planet i starts at angle i·π/4. The
// returned error is always a contract violation wrapping ErrContract.
func Initialize(p Params, rng *rand.Rand) (*body.Population, error) {
	if err := check(p); err != nil {
		return nil, err
	}

	sun := &body.Sun{Body: body.Body{
		Name:             p.Sun.Name,
		Color:            p.Sun.Color,
		Mass:             p.Sun.Mass,
		Radius:           p.Sun.Diameter / 2,
		Position:         p.Sun.Position,
		PreviousPosition: p.Sun.Position,
	}}

	planets := make([]*body.Planet, len(p.Planets))
	for i, pp := range p.Planets {
		orbital := pp.BaseDistance + sun.Radius
		angle := float64(i) * math.Pi / 4
		planets[i] = &body.Planet{
			Body: body.Body{
				Name:   pp.Name,
				Color:  pp.Color,
				Mass:   pp.Mass,
				Radius: pp.Diameter / 2,
			},
			OrbitalRadius: orbital,
		}
		place(&planets[i].Body, sun, p.G, orbital, angle, p.TimeStep)
	}

	belt := p.Belt
	asteroids := make([]*body.Asteroid, belt.Count)
	for i := range asteroids {
		r := uniform(rng, belt.InnerRadius, belt.OuterRadius)
		angle := uniform(rng, 0, 2*math.Pi)
		a := &body.Asteroid{Body: body.Body{
			Name:   fmt.Sprintf("asteroid-%d", i),
			Color:  belt.Color,
			Mass:   uniform(rng, belt.MinMass, belt.MaxMass),
			Radius: uniform(rng, belt.MinDiameter, belt.MaxDiameter) / 2,
		}}
		place(&a.Body, sun, p.G, r, angle, p.TimeStep)
		asteroids[i] = a
	}

	return body.NewPopulation(sun, planets, asteroids), nil
}

func place(b *body.Body, sun *body.Sun, g, r, angle, timeStep float64) {
	sin, cos := math.Sincos(angle)
	speed := CircularSpeed(g, sun.Mass, r)
	b.Position = r2.Add(sun.Position, r2.Vec{X: r * cos, Y: r * sin})
	b.Velocity = r2.Vec{X: -speed * sin, Y: speed * cos}
	b.Retime(timeStep)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func check(p Params) error {
	switch {
	case p.G <= 0:
		return fmt.Errorf("%w: G must be positive, got %g", ErrContract, p.G)
	case p.TimeStep <= 0:
		return fmt.Errorf("%w: time step must be positive, got %g", ErrContract, p.TimeStep)
	case p.Sun.Mass <= 0:
		return fmt.Errorf("%w: sun mass must be positive, got %g", ErrContract, p.Sun.Mass)
	case p.Belt.Count < 0:
		return fmt.Errorf("%w: negative asteroid count %d", ErrContract, p.Belt.Count)
	}
	for _, pp := range p.Planets {
		if pp.Mass <= 0 {
			return fmt.Errorf("%w: planet %s mass must be positive, got %g", ErrContract, pp.Name, pp.Mass)
		}
		if pp.BaseDistance+p.Sun.Diameter/2 <= 0 {
			return fmt.Errorf("%w: planet %s orbit must be positive", ErrContract, pp.Name)
		}
	}
	if p.Belt.Count > 0 {
		b := p.Belt
		if b.InnerRadius <= 0 || b.InnerRadius > b.OuterRadius {
			return fmt.Errorf("%w: belt radii [%g, %g]", ErrContract, b.InnerRadius, b.OuterRadius)
		}
		if b.MinMass <= 0 || b.MinMass > b.MaxMass {
			return fmt.Errorf("%w: asteroid mass range [%g, %g]", ErrContract, b.MinMass, b.MaxMass)
		}
		if b.MinDiameter <= 0 || b.MinDiameter > b.MaxDiameter {
			return fmt.Errorf("%w: asteroid diameter range [%g, %g]", ErrContract, b.MinDiameter, b.MaxDiameter)
		}
	}
	return nil
}
