// Package view turns a simulation state into screen-space primitives: discs,
// reference orbit rings, at most one hover tooltip and the controls overlay.
// Both front ends draw from the same Frame.
package view

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/camera"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

const (
	// Display scales for the tooltip readouts.
	massScale  = 1e20
	speedScale = 1000

	minBodyPixels     = 2
	minAsteroidPixels = 1
)

type Disc struct {
	Name   string
	Kind   body.Kind
	Center r2.Vec
	Radius int
	Color  RGB
}

type Ring struct {
	Center r2.Vec
	Radius float64
	Color  RGB
}

type Tooltip struct {
	Target string
	Anchor r2.Vec
	Lines  []string
}

type Frame struct {
	Sun       Disc
	Orbits    []Ring
	Planets   []Disc
	Asteroids []Disc
	Tooltip   *Tooltip
	Overlay   []string
}

type Builder struct {
	palette *Palette
	orbit   RGB
}

func NewBuilder(orbitColor string) *Builder {
	p := NewPalette()
	return &Builder{palette: p, orbit: p.Color(orbitColor)}
}

// Build projects every body through the state's camera. pointer is in screen
// pixels; only the Sun and planets can be hovered, first match wins.
func (b *Builder) Build(st *sim.State, pointer r2.Vec) Frame {
	pop := st.Population
	cam := st.Camera
	ts := st.Clock.TimeStep

	f := Frame{
		Orbits:    make([]Ring, len(pop.Planets)),
		Planets:   make([]Disc, len(pop.Planets)),
		Asteroids: make([]Disc, len(pop.Asteroids)),
	}

	f.Sun = b.disc(cam, &pop.Sun.Body, body.KindSun, minBodyPixels)
	if camera.Hit(pointer, f.Sun.Center, f.Sun.Radius) {
		f.Tooltip = sunTooltip(pop.Sun, f.Sun)
	}

	for i, p := range pop.Planets {
		f.Orbits[i] = Ring{Center: f.Sun.Center, Radius: p.OrbitalRadius * cam.Zoom, Color: b.orbit}
		f.Planets[i] = b.disc(cam, &p.Body, body.KindPlanet, minBodyPixels)
		if f.Tooltip == nil && camera.Hit(pointer, f.Planets[i].Center, f.Planets[i].Radius) {
			f.Tooltip = planetTooltip(p, f.Planets[i], ts)
		}
	}

	for i, a := range pop.Asteroids {
		f.Asteroids[i] = b.disc(cam, &a.Body, body.KindAsteroid, minAsteroidPixels)
	}

	f.Overlay = Overlay(ts, len(pop.Asteroids))
	return f
}

func (b *Builder) disc(cam *camera.Camera, bd *body.Body, kind body.Kind, min int) Disc {
	return Disc{
		Name:   bd.Name,
		Kind:   kind,
		Center: cam.WorldToScreen(bd.Position),
		Radius: cam.ScreenRadius(bd.Radius, min),
		Color:  b.palette.Color(bd.Color),
	}
}

func sunTooltip(s *body.Sun, d Disc) *Tooltip {
	return &Tooltip{
		Target: s.Name,
		Anchor: r2.Vec{X: d.Center.X + float64(d.Radius) + 5, Y: d.Center.Y - 30},
		Lines: []string{
			s.Name,
			fmt.Sprintf("Mass: %.2e kg", s.Mass*massScale),
			fmt.Sprintf("Diameter: %.1f thousand km", s.Diameter()),
		},
	}
}

func planetTooltip(p *body.Planet, d Disc, ts float64) *Tooltip {
	return &Tooltip{
		Target: p.Name,
		Anchor: r2.Vec{X: d.Center.X + float64(d.Radius) + 5, Y: d.Center.Y - 50},
		Lines: []string{
			"Name: " + p.Name,
			fmt.Sprintf("Mass: %.2e kg", p.Mass*massScale),
			fmt.Sprintf("Distance from Sun: %.1f million km", p.OrbitalRadius),
			fmt.Sprintf("Speed: %.2f km/s", p.Speed(ts)*speedScale),
			fmt.Sprintf("Diameter: %.3f thousand km", p.Diameter()),
		},
	}
}

func Overlay(timeStep float64, asteroids int) []string {
	return []string{
		"Controls:",
		"WASD - move camera",
		"Mouse wheel - zoom",
		"Middle mouse button - pan",
		"Up/Down arrows - simulation speed",
		fmt.Sprintf("TimeStep: %.2e", timeStep),
		fmt.Sprintf("Asteroids: %d", asteroids),
	}
}
