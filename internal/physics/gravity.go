package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
)

type Gravity struct {
	G float64
}

func New(g float64) *Gravity {
	return &Gravity{G: g}
}

// PairForce returns the force exerted on the target by the source.
func (g *Gravity) PairForce(srcMass float64, srcPos r2.Vec, tgtMass float64, tgtPos r2.Vec) r2.Vec {
	d := r2.Sub(srcPos, tgtPos)
	dist := r2.Norm(d)
	if dist == 0 {
		return r2.Vec{}
	}
	mag := g.G * (srcMass * tgtMass) / (dist * dist)
	return r2.Scale(mag/dist, d)
}

// NetForce sums the Sun term and every other body's pull on target. Self is
// skipped by identity.
func (g *Gravity) NetForce(target *body.Body, sun *body.Sun, all []*body.Body) r2.Vec {
	f := g.PairForce(sun.Mass, sun.Position, target.Mass, target.Position)
	for _, src := range all {
		if src == target {
			continue
		}
		f = r2.Add(f, g.PairForce(src.Mass, src.Position, target.Mass, target.Position))
	}
	return f
}

// Accumulate writes the net force on all[i] into out[i], reusing out when it
// has the capacity. Positions are only read, so the whole slice is one
// consistent snapshot.
func (g *Gravity) Accumulate(sun *body.Sun, all []*body.Body, out []r2.Vec) []r2.Vec {
	n := len(all)
	if cap(out) < n {
		out = make([]r2.Vec, n)
	}
	out = out[:n]

	for i, tgt := range all {
		f := g.PairForce(sun.Mass, sun.Position, tgt.Mass, tgt.Position)
		for j, src := range all {
			if i == j {
				continue
			}
			f = r2.Add(f, g.PairForce(src.Mass, src.Position, tgt.Mass, tgt.Position))
		}
		out[i] = f
	}
	return out
}

// Energy is kinetic plus potential energy of the movers in the Sun's frame.
// Kinetic energy uses the stored velocity readout.
func (g *Gravity) Energy(sun *body.Sun, all []*body.Body) float64 {
	ke, pe := 0.0, 0.0
	for i, a := range all {
		v := a.Velocity
		ke += 0.5 * a.Mass * r2.Dot(v, v)

		if r := r2.Norm(r2.Sub(a.Position, sun.Position)); r > 0 {
			pe -= g.G * sun.Mass * a.Mass / r
		}
		for _, b := range all[i+1:] {
			if r := r2.Norm(r2.Sub(a.Position, b.Position)); r > 0 {
				pe -= g.G * a.Mass * b.Mass / r
			}
		}
	}
	return ke + pe
}

// AngularMomentum about the Sun.
func (g *Gravity) AngularMomentum(sun *body.Sun, all []*body.Body) float64 {
	l := 0.0
	for _, b := range all {
		l += b.Mass * r2.Cross(r2.Sub(b.Position, sun.Position), b.Velocity)
	}
	return l
}
