package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

// Escaped counts bodies beyond radius from the Sun at the last observation.
// Escaped bodies stay in the population; this only reports them.
type Escaped struct {
	name    string
	radius  float64
	escaped int
}

func NewEscaped(radius float64) *Escaped {
	return &Escaped{
		name:   "escaped",
		radius: radius,
	}
}

func (e *Escaped) Name() string { return e.name }

func (e *Escaped) Observe(st *sim.State) {
	sun := st.Population.Sun.Position
	n := 0
	for _, b := range st.Population.Movers() {
		if r2.Norm(r2.Sub(b.Position, sun)) > e.radius {
			n++
		}
	}
	e.escaped = n
}

func (e *Escaped) Value() float64 { return float64(e.escaped) }

func (e *Escaped) Reset() { e.escaped = 0 }

// Population reports the body count, Sun included, at the last observation.
type Population struct {
	name  string
	count int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(st *sim.State) { p.count = st.Population.Count() }

func (p *Population) Value() float64 { return float64(p.count) }

func (p *Population) Reset() { p.count = 0 }
