package sim

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/integrators"
)

type Integrator interface {
	Step(field integrators.ForceField, sun *body.Sun, all []*body.Body, timeStep float64)
}

type Metric interface {
	Name() string
	Observe(st *State)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(st *State)
}

type RunConfig struct {
	Steps       int
	SampleEvery int

	// ValidateState stops the run at the first non-finite position.
	ValidateState bool
}

// Sample holds Sun and planet positions, ordered like Result.Names.
type Sample struct {
	Tick      int
	Time      float64
	Positions []r2.Vec
}

type Result struct {
	Names      []string
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Track extracts one body's sampled positions.
func (r *Result) Track(name string) ([]r2.Vec, bool) {
	idx := -1
	for i, n := range r.Names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]r2.Vec, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Positions[idx]
	}
	return out, true
}
