package sim

import (
	"fmt"
	"math"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/body"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/camera"
)

type Clock struct {
	TimeStep float64
	Min      float64
	Max      float64

	Ticks   int
	Elapsed float64
}

func NewClock(timeStep, min, max float64) (Clock, error) {
	if min <= 0 || min > max {
		return Clock{}, fmt.Errorf("%w: bounds [%g, %g]", ErrClock, min, max)
	}
	if timeStep < min || timeStep > max {
		return Clock{}, fmt.Errorf("%w: time step %g outside [%g, %g]", ErrClock, timeStep, min, max)
	}
	return Clock{TimeStep: timeStep, Min: min, Max: max}, nil
}

func (c *Clock) clamp(ts float64) float64 {
	return math.Max(c.Min, math.Min(c.Max, ts))
}

// State is everything one tick reads and writes.
type State struct {
	Population *body.Population
	Camera     *camera.Camera
	Clock      Clock
}

// SetTimeStep clamps ts to the clock bounds and, when the value changes,
// rebuilds every mover's previous position from its velocity so the next
// step keeps the same implied velocity.
func (s *State) SetTimeStep(ts float64) (float64, bool) {
	ts = s.Clock.clamp(ts)
	if ts == s.Clock.TimeStep {
		return ts, false
	}
	s.Clock.TimeStep = ts
	s.Population.Retime(ts)
	return ts, true
}

// Valid reports whether every mover has a finite position.
func (s *State) Valid() (string, bool) {
	for _, b := range s.Population.Movers() {
		if !finite(b.Position.X) || !finite(b.Position.Y) {
			return b.Name, false
		}
	}
	return "", true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
