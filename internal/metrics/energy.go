package metrics

import (
	"math"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/physics"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

// EnergyDrift tracks the largest relative departure of total energy from
// its first observed value.
type EnergyDrift struct {
	name          string
	gravity       *physics.Gravity
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g *physics.Gravity) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(st *sim.State) {
	pop := st.Population
	energy := e.gravity.Energy(pop.Sun, pop.Movers())

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

// Current is the energy at the last observation.
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift is EnergyDrift for angular momentum about the Sun.
type MomentumDrift struct {
	name     string
	gravity  *physics.Gravity
	initial  float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift(g *physics.Gravity) *MomentumDrift {
	return &MomentumDrift{
		name:    "momentum_drift",
		gravity: g,
	}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(st *sim.State) {
	pop := st.Population
	l := m.gravity.AngularMomentum(pop.Sun, pop.Movers())

	if m.samples == 0 {
		m.initial = l
	}
	m.samples++

	if m.initial != 0 {
		m.maxDrift = math.Max(m.maxDrift, math.Abs(l-m.initial)/math.Abs(m.initial))
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
