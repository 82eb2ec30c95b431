package sim

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/integrators"
)

type Simulator struct {
	field      integrators.ForceField
	integrator Integrator
	metrics    []Metric
	observers  []Observer
	log        hclog.Logger
}

func New(field integrators.ForceField, integrator Integrator) *Simulator {
	return &Simulator{
		field:      field,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        hclog.NewNullLogger(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l hclog.Logger) {
	if l != nil {
		s.log = l
	}
}

func (s *Simulator) Metrics() []Metric { return s.metrics }

// Tick runs one full physics pass and then notifies metrics and observers,
// which therefore always see a fully advanced population.
func (s *Simulator) Tick(st *State) {
	pop := st.Population
	s.integrator.Step(s.field, pop.Sun, pop.Movers(), st.Clock.TimeStep)
	st.Clock.Ticks++
	st.Clock.Elapsed += st.Clock.TimeStep

	for _, m := range s.metrics {
		m.Observe(st)
	}
	for _, obs := range s.observers {
		obs.OnTick(st)
	}
}

// Run ticks st cfg.Steps times without a window. Metrics are reset and see
// the starting state before the first tick. Numerical divergence is recorded
// in Result.Errors only when ValidateState is set.
func (s *Simulator) Run(ctx context.Context, st *State, cfg RunConfig) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every == 0 {
		every = 1
	}

	result := &Result{
		Names:   trackedNames(st),
		Samples: make([]Sample, 0, cfg.Steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(st)
	}

	result.Samples = append(result.Samples, sample(st))
	s.log.Debug("run started", "steps", cfg.Steps, "bodies", st.Population.Count(), "timestep", st.Clock.TimeStep)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		s.Tick(st)
		result.StepsTaken++

		if cfg.ValidateState {
			if name, ok := st.Valid(); !ok {
				err := SimError{Step: st.Clock.Ticks, Time: st.Clock.Elapsed, Body: name, Message: "non-finite position"}
				result.Errors = append(result.Errors, err)
				s.log.Warn("state diverged", "step", st.Clock.Ticks, "body", name)
				break
			}
		}

		if st.Clock.Ticks%every == 0 {
			result.Samples = append(result.Samples, sample(st))
		}
	}

	s.collect(result)
	return result, nil
}

// collect records metric values, including on a partial run.
func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg RunConfig) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d", cfg.SampleEvery)
	}
	return nil
}

func trackedNames(st *State) []string {
	pop := st.Population
	names := make([]string, 0, 1+len(pop.Planets))
	names = append(names, pop.Sun.Name)
	for _, p := range pop.Planets {
		names = append(names, p.Name)
	}
	return names
}

func sample(st *State) Sample {
	pop := st.Population
	pos := make([]r2.Vec, 0, 1+len(pop.Planets))
	pos = append(pos, pop.Sun.Position)
	for _, p := range pop.Planets {
		pos = append(pos, p.Position)
	}
	return Sample{Tick: st.Clock.Ticks, Time: st.Clock.Elapsed, Positions: pos}
}
