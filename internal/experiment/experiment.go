package experiment

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/rand"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/config"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/integrators"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/physics"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/registry"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

// Experiment owns one seeded solar system and the simulator that drives it.
// Headless runs and both live views go through it.
type Experiment struct {
	cfg       *config.Config
	gravity   *physics.Gravity
	state     *sim.State
	simulator *sim.Simulator
	log       hclog.Logger
}

func New(cfg *config.Config, log hclog.Logger) (*Experiment, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := NewState(cfg)
	if err != nil {
		return nil, err
	}

	g := physics.New(cfg.G)
	s := sim.New(g, integrators.NewVerlet())
	s.SetLogger(log.Named("sim"))

	return &Experiment{
		cfg:       cfg,
		gravity:   g,
		state:     st,
		simulator: s,
		log:       log,
	}, nil
}

// NewState seeds a fresh population from cfg. Equal seeds give equal states.
func NewState(cfg *config.Config) (*sim.State, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	pop, err := registry.Initialize(cfg.RegistryParams(), rng)
	if err != nil {
		return nil, err
	}
	cam, err := cfg.NewCamera()
	if err != nil {
		return nil, err
	}
	clock, err := cfg.NewClock()
	if err != nil {
		return nil, err
	}
	return &sim.State{Population: pop, Camera: cam, Clock: clock}, nil
}

func (e *Experiment) Setup(metrics []sim.Metric) {
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
}

func (e *Experiment) Tick() { e.simulator.Tick(e.state) }

// Run ticks the configured number of steps and stops at the first
// non-finite position.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	e.log.Info("run started",
		"seed", e.cfg.Seed,
		"bodies", e.state.Population.Count(),
		"steps", e.cfg.Run.Steps,
		"timestep", e.state.Clock.TimeStep)

	result, err := e.simulator.Run(ctx, e.state, sim.RunConfig{
		Steps:         e.cfg.Run.Steps,
		SampleEvery:   e.cfg.Run.SampleEvery,
		ValidateState: true,
	})
	if err != nil {
		return result, err
	}

	for _, rerr := range result.Errors {
		e.log.Warn("run diverged", "error", rerr)
	}
	e.log.Info("run finished", "steps", result.StepsTaken, "samples", len(result.Samples))
	return result, nil
}

// Reset reseeds the population and resets every metric. Camera and clock
// return to their configured values.
func (e *Experiment) Reset() error {
	st, err := NewState(e.cfg)
	if err != nil {
		return err
	}
	*e.state = *st
	for _, m := range e.simulator.Metrics() {
		m.Reset()
	}
	e.log.Debug("state reset", "seed", e.cfg.Seed)
	return nil
}

func (e *Experiment) Config() *config.Config       { return e.cfg }
func (e *Experiment) State() *sim.State            { return e.state }
func (e *Experiment) Gravity() *physics.Gravity    { return e.gravity }
func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }
