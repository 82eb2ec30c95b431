package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/config"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Belt.Count = 20
	cfg.Run.Steps = 200
	cfg.Run.SampleEvery = 20
	return cfg
}

func TestExperimentRun(t *testing.T) {
	e, err := New(smallConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	reg := NewRegistry()
	ms, err := reg.Metrics(reg.ListMetrics(), e)
	if err != nil {
		t.Fatal(err)
	}
	e.Setup(ms)

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 200 {
		t.Errorf("expected 200 steps, got %d", result.StepsTaken)
	}
	if len(result.Samples) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Samples))
	}
	if len(result.Names) != 9 {
		t.Errorf("expected sun + 8 planets tracked, got %d", len(result.Names))
	}
	if got := result.Metrics["population"]; got != 1+8+20 {
		t.Errorf("expected population 29, got %v", got)
	}
	if got := result.Metrics["escaped"]; got != 0 {
		t.Errorf("expected nothing escaped, got %v", got)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors %v", result.Errors)
	}
}

func TestExperimentCanceledRunReportsPopulation(t *testing.T) {
	e, err := New(smallConfig(), nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	reg := NewRegistry()
	ms, err := reg.Metrics(reg.ListMetrics(), e)
	if err != nil {
		t.Fatal(err)
	}
	e.Setup(ms)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
	if got := result.Metrics["population"]; got != 1+8+20 {
		t.Errorf("expected population 29, got %v", got)
	}
}

func TestExperimentRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.View.Width = 0

	_, err := New(cfg, nil)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
}

func TestNewStateDeterministic(t *testing.T) {
	a, err := NewState(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewState(smallConfig())

	for i := range a.Population.Asteroids {
		if a.Population.Asteroids[i].Position != b.Population.Asteroids[i].Position {
			t.Fatalf("asteroid %d differs for equal seeds", i)
		}
	}
	if a.Population.Sun.Position.X != 960 {
		t.Errorf("sun should sit at the viewport centre, got %v", a.Population.Sun.Position)
	}
}

func TestExperimentReset(t *testing.T) {
	e, err := New(smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	st := e.State()
	start := st.Population.Planets[2].Position

	for i := 0; i < 10; i++ {
		e.Tick()
	}
	st.Camera.Zoom = 3
	if st.Population.Planets[2].Position == start {
		t.Fatal("ticks should move Earth")
	}

	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if e.State() != st {
		t.Error("reset must keep the state pointer")
	}
	if st.Population.Planets[2].Position != start || st.Clock.Ticks != 0 || st.Camera.Zoom != 0.1 {
		t.Error("reset did not restore the initial state")
	}
}

func TestRegistryUnknownMetric(t *testing.T) {
	e, _ := New(smallConfig(), nil)
	if _, err := NewRegistry().GetMetric("nope", e); err == nil {
		t.Error("expected error for unknown metric")
	}
}
