package optim

import (
	"context"
	"math"
	"testing"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/config"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/experiment"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

func TestPoints(t *testing.T) {
	g := NewGridSearch([]string{"timestep", "seed"}, [][]float64{{1, 10}, {1, 2, 3}})
	points := g.Points()
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if points[0]["timestep"] != 1 || points[0]["seed"] != 1 {
		t.Errorf("unexpected first point %v", points[0])
	}
	if points[5]["timestep"] != 10 || points[5]["seed"] != 3 {
		t.Errorf("unexpected last point %v", points[5])
	}
	if got := points[4].String(); got != "seed=2 timestep=10" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestApply(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := Apply(cfg, Point{"timestep": 5, "asteroids": 12, "seed": 9}); err != nil {
		t.Fatal(err)
	}
	if cfg.Clock.TimeStep != 5 || cfg.Belt.Count != 12 || cfg.Seed != 9 {
		t.Errorf("values not applied: %+v %+v %d", cfg.Clock, cfg.Belt, cfg.Seed)
	}
	if err := Apply(cfg, Point{"mass": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestApplyRejectsNonIntegerCounts(t *testing.T) {
	tests := []struct {
		name  string
		point Point
	}{
		{"fractional seed", Point{"seed": 1.5}},
		{"negative seed", Point{"seed": -1}},
		{"NaN seed", Point{"seed": math.NaN()}},
		{"fractional asteroids", Point{"asteroids": 2.5}},
		{"negative asteroids", Point{"asteroids": -3}},
		{"infinite asteroids", Point{"asteroids": math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if err := Apply(cfg, tt.point); err == nil {
				t.Errorf("expected error for %v", tt.point)
			}
			if cfg.Seed != config.DefaultSeed || cfg.Belt.Count != config.DefaultAsteroids {
				t.Error("rejected value should leave cfg unchanged")
			}
		})
	}
}

func TestSearchPicksSmallestDrift(t *testing.T) {
	build := func(p Point) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Belt.Count = 5
		if err := Apply(cfg, p); err != nil {
			return nil, err
		}
		return experiment.New(cfg, nil)
	}

	g := NewGridSearch([]string{"timestep"}, [][]float64{{1, 50}})
	outcomes, best, err := g.Search(context.Background(), build, "energy_drift", sim.RunConfig{Steps: 300, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if math.IsInf(o.Value, 1) || o.Result.StepsTaken != 300 {
			t.Errorf("%s: unexpected outcome value=%g", o.Params, o.Value)
		}
	}
	if best != 0 {
		t.Errorf("expected the smaller time step to drift least, got %s", outcomes[best].Params)
	}
}

func TestSearchUnknownMetric(t *testing.T) {
	build := func(p Point) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Belt.Count = 0
		return experiment.New(cfg, nil)
	}
	g := NewGridSearch([]string{"seed"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), build, "nope", sim.RunConfig{Steps: 1}); err == nil {
		t.Error("expected error for unknown metric")
	}
}
