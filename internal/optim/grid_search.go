package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/config"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/experiment"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

// Point is one combination of swept parameter values.
type Point map[string]float64

// String lists the values in name order.
func (p Point) String() string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	s := ""
	for i, k := range names {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%g", k, p[k])
	}
	return s
}

// Params are the configuration fields a sweep can vary.
var Params = map[string]func(*config.Config, float64) error{
	"timestep": func(c *config.Config, v float64) error {
		c.Clock.TimeStep = v
		return nil
	},
	"seed": func(c *config.Config, v float64) error {
		if err := count("seed", v); err != nil {
			return err
		}
		c.Seed = uint64(v)
		return nil
	},
	"asteroids": func(c *config.Config, v float64) error {
		if err := count("asteroids", v); err != nil {
			return err
		}
		c.Belt.Count = int(v)
		return nil
	},
	"g": func(c *config.Config, v float64) error {
		c.G = v
		return nil
	},
}

// maxCount keeps integer conversions exact.
const maxCount = 1 << 53

func count(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > maxCount || v != math.Trunc(v) {
		return fmt.Errorf("sweep parameter %s must be a non-negative integer, got %g", name, v)
	}
	return nil
}

// Apply writes p into cfg.
func Apply(cfg *config.Config, p Point) error {
	for k, v := range p {
		set, ok := Params[k]
		if !ok {
			return fmt.Errorf("unknown sweep parameter: %s", k)
		}
		if err := set(cfg, v); err != nil {
			return err
		}
	}
	return nil
}

type Outcome struct {
	Params Point
	Result *sim.Result
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Points enumerates the grid with the first parameter varying slowest.
func (g *GridSearch) Points() []Point {
	var out []Point
	g.collect(0, Point{}, &out)
	return out
}

func (g *GridSearch) collect(depth int, current Point, out *[]Point) {
	if depth == len(g.paramNames) {
		p := make(Point, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.collect(depth+1, current, out)
	}
	delete(current, name)
}

// Search builds one experiment per grid point, observes metricName on each
// and runs them together. Outcomes come back in grid order with the index of
// the smallest value, or -1 if every run failed.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(Point) (*experiment.Experiment, error),
	metricName string,
	cfg sim.RunConfig,
) ([]Outcome, int, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, -1, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	registry := experiment.NewRegistry()
	points := g.Points()
	members := make([]sim.Member, len(points))
	for i, p := range points {
		exp, err := build(p)
		if err != nil {
			return nil, -1, fmt.Errorf("%s: %w", p, err)
		}
		m, err := registry.GetMetric(metricName, exp)
		if err != nil {
			return nil, -1, err
		}
		exp.Setup([]sim.Metric{m})
		members[i] = sim.Member{Simulator: exp.GetSimulator(), State: exp.State()}
	}

	results, runErr := sim.NewEnsemble(members...).Run(ctx, cfg)

	outcomes := make([]Outcome, len(points))
	best, bestVal := -1, math.Inf(1)
	for i, p := range points {
		o := Outcome{Params: p, Result: results[i], Value: math.Inf(1)}
		if results[i] != nil && len(results[i].Errors) == 0 {
			o.Value = results[i].Metrics[metricName]
		}
		if o.Value < bestVal {
			best, bestVal = i, o.Value
		}
		outcomes[i] = o
	}
	return outcomes, best, runErr
}
