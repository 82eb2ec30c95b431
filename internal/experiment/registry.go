package experiment

import (
	"fmt"
	"sort"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/metrics"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

// Registry names the metrics a run can observe.
type Registry struct {
	metrics map[string]func(*Experiment) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(*Experiment) sim.Metric),
	}

	r.metrics["energy_drift"] = func(e *Experiment) sim.Metric { return metrics.NewEnergyDrift(e.Gravity()) }
	r.metrics["momentum_drift"] = func(e *Experiment) sim.Metric { return metrics.NewMomentumDrift(e.Gravity()) }
	r.metrics["escaped"] = func(e *Experiment) sim.Metric { return metrics.NewEscaped(e.Config().Run.EscapeRadius) }
	r.metrics["population"] = func(e *Experiment) sim.Metric { return metrics.NewPopulation() }

	return r
}

func (r *Registry) GetMetric(name string, e *Experiment) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(e), nil
}

// Metrics builds every named metric, failing on the first unknown name.
func (r *Registry) Metrics(names []string, e *Experiment) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, e)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
