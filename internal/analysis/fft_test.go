package analysis

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		dt     float64
		period float64
	}{
		{"power of two", 256, 1, 32},
		{"odd length", 300, 0.5, 15},
		{"coarse", 64, 10, 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 100 + 3*math.Sin(2*math.Pi*float64(i)*tt.dt/tt.period)
			}

			got, err := DominantPeriod(data, tt.dt)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.period)/tt.period > 0.05 {
				t.Errorf("expected period %g, got %g", tt.period, got)
			}
		})
	}
}

func TestDominantPeriodErrors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2, 3}, 1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}

	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 42
	}
	if _, err := DominantPeriod(flat, 1); !errors.Is(err, ErrNoPeriod) {
		t.Errorf("expected ErrNoPeriod, got %v", err)
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	for i, v := range ps {
		if v > 1e-9 {
			t.Errorf("bin %d: expected 0, got %g", i, v)
		}
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil for empty input")
	}
}

func TestSweptPeriod(t *testing.T) {
	center := r2.Vec{X: 960, Y: 540}
	period := 40.0
	dt := 1.0

	points := make([]r2.Vec, 100)
	for i := range points {
		a := 2 * math.Pi * float64(i) * dt / period
		points[i] = r2.Add(center, r2.Vec{X: 200 * math.Cos(a), Y: 200 * math.Sin(a)})
	}

	got, err := SweptPeriod(points, center, dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-period) > 1e-6 {
		t.Errorf("expected %g, got %g", period, got)
	}

	d := Distances(points, center)
	for i, v := range d {
		if math.Abs(v-200) > 1e-9 {
			t.Errorf("point %d: distance %g", i, v)
		}
	}
}

func TestSweptPeriodStill(t *testing.T) {
	pts := []r2.Vec{{X: 1}, {X: 1}, {X: 1}}
	if _, err := SweptPeriod(pts, r2.Vec{}, 1); !errors.Is(err, ErrNoPeriod) {
		t.Errorf("expected ErrNoPeriod, got %v", err)
	}
}
