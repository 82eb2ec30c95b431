package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrTooShort = errors.New("analysis: series too short")
	ErrNoPeriod = errors.New("analysis: no periodic component")
)

const minSamples = 8

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data with its mean removed.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod finds the strongest non-constant frequency in data sampled
// every dt and returns its period in the same time unit.
func DominantPeriod(data []float64, dt float64) (float64, error) {
	if len(data) < minSamples {
		return 0, ErrTooShort
	}

	ps := PowerSpectrum(data)
	best, bestMag := 0, 0.0
	total := 0.0
	for k := 1; k < len(ps); k++ {
		total += ps[k]
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 || bestMag <= 1e-12*math.Max(1, total) {
		return 0, ErrNoPeriod
	}

	return float64(len(data)) * dt / float64(best), nil
}

func Distances(points []r2.Vec, center r2.Vec) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = r2.Norm(r2.Sub(p, center))
	}
	return out
}

// Angles returns the unwrapped polar angle of each point around center.
func Angles(points []r2.Vec, center r2.Vec) []float64 {
	out := make([]float64, len(points))
	prev := 0.0
	offset := 0.0
	for i, p := range points {
		d := r2.Sub(p, center)
		a := math.Atan2(d.Y, d.X)
		if i > 0 {
			switch {
			case a-prev > math.Pi:
				offset -= 2 * math.Pi
			case a-prev < -math.Pi:
				offset += 2 * math.Pi
			}
		}
		prev = a
		out[i] = a + offset
	}
	return out
}

// SweptPeriod estimates the period from the total angle swept. It works for
// circular orbits, where DominantPeriod has nothing to find.
func SweptPeriod(points []r2.Vec, center r2.Vec, dt float64) (float64, error) {
	if len(points) < 2 {
		return 0, ErrTooShort
	}
	a := Angles(points, center)
	swept := math.Abs(a[len(a)-1] - a[0])
	if swept == 0 {
		return 0, ErrNoPeriod
	}
	elapsed := float64(len(points)-1) * dt
	return 2 * math.Pi * elapsed / swept, nil
}
