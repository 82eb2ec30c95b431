// Package camera maps simulation coordinates to screen pixels.
//
// The transform is a uniform scale about the viewport centre followed by a
// pixel offset:
//
//	screen = (world − centre)·zoom + centre + pan
package camera

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var ErrViewport = errors.New("camera: invalid viewport")

type Camera struct {
	Zoom float64
	Pan  r2.Vec

	Width  int
	Height int
}

func New(width, height int, zoom float64) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrViewport, width, height)
	}
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return nil, fmt.Errorf("%w: zoom must be positive, got %g", ErrViewport, zoom)
	}
	return &Camera{Zoom: zoom, Width: width, Height: height}, nil
}

func (c *Camera) Center() r2.Vec {
	return r2.Vec{X: float64(c.Width) / 2, Y: float64(c.Height) / 2}
}

func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	center := c.Center()
	return r2.Add(r2.Add(r2.Scale(c.Zoom, r2.Sub(p, center)), center), c.Pan)
}

// ScreenToWorld is the inverse of WorldToScreen for the same zoom and pan.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	center := c.Center()
	return r2.Add(r2.Scale(1/c.Zoom, r2.Sub(r2.Sub(s, c.Pan), center)), center)
}

// ScreenRadius scales a world length to whole pixels, never below min.
func (c *Camera) ScreenRadius(r float64, min int) int {
	px := int(r * c.Zoom)
	if px < min {
		return min
	}
	return px
}

// Hit reports whether pointer lies strictly inside the disc.
func Hit(pointer, center r2.Vec, radius int) bool {
	return r2.Norm(r2.Sub(pointer, center)) < float64(radius)
}
