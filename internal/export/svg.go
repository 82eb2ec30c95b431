package export

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

type Path struct {
	Name   string
	Color  string
	Points []r2.Vec
}

// TracksToSVG draws every path on one canvas with a shared, aspect-preserving
// scale so orbits keep their shape. A path that never moves is drawn as a dot.
// Screen orientation is kept: y grows downward.
func TracksToSVG(paths []Path, width, height int) string {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range paths {
		for _, pt := range p.Points {
			minX = math.Min(minX, pt.X)
			maxX = math.Max(maxX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	span := math.Max(rangeX, rangeY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	scale := math.Min(float64(width), float64(height)) / span

	project := func(v r2.Vec) (float64, float64) {
		return float64(width)/2 + (v.X-cx)*scale, float64(height)/2 + (v.Y-cy)*scale
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, p := range paths {
		if len(p.Points) == 0 {
			continue
		}
		color := p.Color
		if color == "" {
			color = "#00ff00"
		}

		if still(p.Points) {
			x, y := project(p.Points[0])
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"><title>%s</title></circle>
`, x, y, color, p.Name))
			continue
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, pt := range p.Points {
			x, y := project(pt)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString(fmt.Sprintf(`"><title>%s</title></path>
`, p.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func still(pts []r2.Vec) bool {
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}
