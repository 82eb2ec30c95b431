package view

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R, G, B uint8
}

var fallback = RGB{R: 128, G: 128, B: 128}

// Palette memoizes hex color parsing. Unparseable colors fall back to gray.
type Palette struct {
	cache map[string]RGB
}

func NewPalette() *Palette {
	return &Palette{cache: make(map[string]RGB)}
}

func (p *Palette) Color(hex string) RGB {
	if c, ok := p.cache[hex]; ok {
		return c
	}
	c := ParseColor(hex)
	p.cache[hex] = c
	return c
}

func ParseColor(hex string) RGB {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
