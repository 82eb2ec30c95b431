package body

// Population is the fixed set of bodies for one run. Membership never
// changes after NewPopulation returns.
type Population struct {
	Sun       *Sun
	Planets   []*Planet
	Asteroids []*Asteroid

	movers []*Body
}

func NewPopulation(sun *Sun, planets []*Planet, asteroids []*Asteroid) *Population {
	movers := make([]*Body, 0, len(planets)+len(asteroids))
	for _, p := range planets {
		movers = append(movers, &p.Body)
	}
	for _, a := range asteroids {
		movers = append(movers, &a.Body)
	}
	return &Population{
		Sun:       sun,
		Planets:   planets,
		Asteroids: asteroids,
		movers:    movers,
	}
}

// Movers returns every integrated body, planets first then asteroids. The
// slice is shared; callers must not append to it.
func (p *Population) Movers() []*Body { return p.movers }

// Count includes the Sun.
func (p *Population) Count() int { return 1 + len(p.movers) }

// Each visits the Sun, then planets, then asteroids.
func (p *Population) Each(fn func(Massive)) {
	fn(p.Sun)
	for _, pl := range p.Planets {
		fn(pl)
	}
	for _, a := range p.Asteroids {
		fn(a)
	}
}

func (p *Population) Retime(timeStep float64) {
	for _, b := range p.movers {
		b.Retime(timeStep)
	}
}

func (p *Population) Planet(name string) *Planet {
	for _, pl := range p.Planets {
		if pl.Name == name {
			return pl
		}
	}
	return nil
}

// Lookup finds any body by name, the Sun included.
func (p *Population) Lookup(name string) *Body {
	if p.Sun != nil && p.Sun.Name == name {
		return &p.Sun.Body
	}
	for _, b := range p.movers {
		if b.Name == name {
			return b
		}
	}
	return nil
}
