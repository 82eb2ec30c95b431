// Package analysis extracts orbital characteristics from recorded tracks.
//
// The main use is estimating a body's orbital period from its distance to
// the Sun over time:
//
//	d := analysis.Distances(track.Points, sun)
//	period, err := analysis.DominantPeriod(d, sampleInterval)
//
// Eccentric orbits show up as a strong periodic component in the distance
// series; a perfectly circular orbit has none and yields [ErrNoPeriod].
package analysis
