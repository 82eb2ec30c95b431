// Package physics computes Newtonian gravity over a [body.Population].
//
// Every body attracts every other body. The Sun is a separate term that is
// never integrated, and the remaining pairs are summed brute force:
//
//	g := physics.New(6.67430e-11)
//	forces := g.Accumulate(pop.Sun, pop.Movers(), nil)
//
// # Source and target
//
// [Gravity.PairForce] always receives the attracting body first and the
// body being pulled second, and returns the force on the second one. The
// result for (a, b) is the exact negation of the result for (b, a), bit for
// bit, so summation order is the only source of rounding differences.
//
// Coincident bodies contribute the zero vector.
package physics
