// Package canon lowers power atoms into geometric-mean constraints.
//
// Each regime rewrites t >= x^p (or t <= x^p for concave powers) as a
// two-term weighted geometric mean with weights (w1, w2) from the atom's
// descriptor:
//
//	open_unit_interval  t <= x^w1 * 1^w2      epigraph t, bases [x, 1]
//	greater_than_one    x <= t^w1 * 1^w2      epigraph x, bases [t, 1]
//	negative            1 <= x^w1 * t^w2      epigraph 1, bases [x, t]
//
// The zero regime lowers to the all-ones constant and the identity regime
// returns its argument unchanged. Neither adds constraints.
package canon
