// Package power implements the elementwise power atom x^p.
//
// A user exponent is sanitized into an exact rational, classified into one
// of five regimes, and replaced by a bounded-denominator rational
// approximation that stays in the same convexity regime:
//
//	p = 0        constant 1              constant, nonnegative
//	p = 1        x                       affine, increasing, sign of x
//	p > 1        x^p  (x >= 0)           convex, increasing; signed for p = 2, 4, 8, ...
//	0 < p < 1    x^p  (x >= 0)           concave, increasing
//	p < 0        x^p  (x > 0)            convex, decreasing
//
// The three nontrivial regimes also carry a weight pair (w1, w2) with
// w1 + w2 = 1 exactly. It rewrites the power relation as a two-term weighted
// geometric mean, which is what the lowering pass hands to the geometric-mean
// constraint constructor:
//
//	0 < p < 1:   t <= x^p · 1^(1-p)            w = (p, 1-p)
//	p > 1:       x <= t^(1/p) · 1^(1-1/p)      w = (1/p, 1-1/p)
//	p < 0:       1 <= x^(p/(p-1)) · t^(-1/(p-1))   w = (p/(p-1), -1/(p-1))
//
// If approximation moves the exponent exactly onto 0 or 1 the descriptor
// takes the Zero or One regime and drops its weights. An input of 1.0000001
// therefore behaves exactly like 1.
//
// A Descriptor is immutable and safe to share between goroutines.
package power
