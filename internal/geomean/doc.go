// Package geomean lowers weighted geometric-mean hypographs
//
//	t <= x1^w1 * x2^w2 * ... * xn^wn,  w >= 0,  sum(w) = 1
//
// into a tree of two-term constraints t <= sqrt(x * y).
//
// Weights are first completed to a dyadic vector (every denominator a power
// of two) by appending a residual weight on t itself. The dyadic vector is
// then split recursively into pairs of half-weight children until every
// leaf is a basis vector. Identical sub-vectors share one node, so the
// number of constraints grows with the bits of the common denominator
// rather than its value.
package geomean
