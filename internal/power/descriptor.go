package power

import (
	"github.com/roach88/powcanon/internal/rational"
)

// WeightPair holds geometric-mean weights with W1 + W2 = 1 exactly.
type WeightPair struct {
	W1 rational.Rat
	W2 rational.Rat
}

// complement returns (q, 1-q).
func complement(q rational.Rat) WeightPair {
	return WeightPair{W1: q, W2: rational.One.Sub(q)}
}

// Slice returns the weights as a two-element slice.
func (w WeightPair) Slice() []rational.Rat {
	return []rational.Rat{w.W1, w.W2}
}

func (w WeightPair) String() string {
	return "(" + w.W1.String() + ", " + w.W2.String() + ")"
}

// Descriptor is the normalized form of a power exponent. It is built once
// per atom and never modified.
type Descriptor struct {
	original rational.Rat
	exponent rational.Rat
	weights  *WeightPair
	regime   Regime
}

// NewDescriptor sanitizes p and normalizes it under policy.
// It returns a *rational.InvalidExponentError when p is not a real scalar.
func NewDescriptor(p any, policy Policy) (Descriptor, error) {
	p0, err := rational.Sanitize(p)
	if err != nil {
		return Descriptor{}, err
	}
	return Normalize(p0, policy), nil
}

// Normalize classifies p0 and computes its bounded-denominator
// approximation and weights.
//
// Comparisons are exact. After approximation an exponent equal to 0 or 1
// is re-tagged RegimeZero or RegimeOne with no weights.
func Normalize(p0 rational.Rat, policy Policy) Descriptor {
	maxDen := policy.maxDenominator()
	d := Descriptor{original: p0}

	switch {
	case p0.IsZero():
		d.regime, d.exponent = RegimeZero, rational.Zero
	case p0.IsOne():
		d.regime, d.exponent = RegimeOne, rational.One
	case p0.Cmp(rational.One) > 0:
		d.regime = RegimeGreaterThanOne
		d.exponent, d.weights = approxHigh(p0, maxDen)
	case p0.Sign() > 0:
		d.regime = RegimeOpenUnitInterval
		d.exponent, d.weights = approxMid(p0, maxDen)
	default:
		d.regime = RegimeNegative
		d.exponent, d.weights = approxNeg(p0, maxDen)
	}

	switch {
	case d.exponent.IsZero():
		d.regime, d.weights = RegimeZero, nil
	case d.exponent.IsOne():
		d.regime, d.weights = RegimeOne, nil
	}
	return d
}

// approxHigh handles p > 1 through its reciprocal:
//
//	x <= t^(1/p) 1^(1-1/p)
//
// A reciprocal that rounds to 0 is clamped to 1/maxDen so the exponent stays
// finite.
func approxHigh(p rational.Rat, maxDen int64) (rational.Rat, *WeightPair) {
	q := p.Inv().LimitDenominator(maxDen)
	if q.IsZero() {
		q = rational.New(1, maxDen)
	}
	w := complement(q)
	return q.Inv(), &w
}

// approxMid handles 0 < p < 1:
//
//	t <= x^p 1^(1-p)
func approxMid(p rational.Rat, maxDen int64) (rational.Rat, *WeightPair) {
	q := p.LimitDenominator(maxDen)
	w := complement(q)
	return q, &w
}

// approxNeg handles p < 0 through r = p/(p-1), which lies in (0, 1):
//
//	1 <= x^r t^(1-r)
//
// An r that rounds to 1 is clamped to (maxDen-1)/maxDen so the exponent
// stays finite.
func approxNeg(p rational.Rat, maxDen int64) (rational.Rat, *WeightPair) {
	r := p.Quo(p.Sub(rational.One))
	q := r.LimitDenominator(maxDen)
	if q.IsOne() {
		q = rational.New(maxDen-1, maxDen)
	}
	w := complement(q)
	return q.Quo(q.Sub(rational.One)), &w
}

// Original returns the sanitized exponent before approximation.
func (d Descriptor) Original() rational.Rat {
	return d.original
}

// Exponent returns the approximated exponent.
func (d Descriptor) Exponent() rational.Rat {
	return d.exponent
}

// Weights returns the weight pair; ok is false for RegimeZero and RegimeOne.
func (d Descriptor) Weights() (w WeightPair, ok bool) {
	if d.weights == nil {
		return WeightPair{}, false
	}
	return *d.weights, true
}

// Regime returns the regime of the approximated exponent.
func (d Descriptor) Regime() Regime {
	return d.regime
}

// Approximated reports whether the exponent differs from the input.
func (d Descriptor) Approximated() bool {
	return !d.exponent.Equal(d.original)
}

// Collapsed reports whether approximation moved a nontrivial exponent onto
// 0 or 1.
func (d Descriptor) Collapsed() bool {
	if d.regime != RegimeZero && d.regime != RegimeOne {
		return false
	}
	return !d.original.IsZero() && !d.original.IsOne()
}
