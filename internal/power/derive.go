package power

import (
	"github.com/roach88/powcanon/internal/ir"
)

// Sign returns the sign of the atom given the sign of its argument.
// Only the identity regime passes the argument sign through; every other
// regime is nonnegative by construction.
func (d Descriptor) Sign(arg ir.Sign) ir.Sign {
	if d.regime == RegimeOne {
		return arg
	}
	return ir.SignNonnegative
}

// Curvature returns the curvature implied by the regime.
func (d Descriptor) Curvature() ir.Curvature {
	switch d.regime {
	case RegimeZero:
		return ir.CurvatureConstant
	case RegimeOne:
		return ir.CurvatureAffine
	case RegimeGreaterThanOne, RegimeNegative:
		return ir.CurvatureConvex
	case RegimeOpenUnitInterval:
		return ir.CurvatureConcave
	default:
		return ir.CurvatureUnknown
	}
}

// Monotonicity returns the monotonicity in the single argument.
func (d Descriptor) Monotonicity() ir.Monotonicity {
	switch d.regime {
	case RegimeOne, RegimeOpenUnitInterval:
		return ir.Increasing
	case RegimeNegative:
		return ir.Decreasing
	case RegimeGreaterThanOne:
		if d.IsEvenPower() {
			return ir.Signed
		}
		return ir.Increasing
	default:
		return ir.Nonmonotonic
	}
}

// IsEvenPower reports whether the exponent is 2, 4, 8, ... . Those powers
// are encoded as |x|^p and so are defined for negative x.
func (d Descriptor) IsEvenPower() bool {
	return d.regime == RegimeGreaterThanOne && d.exponent.IsPowerOfTwo()
}
