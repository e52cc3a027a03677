package power

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Evaluate computes x^p elementwise for constant folding and tests. It is
// not part of the constraint system.
//
// RegimeZero yields all ones in the shape of x. Otherwise each element is
// raised to the approximated exponent. A negative element with a
// non-integer exponent, or a zero element with a negative exponent, has no
// real value; those elements produce DomainErrors (joined) and the returned
// matrix is nil. An operand with a zero dimension yields an empty matrix.
func (d Descriptor) Evaluate(x mat.Matrix) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(rows, cols, nil)

	if d.regime == RegimeZero {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set(i, j, 1)
			}
		}
		return out, nil
	}

	p, _ := d.exponent.Float64()
	integral := d.exponent.IsInt()
	negative := d.exponent.Sign() < 0

	var errs []error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := x.At(i, j)
			switch {
			case math.IsNaN(v):
				errs = append(errs, d.domainError(i, j, v, "operand is NaN"))
				continue
			case v < 0 && !integral:
				errs = append(errs, d.domainError(i, j, v, "negative base with non-integer exponent"))
				continue
			case v == 0 && negative:
				errs = append(errs, d.domainError(i, j, v, "zero base with negative exponent"))
				continue
			}
			out.Set(i, j, math.Pow(v, p))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func (d Descriptor) domainError(i, j int, v float64, reason string) *DomainError {
	return &DomainError{Row: i, Col: j, Value: v, Exponent: d.exponent.String(), Reason: reason}
}
