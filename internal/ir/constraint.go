package ir

import "fmt"

// Constraint is a sealed interface for convex constraints emitted by lowering.
type Constraint interface {
	// Operands lists the operands in positional order.
	Operands() []Operand
	constraint()
}

// GeoMean2 is the elementwise two-term geometric-mean constraint
//
//	t <= sqrt(x * y),  x >= 0,  y >= 0
//
// which is second-order-cone representable as ||(x - y, 2t)|| <= x + y.
type GeoMean2 struct {
	T Operand
	X Operand
	Y Operand
}

func (g GeoMean2) Operands() []Operand { return []Operand{g.T, g.X, g.Y} }
func (GeoMean2) constraint()           {}

// String renders the constraint as "t <= geo_mean(x, y)".
func (g GeoMean2) String() string {
	return fmt.Sprintf("%v <= geo_mean(%v, %v)", g.T, g.X, g.Y)
}

// ConstraintIR encodes a constraint as an IRObject for canonical serialization.
func ConstraintIR(c Constraint) IRObject {
	switch v := c.(type) {
	case GeoMean2:
		return IRObject{
			"kind": IRString("geo_mean2"),
			"t":    OperandIR(v.T),
			"x":    OperandIR(v.X),
			"y":    OperandIR(v.Y),
		}
	default:
		return IRObject{"kind": IRString("invalid")}
	}
}
