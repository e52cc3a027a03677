package ir

import "strconv"

// Expr is the view of an expression-tree node that atoms need: a display
// name, a shape, and a sign attribute. Argument validation and broadcasting
// happen before an Expr reaches an atom.
type Expr interface {
	Name() string
	Shape() Shape
	Sign() Sign
}

// Leaf is a named expression with a fixed shape and sign.
type Leaf struct {
	Label string `json:"name"`
	Dims  Shape  `json:"shape"`
	Sgn   Sign   `json:"sign"`
}

func (l Leaf) Name() string { return l.Label }
func (l Leaf) Shape() Shape { return l.Dims }
func (l Leaf) Sign() Sign   { return l.Sgn }

// Operand is a sealed interface for lowered linear-operator values.
// Only Variable, Constant and Ref implement it.
type Operand interface {
	Shape() Shape
	operand()
}

// Variable is a decision variable introduced by lowering.
type Variable struct {
	ID   string `json:"id"`
	Dims Shape  `json:"shape"`
}

func (v Variable) Shape() Shape   { return v.Dims }
func (v Variable) String() string { return v.ID }
func (Variable) operand()         {}

// Constant is a constant operand with every element equal to Fill.
type Constant struct {
	Fill int64 `json:"fill"`
	Dims Shape `json:"shape"`
}

func (c Constant) Shape() Shape   { return c.Dims }
func (c Constant) String() string { return strconv.FormatInt(c.Fill, 10) }
func (Constant) operand()         {}

// Ones returns the all-ones constant of the given shape.
func Ones(shape Shape) Constant {
	return Constant{Fill: 1, Dims: shape}
}

// Ref refers to an already-lowered upstream expression by name.
type Ref struct {
	Name string `json:"name"`
	Dims Shape  `json:"shape"`
}

func (r Ref) Shape() Shape   { return r.Dims }
func (r Ref) String() string { return r.Name }
func (Ref) operand()         {}

// OperandIR encodes an operand as an IRObject for canonical serialization.
func OperandIR(op Operand) IRObject {
	switch o := op.(type) {
	case Variable:
		return IRObject{"kind": IRString("variable"), "id": IRString(o.ID), "shape": shapeIR(o.Dims)}
	case Constant:
		return IRObject{"kind": IRString("constant"), "fill": IRInt(o.Fill), "shape": shapeIR(o.Dims)}
	case Ref:
		return IRObject{"kind": IRString("ref"), "name": IRString(o.Name), "shape": shapeIR(o.Dims)}
	default:
		return IRObject{"kind": IRString("invalid")}
	}
}

func shapeIR(s Shape) IRArray {
	return IRArray{IRInt(s.Rows), IRInt(s.Cols)}
}
