package ir

// AtomSpec is a compiled power-atom declaration.
type AtomSpec struct {
	Name     string      `json:"name"`
	Exponent string      `json:"exponent"` // exact rational text, e.g. "3/4"
	Operand  OperandSpec `json:"operand"`
}

// OperandSpec declares the leaf expression a power atom is applied to.
type OperandSpec struct {
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
	Sign  string `json:"sign"` // "unknown" when not declared
}

// Leaf returns the expression described by the spec. Unparseable signs are
// treated as unknown; Validate reports them.
func (o OperandSpec) Leaf() Leaf {
	sign, _ := ParseSign(o.Sign)
	return Leaf{Label: o.Name, Dims: o.Shape, Sgn: sign}
}
