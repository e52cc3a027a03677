package ir

// Program is the lowered form of one atom: the operand that replaces the
// atom in the enclosing program plus the constraints that give it meaning.
type Program struct {
	Atom        string
	Output      Operand
	Constraints []Constraint
}

// Variables returns every distinct Variable in the program, in first-seen
// order (output first, then constraints positionally).
func (p *Program) Variables() []Variable {
	seen := make(map[string]bool)
	var vars []Variable
	visit := func(op Operand) {
		if v, ok := op.(Variable); ok && !seen[v.ID] {
			seen[v.ID] = true
			vars = append(vars, v)
		}
	}
	visit(p.Output)
	for _, c := range p.Constraints {
		for _, op := range c.Operands() {
			visit(op)
		}
	}
	return vars
}

// ToIR encodes the program as an IRObject.
func (p *Program) ToIR() IRObject {
	constraints := make(IRArray, len(p.Constraints))
	for i, c := range p.Constraints {
		constraints[i] = ConstraintIR(c)
	}
	vars := p.Variables()
	varIDs := make(IRArray, len(vars))
	for i, v := range vars {
		varIDs[i] = IRString(v.ID)
	}
	return IRObject{
		"atom":        IRString(p.Atom),
		"output":      OperandIR(p.Output),
		"constraints": constraints,
		"variables":   varIDs,
	}
}
