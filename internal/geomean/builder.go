package geomean

import (
	"fmt"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
	"github.com/roach88/powcanon/internal/rational"
)

// VariableSource allocates fresh decision variables.
type VariableSource interface {
	NewVariable(shape ir.Shape) ir.Variable
}

// Builder emits geometric-mean constraint trees, drawing auxiliary
// variables from a VariableSource.
type Builder struct {
	vars VariableSource
}

// NewBuilder returns a Builder that allocates through vars.
func NewBuilder(vars VariableSource) *Builder {
	return &Builder{vars: vars}
}

// Build lowers t <= x^w1 * y^w2 for a weight pair.
func (b *Builder) Build(t ir.Operand, bases [2]ir.Operand, w power.WeightPair) ([]ir.Constraint, error) {
	return b.Constraints(t, bases[:], Weights{w.W1, w.W2})
}

// Constraints lowers t <= prod(xs[i]^w[i]) into GeoMean2 constraints.
// All operands must share t's shape; auxiliary variables take that shape.
func (b *Builder) Constraints(t ir.Operand, xs []ir.Operand, w Weights) ([]ir.Constraint, error) {
	if len(xs) != len(w) {
		return nil, fmt.Errorf("geomean: %d operands for %d weights", len(xs), len(w))
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	for i, x := range xs {
		if x.Shape() != t.Shape() {
			return nil, fmt.Errorf("geomean: operand %d has shape %s, want %s", i, x.Shape(), t.Shape())
		}
	}

	// A single unit weight is t <= x, i.e. t <= sqrt(x * x).
	for i, v := range w {
		if v.IsOne() {
			return []ir.Constraint{ir.GeoMean2{T: t, X: xs[i], Y: xs[i]}}, nil
		}
	}

	dyad := DyadCompletion(w)
	tree, err := Decompose(dyad)
	if err != nil {
		return nil, err
	}

	assigned := map[string]ir.Operand{dyad.key(): t}
	for i, v := range dyad {
		if v.Sign() == 0 {
			continue
		}
		op := t
		if i < len(xs) {
			op = xs[i]
		}
		assigned[basis(len(dyad), i).key()] = op
	}

	operand := func(w Weights) ir.Operand {
		if op, ok := assigned[w.key()]; ok {
			return op
		}
		v := b.vars.NewVariable(t.Shape())
		assigned[w.key()] = v
		return v
	}

	internal := tree.Internal()
	constraints := make([]ir.Constraint, 0, len(internal))
	for _, n := range internal {
		constraints = append(constraints, ir.GeoMean2{
			T: operand(n.Weights),
			X: operand(n.Children[0]),
			Y: operand(n.Children[1]),
		})
	}
	return constraints, nil
}

func basis(n, i int) Weights {
	w := make(Weights, n)
	for j := range w {
		w[j] = rational.Zero
	}
	w[i] = rational.One
	return w
}
