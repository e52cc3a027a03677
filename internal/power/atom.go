package power

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/powcanon/internal/ir"
)

// Atom is the elementwise power expression power(arg, p).
// It satisfies ir.Expr, so atoms can be nested.
type Atom struct {
	arg  ir.Expr
	desc Descriptor
}

// NewAtom builds power(arg, p). Construction fails with a
// *rational.InvalidExponentError if p is not a real scalar.
func NewAtom(arg ir.Expr, p any, policy Policy) (*Atom, error) {
	if arg == nil {
		return nil, errors.New("power: nil argument")
	}
	desc, err := NewDescriptor(p, policy)
	if err != nil {
		return nil, fmt.Errorf("power(%s): %w", arg.Name(), err)
	}
	return &Atom{arg: arg, desc: desc}, nil
}

// NewAtomFromDescriptor wraps an already-normalized descriptor.
func NewAtomFromDescriptor(arg ir.Expr, desc Descriptor) *Atom {
	return &Atom{arg: arg, desc: desc}
}

// Arg returns the argument expression.
func (a *Atom) Arg() ir.Expr { return a.arg }

// Descriptor returns the normalized exponent.
func (a *Atom) Descriptor() Descriptor { return a.desc }

// Name formats the atom as power(<arg>, <exponent>).
func (a *Atom) Name() string {
	return fmt.Sprintf("power(%s, %s)", a.arg.Name(), a.desc.Exponent())
}

// Shape is the argument shape; the atom is elementwise.
func (a *Atom) Shape() ir.Shape { return a.arg.Shape() }

// Sign derives the atom sign from the argument sign.
func (a *Atom) Sign() ir.Sign { return a.desc.Sign(a.arg.Sign()) }

// Curvature returns the curvature of the power function itself.
func (a *Atom) Curvature() ir.Curvature { return a.desc.Curvature() }

// Monotonicity returns one entry per argument.
func (a *Atom) Monotonicity() []ir.Monotonicity {
	return []ir.Monotonicity{a.desc.Monotonicity()}
}

// Numeric evaluates the atom on a concrete argument value.
func (a *Atom) Numeric(x mat.Matrix) (*mat.Dense, error) {
	return a.desc.Evaluate(x)
}
