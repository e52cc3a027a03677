package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/rational"
)

// CompileAtom parses a CUE value into an AtomSpec.
//
// The CUE value should be the atom struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`atom: sqrt_x: { exponent: "1/2", operand: name: "x" }`)
//	spec, err := CompileAtom(v.LookupPath(cue.ParsePath("atom.sqrt_x")))
//
// The exponent may be an integer, a float (taken as its exact binary
// value), or a string holding "n/d" or a decimal. The operand needs a name;
// shape defaults to [1, 1] and sign to "unknown".
func CompileAtom(v cue.Value) (*ir.AtomSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.AtomSpec{}

	// Atom name from struct label
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	expVal := v.LookupPath(cue.ParsePath("exponent"))
	if !expVal.Exists() {
		return nil, &CompileError{
			Field:   "exponent",
			Message: "exponent is required",
			Pos:     v.Pos(),
		}
	}
	exp, err := parseExponent(expVal)
	if err != nil {
		return nil, err
	}
	spec.Exponent = exp.String()

	opVal := v.LookupPath(cue.ParsePath("operand"))
	if !opVal.Exists() {
		return nil, &CompileError{
			Field:   "operand",
			Message: "operand is required",
			Pos:     v.Pos(),
		}
	}
	spec.Operand, err = parseOperand(opVal)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// parseExponent converts a concrete CUE number or string to an exact rational.
func parseExponent(v cue.Value) (rational.Rat, error) {
	fail := func(msg string) (rational.Rat, error) {
		return rational.Rat{}, &CompileError{Field: "exponent", Message: msg, Pos: v.Pos()}
	}

	if !v.IsConcrete() {
		return fail("exponent must be a concrete value")
	}

	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int(nil)
		if err != nil {
			return rational.Rat{}, formatCUEError(err)
		}
		r, err := rational.Sanitize(n)
		if err != nil {
			return fail(err.Error())
		}
		return r, nil

	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return rational.Rat{}, formatCUEError(err)
		}
		r, err := rational.Sanitize(f)
		if err != nil {
			return fail(err.Error())
		}
		return r, nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return rational.Rat{}, formatCUEError(err)
		}
		r, err := rational.Parse(s)
		if err != nil {
			return fail(err.Error())
		}
		return r, nil

	default:
		return fail(fmt.Sprintf("exponent must be a number or a rational string, got %s", v.Kind()))
	}
}

// parseOperand parses the operand struct.
func parseOperand(v cue.Value) (ir.OperandSpec, error) {
	op := ir.OperandSpec{Shape: ir.Scalar, Sign: ir.SignUnknown.String()}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return op, &CompileError{
			Field:   "operand.name",
			Message: "operand name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return op, formatCUEError(err)
	}
	op.Name = name

	if shapeVal := v.LookupPath(cue.ParsePath("shape")); shapeVal.Exists() {
		shape, err := parseShape(shapeVal)
		if err != nil {
			return op, err
		}
		op.Shape = shape
	}

	if signVal := v.LookupPath(cue.ParsePath("sign")); signVal.Exists() {
		sign, err := signVal.String()
		if err != nil {
			return op, formatCUEError(err)
		}
		op.Sign = sign
	}

	return op, nil
}

// parseShape accepts [rows, cols] or [n] (a column of n).
func parseShape(v cue.Value) (ir.Shape, error) {
	iter, err := v.List()
	if err != nil {
		return ir.Shape{}, &CompileError{
			Field:   "operand.shape",
			Message: "shape must be a list of one or two integers",
			Pos:     v.Pos(),
		}
	}

	var dims []int
	for iter.Next() {
		n, err := iter.Value().Int64()
		if err != nil {
			return ir.Shape{}, &CompileError{
				Field:   "operand.shape",
				Message: fmt.Sprintf("shape entries must be integers: %v", err),
				Pos:     iter.Value().Pos(),
			}
		}
		dims = append(dims, int(n))
	}

	switch len(dims) {
	case 1:
		return ir.Shape{Rows: dims[0], Cols: 1}, nil
	case 2:
		return ir.Shape{Rows: dims[0], Cols: dims[1]}, nil
	default:
		return ir.Shape{}, &CompileError{
			Field:   "operand.shape",
			Message: fmt.Sprintf("shape must have one or two dimensions, got %d", len(dims)),
			Pos:     v.Pos(),
		}
	}
}
