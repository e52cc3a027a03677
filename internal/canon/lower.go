package canon

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/powcanon/internal/geomean"
	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
)

// GeoMeanBuilder emits constraints enforcing
//
//	epigraph <= bases[0]^w.W1 * bases[1]^w.W2
//
// elementwise. How it encodes that is its own business.
type GeoMeanBuilder interface {
	Build(epigraph ir.Operand, bases [2]ir.Operand, w power.WeightPair) ([]ir.Constraint, error)
}

// Lowerer turns power descriptors into constraint programs.
//
// A Lowerer holds no per-call state; concurrent use is safe when its
// VariableSource and GeoMeanBuilder are.
type Lowerer struct {
	builder GeoMeanBuilder
	vars    VariableSource
	logger  *slog.Logger
}

// Option configures a Lowerer.
type Option func(*Lowerer)

// WithLogger sets the logger. Lowering logs at Debug, and at Info when an
// exponent collapsed onto 0 or 1.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lowerer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithBuilder replaces the geometric-mean constructor.
func WithBuilder(b GeoMeanBuilder) Option {
	return func(l *Lowerer) {
		l.builder = b
	}
}

// New creates a Lowerer that allocates epigraph variables from vars. The
// geometric-mean constructor defaults to a geomean.Builder sharing vars.
func New(vars VariableSource, opts ...Option) *Lowerer {
	l := &Lowerer{
		builder: geomean.NewBuilder(vars),
		vars:    vars,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lower returns the operand replacing power(x, p) and the constraints that
// define it. shape is the target output shape.
func (l *Lowerer) Lower(desc power.Descriptor, x ir.Operand, shape ir.Shape) (ir.Operand, []ir.Constraint, error) {
	if desc.Collapsed() {
		l.logger.Info("exponent collapsed onto boundary",
			"original", desc.Original().String(),
			"exponent", desc.Exponent().String(),
			"regime", desc.Regime().String(),
		)
	}

	switch desc.Regime() {
	case power.RegimeOne:
		l.logger.Debug("lowered identity power", "shape", shape.String())
		return x, nil, nil
	case power.RegimeZero:
		l.logger.Debug("lowered constant power", "shape", shape.String())
		return ir.Ones(shape), nil, nil
	}

	w, ok := desc.Weights()
	if !ok {
		return nil, nil, &UnsupportedPowerError{Regime: desc.Regime(), Exponent: desc.Exponent().String()}
	}

	t := l.vars.NewVariable(shape)
	one := ir.Ones(shape)

	var epigraph ir.Operand
	var bases [2]ir.Operand
	switch desc.Regime() {
	case power.RegimeOpenUnitInterval:
		epigraph, bases = t, [2]ir.Operand{x, one}
	case power.RegimeGreaterThanOne:
		epigraph, bases = x, [2]ir.Operand{t, one}
	case power.RegimeNegative:
		epigraph, bases = one, [2]ir.Operand{x, t}
	default:
		return nil, nil, &UnsupportedPowerError{Regime: desc.Regime(), Exponent: desc.Exponent().String()}
	}

	constraints, err := l.builder.Build(epigraph, bases, w)
	if err != nil {
		return nil, nil, fmt.Errorf("geometric mean for exponent %s: %w", desc.Exponent(), err)
	}

	l.logger.Debug("lowered power",
		"regime", desc.Regime().String(),
		"exponent", desc.Exponent().String(),
		"weights", w.String(),
		"epigraph", t.ID,
		"constraints", len(constraints),
	)
	return t, constraints, nil
}

// LowerAtom lowers a power atom whose argument has already been lowered to
// x, and packages the result as a Program.
func (l *Lowerer) LowerAtom(a *power.Atom, x ir.Operand) (*ir.Program, error) {
	out, constraints, err := l.Lower(a.Descriptor(), x, a.Shape())
	if err != nil {
		return nil, fmt.Errorf("lower %s: %w", a.Name(), err)
	}
	return &ir.Program{Atom: a.Name(), Output: out, Constraints: constraints}, nil
}
