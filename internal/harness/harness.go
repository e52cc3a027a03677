package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/powcanon/internal/canon"
	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
	"github.com/roach88/powcanon/internal/rational"
	"github.com/roach88/powcanon/internal/store"
	"github.com/roach88/powcanon/internal/testutil"
)

// valueTolerance is the relative tolerance for expected values.
const valueTolerance = 1e-9

// Harness is the test execution engine.
// It runs scenarios with deterministic variable IDs.
type Harness struct {
	store   *store.Store
	lowerer *canon.Lowerer
	vars    *testutil.SeqVariables
	policy  power.Policy
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Variable numbering restarts at v1 for every case.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. For each case: sanitize, normalize, check expectations, lower, record
// 3. Read each recorded program back for the trace
// 4. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with lowering logs sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	vars := testutil.NewSeqVariables()
	h := &Harness{
		store:   st,
		lowerer: canon.New(vars, canon.WithLogger(logger)),
		vars:    vars,
		policy:  scenario.Policy(),
		logger:  logger,
	}

	ctx := context.Background()
	result := NewResult()
	for i := range scenario.Cases {
		if err := h.runCase(ctx, &scenario.Cases[i], result); err != nil {
			return nil, fmt.Errorf("case %q: %w", scenario.Cases[i].Name, err)
		}
	}

	stored, err := st.ListLowerings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lowerings: %w", err)
	}
	result.Stored = len(stored)

	return result, nil
}

// runCase runs one case. Expectation failures are recorded on result;
// only infrastructure failures are returned.
func (h *Harness) runCase(ctx context.Context, c *Case, result *Result) error {
	h.vars.Reset()
	fail := func(format string, args ...any) {
		result.AddError(fmt.Sprintf("%s: %s", c.Name, fmt.Sprintf(format, args...)))
	}
	expect := c.Expect
	if expect == nil {
		expect = &ExpectClause{}
	}

	p, err := parseExponent(c.Exponent)
	var atom *power.Atom
	if err == nil {
		atom, err = power.NewAtom(c.Operand.leaf(), p, h.policy)
	}
	if err != nil {
		result.AddTrace(TraceEvent{Case: c.Name, Error: errorKind(err)})
		switch {
		case expect.Error == "":
			fail("unexpected error: %v", err)
		case expect.Error != errorKind(err):
			fail("expected error %s, got %v", expect.Error, err)
		}
		return nil
	}
	if expect.Error != "" {
		fail("expected error %s, got none", expect.Error)
	}

	desc := atom.Descriptor()
	h.checkDescriptor(atom, expect, fail)
	h.checkValues(desc, expect.Values, fail)

	prog, err := h.lowerer.LowerAtom(atom, ir.Ref{Name: c.Operand.Name, Dims: atom.Shape()})
	if err != nil {
		fail("lowering failed: %v", err)
		result.AddTrace(TraceEvent{Case: c.Name, Atom: atom.Name(), Error: err.Error()})
		return nil
	}
	if expect.Constraints != nil && len(prog.Constraints) != *expect.Constraints {
		fail("constraints: expected %d, got %d", *expect.Constraints, len(prog.Constraints))
	}

	rec, err := store.NewLowering(prog, desc, h.policy)
	if err != nil {
		return err
	}
	if err := h.store.WriteLowering(ctx, rec); err != nil {
		return err
	}
	stored, err := h.store.ReadLowering(ctx, rec.ID)
	if err != nil {
		return err
	}

	event := TraceEvent{
		Case:      c.Name,
		Atom:      stored.Atom,
		Regime:    stored.Regime,
		Exponent:  stored.Exponent,
		ProgramID: stored.ID,
		Program:   stored.Program,
	}
	if w, ok := desc.Weights(); ok {
		event.Weights = []string{w.W1.String(), w.W2.String()}
	}
	result.AddTrace(event)

	h.logger.Debug("case complete",
		"case", c.Name,
		"atom", stored.Atom,
		"program_id", stored.ID,
	)
	return nil
}

func (h *Harness) checkDescriptor(atom *power.Atom, e *ExpectClause, fail func(string, ...any)) {
	desc := atom.Descriptor()

	if e.Regime != "" && e.Regime != desc.Regime().String() {
		fail("regime: expected %s, got %s", e.Regime, desc.Regime())
	}
	if e.Exponent != "" {
		want, err := rational.Parse(e.Exponent)
		if err != nil {
			fail("expect.exponent: %v", err)
		} else if !want.Equal(desc.Exponent()) {
			fail("exponent: expected %s, got %s", want, desc.Exponent())
		}
	}

	w, ok := desc.Weights()
	if e.NoWeights && ok {
		fail("weights: expected none, got %s", w)
	}
	if e.Weights != nil {
		if !ok {
			fail("weights: expected (%s, %s), got none", e.Weights[0], e.Weights[1])
		} else {
			for i, got := range w.Slice() {
				want, err := rational.Parse(e.Weights[i])
				if err != nil || !want.Equal(got) {
					fail("weights[%d]: expected %s, got %s", i, e.Weights[i], got)
				}
			}
		}
	}

	if e.Curvature != "" && e.Curvature != atom.Curvature().String() {
		fail("curvature: expected %s, got %s", e.Curvature, atom.Curvature())
	}
	if e.Monotonicity != "" && e.Monotonicity != atom.Monotonicity()[0].String() {
		fail("monotonicity: expected %s, got %s", e.Monotonicity, atom.Monotonicity()[0])
	}
	if e.Sign != "" && e.Sign != atom.Sign().String() {
		fail("sign: expected %s, got %s", e.Sign, atom.Sign())
	}
	if e.Collapsed != nil && *e.Collapsed != desc.Collapsed() {
		fail("collapsed: expected %t, got %t", *e.Collapsed, desc.Collapsed())
	}
}

func (h *Harness) checkValues(desc power.Descriptor, points []ValuePoint, fail func(string, ...any)) {
	for i, pt := range points {
		got, err := desc.Evaluate(mat.NewDense(1, 1, []float64{pt.X}))
		switch {
		case pt.DomainError:
			if !power.IsDomainError(err) {
				fail("values[%d]: expected domain error at x=%g, got %v", i, pt.X, err)
			}
		case err != nil:
			fail("values[%d]: x=%g: %v", i, pt.X, err)
		default:
			y := got.At(0, 0)
			if !closeEnough(*pt.Y, y) {
				fail("values[%d]: x=%g: expected %g, got %g", i, pt.X, *pt.Y, y)
			}
		}
	}
}

func closeEnough(want, got float64) bool {
	diff := math.Abs(want - got)
	return diff <= valueTolerance || diff <= valueTolerance*math.Abs(want)
}

// parseExponent turns a YAML scalar into an exponent value. Strings are
// parsed exactly; everything else is handed to the sanitizer as is.
func parseExponent(v any) (any, error) {
	if s, ok := v.(string); ok {
		return rational.Parse(s)
	}
	return v, nil
}

// errorKind maps an error to its scenario error kind.
func errorKind(err error) string {
	if rational.IsInvalidExponent(err) {
		return ErrorInvalidExponent
	}
	return err.Error()
}
