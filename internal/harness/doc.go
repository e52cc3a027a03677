// Package harness runs YAML conformance scenarios against the power
// normalizer and lowering pipeline.
//
// A scenario is a list of cases. Each case declares an exponent and an
// operand, and optionally the regime, approximated exponent, weights,
// derived attributes, constraint count and numeric values it expects.
// Cases that should be rejected declare the expected error kind instead.
//
//	name: square_and_root
//	description: Lowering of x^2 and x^(1/2)
//	cases:
//	  - name: square
//	    exponent: 2
//	    operand: { name: x, shape: 3x1 }
//	    expect:
//	      regime: greater_than_one
//	      monotonicity: signed
//	      values: [{ x: -2, y: 4 }]
//
// Each scenario runs against a fresh in-memory store with sequential
// variable IDs, so the trace is deterministic and can be compared with a
// golden file.
package harness
