package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Basics(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/power_basics.yaml")
	require.NoError(t, err)

	assert.Equal(t, "power_basics", s.Name)
	assert.Len(t, s.Cases, 11)
	assert.Equal(t, power.DefaultPolicy(), s.Policy())

	sqrt := s.Cases[1]
	assert.Equal(t, "sqrt", sqrt.Name)
	assert.Equal(t, 0.5, sqrt.Exponent)
	assert.Equal(t, ir.Leaf{Label: "x", Dims: ir.Shape{Rows: 3, Cols: 1}, Sgn: ir.SignNonnegative}, sqrt.Operand.leaf())
	require.NotNil(t, sqrt.Expect)
	require.Len(t, sqrt.Expect.Values, 2)
	assert.True(t, sqrt.Expect.Values[1].DomainError)

	assert.Equal(t, "3/10", s.Cases[7].Exponent)
	assert.Equal(t, []any{1, 2}, s.Cases[9].Exponent)
}

func TestLoadScenario_MaxDenominator(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/coarse_bound.yaml")
	require.NoError(t, err)
	assert.Equal(t, power.Policy{MaxDenominator: 4}, s.Policy())
}

func TestLoadScenario_DefaultShape(t *testing.T) {
	path := writeScenario(t, `
name: default_shape
description: operand without a shape
cases:
  - name: scalar
    exponent: 2
    operand: {name: x}
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, ir.Scalar, s.Cases[0].Operand.leaf().Dims)
	assert.Equal(t, ir.SignUnknown, s.Cases[0].Operand.leaf().Sgn)
	assert.Nil(t, s.Cases[0].Expect)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: misspelled cases key
case:
  - name: a
    exponent: 2
    operand: {name: x}
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\ncases:\n  - {name: a, exponent: 2, operand: {name: x}}\n",
			wantErr: "description is required",
		},
		{
			name:    "no cases",
			content: "name: n\ndescription: d\ncases: []\n",
			wantErr: "cases list is required",
		},
		{
			name:    "negative bound",
			content: "name: n\ndescription: d\nmax_denominator: -3\ncases:\n  - {name: a, exponent: 2, operand: {name: x}}\n",
			wantErr: "max_denominator must be >= 1",
		},
		{
			name:    "unnamed case",
			content: "name: n\ndescription: d\ncases:\n  - {exponent: 2, operand: {name: x}}\n",
			wantErr: "cases[0]: name is required",
		},
		{
			name:    "duplicate case",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}}\n  - {name: a, exponent: 3, operand: {name: x}}\n",
			wantErr: `cases[1]: duplicate case name "a"`,
		},
		{
			name:    "missing operand name",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {shape: 2x2}}\n",
			wantErr: "operand.name is required",
		},
		{
			name:    "bad shape",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x, shape: 0x2}}\n",
			wantErr: "operand.shape",
		},
		{
			name:    "bad sign",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x, sign: sideways}}\n",
			wantErr: "operand.sign",
		},
		{
			name:    "unknown error kind",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}, expect: {error: overflow}}\n",
			wantErr: `unknown error kind "overflow"`,
		},
		{
			name:    "unknown regime",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}, expect: {regime: huge}}\n",
			wantErr: "cases[0].expect",
		},
		{
			name:    "one weight",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}, expect: {weights: [\"1/2\"]}}\n",
			wantErr: "weights must have two entries",
		},
		{
			name:    "weights and no_weights",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}, expect: {weights: [\"1/2\", \"1/2\"], no_weights: true}}\n",
			wantErr: "exclusive",
		},
		{
			name:    "value without result",
			content: "name: n\ndescription: d\ncases:\n  - {name: a, exponent: 2, operand: {name: x}, expect: {values: [{x: 1}]}}\n",
			wantErr: "exactly one of y or domain_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
