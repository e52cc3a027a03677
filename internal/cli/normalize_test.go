package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Text(t *testing.T) {
	out, err := execute(t, NewNormalizeCommand(&RootOptions{Format: "text"}), "2.5")
	require.NoError(t, err)

	assert.Equal(t, `2.5 -> 5/2
  regime:       greater_than_one
  weights:      (2/5, 3/5)
  curvature:    convex
  monotonicity: increasing
  sign:         nonnegative
`, out)
}

func TestNormalize_Approximated(t *testing.T) {
	out, err := execute(t, NewNormalizeCommand(&RootOptions{Format: "text", MaxDenominator: 4}), "0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "0.3 -> 1/3")
	assert.Contains(t, out, "approximated from 3/10 (max denominator 4)")
}

func TestNormalize_Collapsed(t *testing.T) {
	out, err := execute(t, NewNormalizeCommand(&RootOptions{Format: "text"}), "1.0000001")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0000001 -> 1")
	assert.Contains(t, out, "regime:       one")
	assert.NotContains(t, out, "weights")
	assert.Contains(t, out, "collapsed from 10000001/10000000")
}

func TestNormalize_JSON(t *testing.T) {
	opts := &RootOptions{Format: "json"}
	out, err := execute(t, NewNormalizeCommand(opts), "--sign", "negative", "--", "-1/2", "1", "4")
	require.NoError(t, err)

	var results []DescriptorResult
	resp := decode(t, out, &results)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, results, 3)

	assert.Equal(t, DescriptorResult{
		Input:          "-1/2",
		Original:       "-1/2",
		Exponent:       "-1/2",
		Regime:         "negative",
		Weights:        []string{"1/3", "2/3"},
		Curvature:      "convex",
		Monotonicity:   "decreasing",
		Sign:           "nonnegative",
		MaxDenominator: 1024,
	}, results[0])

	// The identity passes the argument sign through.
	assert.Equal(t, "one", results[1].Regime)
	assert.Equal(t, "negative", results[1].Sign)
	assert.Nil(t, results[1].Weights)

	assert.True(t, results[2].EvenPower)
	assert.Equal(t, "signed", results[2].Monotonicity)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opts     RootOptions
		args     []string
		wantCode string
	}{
		{"not a number", RootOptions{Format: "json"}, []string{"two"}, ErrCodeInvalidExponent},
		{"empty", RootOptions{Format: "json"}, []string{" "}, ErrCodeInvalidExponent},
		{"bad sign", RootOptions{Format: "json"}, []string{"--sign", "up", "2"}, ErrCodeInvalidFlag},
		{"bad bound", RootOptions{Format: "json", MaxDenominator: -1}, []string{"2"}, ErrCodeInvalidFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			out, err := execute(t, NewNormalizeCommand(&opts), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decode(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestNormalize_RequiresArgument(t *testing.T) {
	_, err := execute(t, NewNormalizeCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
}
