package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		p     any
		input []float64
		want  []float64
	}{
		{"square handles negatives", 2, []float64{-2, 0, 3}, []float64{4, 0, 9}},
		{"cube keeps sign", 3, []float64{-2, 1, 2}, []float64{-8, 1, 8}},
		{"sqrt", 0.5, []float64{0, 4, 9}, []float64{0, 2, 3}},
		{"inverse", -1, []float64{0.5, 2, 4}, []float64{2, 0.5, 0.25}},
		{"inverse square of negative", -2, []float64{-2, 1, 2}, []float64{0.25, 1, 0.25}},
		{"identity", 1, []float64{-3, 0, 7}, []float64{-3, 0, 7}},
		{"constant", 0, []float64{-3, 0, 7}, []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDescriptor(t, tt.p, DefaultMaxDenominator)
			x := mat.NewDense(len(tt.input), 1, tt.input)

			got, err := d.Evaluate(x)
			require.NoError(t, err)
			rows, cols := got.Dims()
			assert.Equal(t, len(tt.input), rows)
			assert.Equal(t, 1, cols)
			for i, want := range tt.want {
				assert.InDelta(t, want, got.At(i, 0), 1e-12, "row %d", i)
			}
		})
	}
}

func TestEvaluateKeepsShape(t *testing.T) {
	d := mustDescriptor(t, 0, DefaultMaxDenominator)
	got, err := d.Evaluate(mat.NewDense(2, 3, nil))
	require.NoError(t, err)
	rows, cols := got.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 6.0, mat.Sum(got))
}

func TestEvaluateUsesApproximatedExponent(t *testing.T) {
	tests := []struct {
		name   string
		p      any
		maxDen int64
		want   string
	}{
		// 1/pi rounds to 1/3.
		{"pi", math.Pi, 7, "3"},
		{"two and a half", 2.5, 7, "5/2"},
		{"near half", 0.4999, 7, "1/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDescriptor(t, tt.p, tt.maxDen)
			require.Equal(t, tt.want, d.Exponent().String())

			p, _ := d.Exponent().Float64()
			got, err := d.Evaluate(mat.NewDense(1, 1, []float64{2}))
			require.NoError(t, err)
			assert.InDelta(t, math.Pow(2, p), got.At(0, 0), 1e-12)
		})
	}
}

func TestEvaluateEmptyOperand(t *testing.T) {
	for _, p := range []any{0, 2, 0.5, -1} {
		d := mustDescriptor(t, p, DefaultMaxDenominator)
		got, err := d.Evaluate(&mat.Dense{})
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	}
}

func TestEvaluateDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		p      any
		input  []float64
		bad    []int
		reason string
	}{
		{"negative base fractional exponent", 0.5, []float64{-1, 4, -9}, []int{0, 2}, "negative base with non-integer exponent"},
		{"zero base negative exponent", -1, []float64{0, 2}, []int{0}, "zero base with negative exponent"},
		{"nan", 2, []float64{1, math.NaN()}, []int{1}, "operand is NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDescriptor(t, tt.p, DefaultMaxDenominator)
			got, err := d.Evaluate(mat.NewDense(len(tt.input), 1, tt.input))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, IsDomainError(err))

			errs := DomainErrors(err)
			require.Len(t, errs, len(tt.bad))
			for i, de := range errs {
				assert.Equal(t, tt.bad[i], de.Row)
				assert.Equal(t, 0, de.Col)
				assert.Equal(t, tt.reason, de.Reason)
				assert.Equal(t, d.Exponent().String(), de.Exponent)
			}
		})
	}
}

func TestDomainErrorsEmpty(t *testing.T) {
	assert.Empty(t, DomainErrors(nil))
	assert.False(t, IsDomainError(assert.AnError))
}
