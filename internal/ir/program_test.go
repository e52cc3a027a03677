package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProgram() *Program {
	x := Ref{Name: "x", Dims: Shape{Rows: 2, Cols: 1}}
	t := Variable{ID: "v1", Dims: x.Dims}
	one := Ones(x.Dims)
	return &Program{
		Atom:   "power(x, 1/2)",
		Output: t,
		Constraints: []Constraint{
			GeoMean2{T: t, X: x, Y: one},
		},
	}
}

func TestProgramVariablesFirstSeenOrder(t *testing.T) {
	shape := Scalar
	a := Variable{ID: "a", Dims: shape}
	b := Variable{ID: "b", Dims: shape}
	p := &Program{
		Output: b,
		Constraints: []Constraint{
			GeoMean2{T: a, X: b, Y: Ones(shape)},
			GeoMean2{T: b, X: a, Y: a},
		},
	}

	vars := p.Variables()
	require.Len(t, vars, 2)
	assert.Equal(t, "b", vars[0].ID)
	assert.Equal(t, "a", vars[1].ID)
}

func TestProgramCanonicalEncoding(t *testing.T) {
	data, err := MarshalCanonical(sampleProgram().ToIR())
	require.NoError(t, err)

	expected := `{"atom":"power(x, 1/2)",` +
		`"constraints":[{"kind":"geo_mean2",` +
		`"t":{"id":"v1","kind":"variable","shape":[2,1]},` +
		`"x":{"kind":"ref","name":"x","shape":[2,1]},` +
		`"y":{"fill":1,"kind":"constant","shape":[2,1]}}],` +
		`"output":{"id":"v1","kind":"variable","shape":[2,1]},` +
		`"variables":["v1"]}`
	assert.Equal(t, expected, string(data))
}

func TestProgramIDDeterministic(t *testing.T) {
	id1 := MustProgramID(sampleProgram())
	id2 := MustProgramID(sampleProgram())
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)

	other := sampleProgram()
	other.Atom = "power(x, 1/3)"
	assert.NotEqual(t, id1, MustProgramID(other))
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte("payload")
	assert.NotEqual(t, hashWithDomain("a", data), hashWithDomain("b", data))
	// the null separator keeps "ab"+"c" distinct from "a"+"bc"
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}

func TestOperandShapes(t *testing.T) {
	s := Shape{Rows: 3, Cols: 2}
	for _, op := range []Operand{Variable{ID: "v", Dims: s}, Ones(s), Ref{Name: "x", Dims: s}} {
		assert.Equal(t, s, op.Shape())
	}
	assert.Equal(t, int64(1), Ones(s).Fill)
}

func TestConstraintString(t *testing.T) {
	c := GeoMean2{
		T: Ref{Name: "x", Dims: Scalar},
		X: Variable{ID: "v1", Dims: Scalar},
		Y: Ones(Scalar),
	}
	assert.Equal(t, "x <= geo_mean(v1, 1)", c.String())
}
