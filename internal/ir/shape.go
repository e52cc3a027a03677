package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is the 2-D shape of an elementwise operand. Scalars are 1x1.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Scalar is the 1x1 shape.
var Scalar = Shape{Rows: 1, Cols: 1}

// Size returns the number of elements.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool {
	return s.Rows > 0 && s.Cols > 0
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// ParseShape reads "RxC" or a bare "N" (an Nx1 column).
func ParseShape(s string) (Shape, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) > 2 {
		return Shape{}, fmt.Errorf("invalid shape %q: expected RxC", s)
	}
	dims := make([]int, 0, 2)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Shape{}, fmt.Errorf("invalid shape %q: %w", s, err)
		}
		dims = append(dims, n)
	}
	shape := Shape{Rows: dims[0], Cols: 1}
	if len(dims) == 2 {
		shape.Cols = dims[1]
	}
	if !shape.Valid() {
		return Shape{}, fmt.Errorf("invalid shape %q: dimensions must be positive", s)
	}
	return shape, nil
}
