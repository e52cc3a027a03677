package power

import (
	"errors"
	"fmt"
)

// DomainError reports an operand element outside the real domain of x^p.
// Evaluate returns one per offending element, joined with errors.Join.
type DomainError struct {
	Row      int
	Col      int
	Value    float64
	Exponent string
	Reason   string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("power domain error at (%d,%d): %g^%s: %s", e.Row, e.Col, e.Value, e.Exponent, e.Reason)
}

// IsDomainError reports whether err is or wraps a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// DomainErrors extracts every DomainError from a (possibly joined) error.
func DomainErrors(err error) []*DomainError {
	var out []*DomainError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if de, ok := e.(*DomainError); ok {
			out = append(out, de)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
