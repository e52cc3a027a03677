package rational

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
)

// InvalidExponentError reports an exponent that is not a real scalar.
// Atom construction aborts when it is returned.
type InvalidExponentError struct {
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *InvalidExponentError) Error() string {
	return fmt.Sprintf("invalid exponent %v (%T): %s", e.Value, e.Value, e.Reason)
}

// IsInvalidExponent reports whether err wraps an InvalidExponentError.
func IsInvalidExponent(err error) bool {
	var ie *InvalidExponentError
	return errors.As(err, &ie)
}

// Sanitize coerces a scalar exponent into an exact Rat.
//
// Integers convert with denominator 1, Rat and big.Rat values pass through,
// and floats convert from their exact binary value. A slice or array holding
// exactly one element is unwrapped. Anything else, including complex numbers,
// NaN, infinities, strings and multi-element collections, is rejected with an
// InvalidExponentError.
func Sanitize(v any) (Rat, error) {
	switch x := v.(type) {
	case Rat:
		return x, nil
	case *Rat:
		if x == nil {
			return Rat{}, invalid(v, "nil rational")
		}
		return *x, nil
	case *big.Rat:
		if x == nil {
			return Rat{}, invalid(v, "nil rational")
		}
		return FromBig(x), nil
	case big.Rat:
		return FromBig(&x), nil
	case *big.Int:
		if x == nil {
			return Rat{}, invalid(v, "nil integer")
		}
		return Rat{r: new(big.Rat).SetInt(x)}, nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return fromUint(uint64(x)), nil
	case uint16:
		return fromUint(uint64(x)), nil
	case uint32:
		return fromUint(uint64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return fromFloat(v, float64(x))
	case float64:
		return fromFloat(v, x)
	case complex64, complex128:
		return Rat{}, invalid(v, "complex exponents are not supported")
	case nil:
		return Rat{}, invalid(v, "missing exponent")
	case string:
		return Rat{}, invalid(v, "expected a number, got a string")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() != 1 {
			return Rat{}, invalid(v, fmt.Sprintf("expected a scalar, got %d elements", rv.Len()))
		}
		return Sanitize(rv.Index(0).Interface())
	}
	return Rat{}, invalid(v, "unsupported exponent type")
}

// Parse reads an exponent written as an integer ("3"), a fraction ("3/4"),
// or a decimal ("0.25", "1e-3"). Decimals are taken as exact decimals.
func Parse(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rat{}, invalid(s, "empty exponent")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rat{}, invalid(s, "not a rational number")
	}
	return Rat{r: r}, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or for constant inputs.
func MustParse(s string) Rat {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func fromUint(n uint64) Rat {
	return Rat{r: new(big.Rat).SetInt(new(big.Int).SetUint64(n))}
}

func fromFloat(orig any, f float64) (Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rat{}, invalid(orig, "exponent must be finite")
	}
	return Rat{r: new(big.Rat).SetFloat64(f)}, nil
}

func invalid(v any, reason string) *InvalidExponentError {
	return &InvalidExponentError{Value: v, Reason: reason}
}
