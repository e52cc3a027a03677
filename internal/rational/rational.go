package rational

import (
	"math/big"
)

// Rat is an immutable exact fraction in lowest terms.
// The zero value is 0.
type Rat struct {
	r *big.Rat
}

var (
	// Zero is the rational 0.
	Zero = FromInt(0)
	// One is the rational 1.
	One = FromInt(1)
)

// New returns num/den reduced to lowest terms. Panics if den is zero.
func New(num, den int64) Rat {
	if den == 0 {
		panic("rational: zero denominator")
	}
	return Rat{r: big.NewRat(num, den)}
}

// FromInt returns n/1.
func FromInt(n int64) Rat {
	return Rat{r: new(big.Rat).SetInt64(n)}
}

// FromBig copies a big.Rat. A nil input yields 0.
func FromBig(x *big.Rat) Rat {
	if x == nil {
		return Rat{}
	}
	return Rat{r: new(big.Rat).Set(x)}
}

func (x Rat) val() *big.Rat {
	if x.r == nil {
		return new(big.Rat)
	}
	return x.r
}

// Big returns a copy of x as a big.Rat.
func (x Rat) Big() *big.Rat {
	return new(big.Rat).Set(x.val())
}

// Num returns a copy of the numerator.
func (x Rat) Num() *big.Int {
	return new(big.Int).Set(x.val().Num())
}

// Den returns a copy of the (positive) denominator.
func (x Rat) Den() *big.Int {
	return new(big.Int).Set(x.val().Denom())
}

// Add returns x + y.
func (x Rat) Add(y Rat) Rat {
	return Rat{r: new(big.Rat).Add(x.val(), y.val())}
}

// Sub returns x - y.
func (x Rat) Sub(y Rat) Rat {
	return Rat{r: new(big.Rat).Sub(x.val(), y.val())}
}

// Mul returns x * y.
func (x Rat) Mul(y Rat) Rat {
	return Rat{r: new(big.Rat).Mul(x.val(), y.val())}
}

// Quo returns x / y. Panics if y is zero.
func (x Rat) Quo(y Rat) Rat {
	if y.IsZero() {
		panic("rational: division by zero")
	}
	return Rat{r: new(big.Rat).Quo(x.val(), y.val())}
}

// Inv returns 1/x. Panics if x is zero.
func (x Rat) Inv() Rat {
	return One.Quo(x)
}

// Neg returns -x.
func (x Rat) Neg() Rat {
	return Rat{r: new(big.Rat).Neg(x.val())}
}

// Abs returns |x|.
func (x Rat) Abs() Rat {
	return Rat{r: new(big.Rat).Abs(x.val())}
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Rat) Cmp(y Rat) int {
	return x.val().Cmp(y.val())
}

// Equal reports whether x == y.
func (x Rat) Equal(y Rat) bool {
	return x.Cmp(y) == 0
}

// Sign returns -1, 0 or +1.
func (x Rat) Sign() int {
	return x.val().Sign()
}

// IsZero reports whether x == 0.
func (x Rat) IsZero() bool {
	return x.Sign() == 0
}

// IsOne reports whether x == 1.
func (x Rat) IsOne() bool {
	return x.Equal(One)
}

// IsInt reports whether the denominator is 1.
func (x Rat) IsInt() bool {
	return x.val().IsInt()
}

// IsPowerOfTwo reports whether x is a positive integer with a single set bit
// (1, 2, 4, 8, ...).
func (x Rat) IsPowerOfTwo() bool {
	if !x.IsInt() || x.Sign() <= 0 {
		return false
	}
	n := x.val().Num()
	return n.BitLen()-1 == int(n.TrailingZeroBits())
}

// Float64 returns the nearest float64 and whether it is exact.
func (x Rat) Float64() (float64, bool) {
	return x.val().Float64()
}

// String formats x as "n" when integral, "n/d" otherwise.
func (x Rat) String() string {
	if x.IsInt() {
		return x.val().Num().String()
	}
	return x.val().String()
}

// MarshalText implements encoding.TextMarshaler.
func (x Rat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (x *Rat) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
