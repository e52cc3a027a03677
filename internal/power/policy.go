package power

import "fmt"

// DefaultMaxDenominator bounds exponent denominators unless configured
// otherwise.
const DefaultMaxDenominator int64 = 1024

// Policy bounds how finely exponents are approximated. The maximum
// denominator also bounds how many auxiliary constraints lowering emits.
type Policy struct {
	MaxDenominator int64 `json:"max_denominator" yaml:"max_denominator"`
}

// DefaultPolicy returns the policy with DefaultMaxDenominator.
func DefaultPolicy() Policy {
	return Policy{MaxDenominator: DefaultMaxDenominator}
}

// Validate checks that the bound is usable.
func (p Policy) Validate() error {
	if p.MaxDenominator < 1 {
		return fmt.Errorf("max_denominator must be >= 1, got %d", p.MaxDenominator)
	}
	return nil
}

// maxDenominator returns the bound, falling back to the default for a zero
// Policy.
func (p Policy) maxDenominator() int64 {
	if p.MaxDenominator < 1 {
		return DefaultMaxDenominator
	}
	return p.MaxDenominator
}
