package power

import "fmt"

// Regime is the exponent range that fixes an atom's curvature and
// monotonicity.
type Regime int

const (
	RegimeZero Regime = iota
	RegimeOne
	RegimeOpenUnitInterval
	RegimeGreaterThanOne
	RegimeNegative
)

var regimeNames = map[Regime]string{
	RegimeZero:             "zero",
	RegimeOne:              "one",
	RegimeOpenUnitInterval: "open_unit_interval",
	RegimeGreaterThanOne:   "greater_than_one",
	RegimeNegative:         "negative",
}

func (r Regime) String() string {
	if name, ok := regimeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// HasWeights reports whether descriptors in this regime carry a weight pair.
func (r Regime) HasWeights() bool {
	return r == RegimeOpenUnitInterval || r == RegimeGreaterThanOne || r == RegimeNegative
}

// ParseRegime parses the String form of a Regime.
func ParseRegime(s string) (Regime, error) {
	for k, v := range regimeNames {
		if v == s {
			return k, nil
		}
	}
	return RegimeZero, fmt.Errorf("unknown regime %q", s)
}
