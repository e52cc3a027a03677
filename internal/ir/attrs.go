package ir

import "fmt"

// Sign is the DCP sign attribute of an expression.
type Sign int

const (
	SignUnknown Sign = iota
	SignZero
	SignPositive
	SignNegative
	SignNonnegative
	SignNonpositive
)

var signNames = map[Sign]string{
	SignUnknown:     "unknown",
	SignZero:        "zero",
	SignPositive:    "positive",
	SignNegative:    "negative",
	SignNonnegative: "nonnegative",
	SignNonpositive: "nonpositive",
}

func (s Sign) String() string {
	if name, ok := signNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sign(%d)", int(s))
}

// IsNonnegative reports whether every value with this sign is >= 0.
func (s Sign) IsNonnegative() bool {
	return s == SignZero || s == SignPositive || s == SignNonnegative
}

// IsNonpositive reports whether every value with this sign is <= 0.
func (s Sign) IsNonpositive() bool {
	return s == SignZero || s == SignNegative || s == SignNonpositive
}

// ParseSign parses the String form of a Sign. The empty string is unknown.
func ParseSign(s string) (Sign, error) {
	if s == "" {
		return SignUnknown, nil
	}
	for k, v := range signNames {
		if v == s {
			return k, nil
		}
	}
	return SignUnknown, fmt.Errorf("unknown sign %q", s)
}

// Curvature is the DCP curvature of a function.
type Curvature int

const (
	CurvatureUnknown Curvature = iota
	CurvatureConstant
	CurvatureAffine
	CurvatureConvex
	CurvatureConcave
)

var curvatureNames = map[Curvature]string{
	CurvatureUnknown:  "unknown",
	CurvatureConstant: "constant",
	CurvatureAffine:   "affine",
	CurvatureConvex:   "convex",
	CurvatureConcave:  "concave",
}

func (c Curvature) String() string {
	if name, ok := curvatureNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Curvature(%d)", int(c))
}

// ParseCurvature parses the String form of a Curvature.
func ParseCurvature(s string) (Curvature, error) {
	for k, v := range curvatureNames {
		if v == s {
			return k, nil
		}
	}
	return CurvatureUnknown, fmt.Errorf("unknown curvature %q", s)
}

// Monotonicity describes how a function responds to one of its arguments.
type Monotonicity int

const (
	Nonmonotonic Monotonicity = iota
	Increasing
	Decreasing
	// Signed is increasing where the argument is nonnegative and decreasing
	// where it is nonpositive.
	Signed
)

var monotonicityNames = map[Monotonicity]string{
	Nonmonotonic: "nonmonotonic",
	Increasing:   "increasing",
	Decreasing:   "decreasing",
	Signed:       "signed",
}

func (m Monotonicity) String() string {
	if name, ok := monotonicityNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Monotonicity(%d)", int(m))
}

// ParseMonotonicity parses the String form of a Monotonicity.
func ParseMonotonicity(s string) (Monotonicity, error) {
	for k, v := range monotonicityNames {
		if v == s {
			return k, nil
		}
	}
	return Nonmonotonic, fmt.Errorf("unknown monotonicity %q", s)
}
