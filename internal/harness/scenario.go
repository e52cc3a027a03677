package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MaxDenominator overrides the approximation bound. Zero means the
	// default of 1024.
	MaxDenominator int64 `yaml:"max_denominator,omitempty"`

	// Cases are run in order.
	Cases []Case `yaml:"cases"`
}

// Case is a single power atom to normalize and lower.
type Case struct {
	Name string `yaml:"name"`

	// Exponent is a YAML number, or a string holding an integer, "n/d" or
	// a decimal. Strings are exact; numbers are taken as their float64
	// value.
	Exponent any `yaml:"exponent"`

	Operand OperandDecl `yaml:"operand"`

	// Expect is optional; without it the case only has to lower cleanly.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// OperandDecl describes the leaf the atom is applied to.
type OperandDecl struct {
	Name string `yaml:"name"`

	// Shape is "RxC" or "N" (a column). Defaults to 1x1.
	Shape string `yaml:"shape,omitempty"`

	// Sign defaults to unknown.
	Sign string `yaml:"sign,omitempty"`
}

// ExpectClause lists the observations a case must produce. Unset fields
// are not checked.
type ExpectClause struct {
	Regime       string   `yaml:"regime,omitempty"`
	Exponent     string   `yaml:"exponent,omitempty"`
	Weights      []string `yaml:"weights,omitempty"`
	NoWeights    bool     `yaml:"no_weights,omitempty"`
	Curvature    string   `yaml:"curvature,omitempty"`
	Monotonicity string   `yaml:"monotonicity,omitempty"`
	Sign         string   `yaml:"sign,omitempty"`
	Collapsed    *bool    `yaml:"collapsed,omitempty"`
	Constraints  *int     `yaml:"constraints,omitempty"`

	// Values are elementwise evaluation points.
	Values []ValuePoint `yaml:"values,omitempty"`

	// Error is the expected failure kind. Only "invalid_exponent" is
	// supported.
	Error string `yaml:"error,omitempty"`
}

// ValuePoint is one evaluation of x^p. Either Y or DomainError is set.
type ValuePoint struct {
	X           float64  `yaml:"x"`
	Y           *float64 `yaml:"y,omitempty"`
	DomainError bool     `yaml:"domain_error,omitempty"`
}

// Error kind constants.
const (
	ErrorInvalidExponent = "invalid_exponent"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "case:" vs "cases:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Policy returns the approximation policy for the scenario.
func (s *Scenario) Policy() power.Policy {
	if s.MaxDenominator == 0 {
		return power.DefaultPolicy()
	}
	return power.Policy{MaxDenominator: s.MaxDenominator}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.MaxDenominator < 0 {
		return fmt.Errorf("max_denominator must be >= 1, got %d", s.MaxDenominator)
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]bool)
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		names[c.Name] = true

		if c.Operand.Name == "" {
			return fmt.Errorf("cases[%d]: operand.name is required", i)
		}
		if _, err := c.Operand.shape(); err != nil {
			return fmt.Errorf("cases[%d]: operand.shape: %w", i, err)
		}
		if _, err := ir.ParseSign(c.Operand.Sign); err != nil {
			return fmt.Errorf("cases[%d]: operand.sign: %w", i, err)
		}
		if c.Expect != nil {
			if err := validateExpect(i, c.Expect); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateExpect validates a single expect clause.
func validateExpect(index int, e *ExpectClause) error {
	if e.Error != "" && e.Error != ErrorInvalidExponent {
		return fmt.Errorf("cases[%d].expect: unknown error kind %q", index, e.Error)
	}
	if e.Regime != "" {
		if _, err := power.ParseRegime(e.Regime); err != nil {
			return fmt.Errorf("cases[%d].expect: %w", index, err)
		}
	}
	if e.Weights != nil && len(e.Weights) != 2 {
		return fmt.Errorf("cases[%d].expect: weights must have two entries, got %d", index, len(e.Weights))
	}
	if e.Weights != nil && e.NoWeights {
		return fmt.Errorf("cases[%d].expect: weights and no_weights are exclusive", index)
	}
	for j, v := range e.Values {
		if (v.Y == nil) == !v.DomainError {
			return fmt.Errorf("cases[%d].expect.values[%d]: exactly one of y or domain_error is required", index, j)
		}
	}
	return nil
}

// shape parses the declared shape, defaulting to 1x1.
func (o OperandDecl) shape() (ir.Shape, error) {
	if o.Shape == "" {
		return ir.Scalar, nil
	}
	return ir.ParseShape(o.Shape)
}

// leaf builds the expression for the operand. The declaration has already
// been validated.
func (o OperandDecl) leaf() ir.Leaf {
	shape, _ := o.shape()
	sign, _ := ir.ParseSign(o.Sign)
	return ir.Leaf{Label: o.Name, Dims: shape, Sgn: sign}
}
