package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/rational"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedIRType = "E100" // unsupported IR type for validation

	// AtomSpec errors (E101-E109)
	ErrAtomNameEmpty     = "E101" // atom name is required
	ErrInvalidExponent   = "E102" // exponent is not an exact rational
	ErrOperandNameEmpty  = "E103" // operand name is required
	ErrInvalidShape      = "E104" // shape dimensions must be positive
	ErrInvalidSign       = "E105" // unknown sign attribute
	ErrDuplicateAtomName = "E106" // duplicate atom name
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates compiled atoms.
// Returns all errors found (does not fail-fast).
// Supports AtomSpec and slices of AtomSpec.
func Validate(v any) []ValidationError {
	switch spec := v.(type) {
	case *ir.AtomSpec:
		return validateAtomSpec(spec, "")
	case ir.AtomSpec:
		return validateAtomSpec(&spec, "")
	case []ir.AtomSpec:
		return validateAtomSpecs(spec)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported IR type: %T", v),
			Code:    ErrUnsupportedIRType,
		}}
	}
}

func validateAtomSpecs(specs []ir.AtomSpec) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i := range specs {
		prefix := fmt.Sprintf("atoms[%d].", i)
		errs = append(errs, validateAtomSpec(&specs[i], prefix)...)

		// E106: duplicate atom name
		name := specs[i].Name
		if name != "" && seen[name] {
			errs = append(errs, ValidationError{
				Field:   prefix + "name",
				Message: fmt.Sprintf("duplicate atom name: %q", name),
				Code:    ErrDuplicateAtomName,
			})
		}
		seen[name] = true
	}
	return errs
}

func validateAtomSpec(spec *ir.AtomSpec, prefix string) []ValidationError {
	var errs []ValidationError

	// E101: name is required
	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   prefix + "name",
			Message: "atom name is required and must be non-empty",
			Code:    ErrAtomNameEmpty,
		})
	}

	// E102: exponent must parse exactly
	if _, err := rational.Parse(spec.Exponent); err != nil {
		errs = append(errs, ValidationError{
			Field:   prefix + "exponent",
			Message: fmt.Sprintf("invalid exponent %q: %v", spec.Exponent, err),
			Code:    ErrInvalidExponent,
		})
	}

	// E103: operand name is required
	if strings.TrimSpace(spec.Operand.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   prefix + "operand.name",
			Message: "operand name is required and must be non-empty",
			Code:    ErrOperandNameEmpty,
		})
	}

	// E104: shape must be positive
	if !spec.Operand.Shape.Valid() {
		errs = append(errs, ValidationError{
			Field:   prefix + "operand.shape",
			Message: fmt.Sprintf("invalid shape %s: dimensions must be positive", spec.Operand.Shape),
			Code:    ErrInvalidShape,
		})
	}

	// E105: sign must be known
	if _, err := ir.ParseSign(spec.Operand.Sign); err != nil {
		errs = append(errs, ValidationError{
			Field:   prefix + "operand.sign",
			Message: err.Error(),
			Code:    ErrInvalidSign,
		})
	}

	return errs
}
