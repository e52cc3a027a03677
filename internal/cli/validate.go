package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/roach88/powcanon/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Atoms  int                        `json:"atoms"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <specs-dir>",
		Short: "Validate atom declarations without normalizing them",
		Long: `Validate the power atoms declared in CUE files.

Reports every problem found (missing names, bad exponents, bad shapes or
signs, duplicate atom names) instead of stopping at the first one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	if err := requireFormat(opts.Format); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	validationErrors, atoms, err := ValidateSpecsDir(specsDir)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return commandError(formatter, loadErr.Code, loadErr.Message)
		}
		return commandError(formatter, ErrCodeGeneric, err.Error())
	}

	formatter.VerboseLog("Validated %d atom(s) in %s", atoms, specsDir)

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, atoms, validationErrors)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Atoms: atoms})
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d atom(s) valid\n", atoms)
	return nil
}

// ValidateSpecsDir validates all atoms in a directory. Directory-level
// failures are returned as the error; problems with individual atoms are
// returned as validation errors alongside the number of atoms that compiled.
func ValidateSpecsDir(specsDir string) ([]compiler.ValidationError, int, error) {
	loadResult, loadErrors := LoadAtoms(specsDir, LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		return nil, 0, loadErrors[0]
	}

	var verrs []compiler.ValidationError
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			verrs = append(verrs, compiler.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    lineOf(loadErr.Pos),
			})
		}
	}
	verrs = append(verrs, compiler.Validate(loadResult.Atoms)...)

	return verrs, len(loadResult.Atoms), nil
}

// lineOf extracts the line number from a CUE position.
func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, atoms int, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Atoms:  atoms,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
