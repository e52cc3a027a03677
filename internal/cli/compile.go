package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/powcanon/internal/compiler"
	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
	"github.com/roach88/powcanon/internal/rational"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledAtom pairs a compiled declaration with its normalized exponent.
type CompiledAtom struct {
	Spec       ir.AtomSpec      `json:"spec"`
	Atom       string           `json:"atom"`
	Descriptor DescriptorResult `json:"descriptor"`
}

// CompilationResult holds the compiled atoms.
type CompilationResult struct {
	Atoms []CompiledAtom `json:"atoms"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <specs-dir>",
		Short: "Compile CUE atom declarations",
		Long: `Compile the power atoms declared in CUE files and normalize their exponents.

Atoms are declared as:

  atom: sqrt_x: {
      exponent: "1/2"
      operand: { name: "x", shape: [3, 1], sign: "nonnegative" }
  }

The exponent may be an integer, a float, or a string holding "n/d" or a
decimal.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, specsDir string, cmd *cobra.Command) error {
	if err := requireFormat(opts.Format); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	// Use shared loader with collect-all mode
	loadResult, loadErrors := LoadAtoms(specsDir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, specsDir)

	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	// Schema validation runs on the whole set so duplicate names are caught.
	if verrs := compiler.Validate(loadResult.Atoms); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return outputCompileErrors(formatter, errs)
	}

	policy := opts.policy()
	if err := policy.Validate(); err != nil {
		return outputCompileError(formatter, ErrCodeInvalidFlag, err.Error(), nil)
	}

	result := &CompilationResult{Atoms: make([]CompiledAtom, 0, len(loadResult.Atoms))}
	for _, spec := range loadResult.Atoms {
		formatter.VerboseLog("Compiling atom: %s", spec.Name)
		compiled, err := compileAtom(spec, policy)
		if err != nil {
			return outputCompileError(formatter, ErrCodeInvalidExponent, fmt.Sprintf("atom %s: %v", spec.Name, err), nil)
		}
		result.Atoms = append(result.Atoms, compiled)
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeAtomsToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// compileAtom normalizes a validated declaration.
func compileAtom(spec ir.AtomSpec, policy power.Policy) (CompiledAtom, error) {
	p, err := rational.Parse(spec.Exponent)
	if err != nil {
		return CompiledAtom{}, err
	}
	leaf := spec.Operand.Leaf()
	atom, err := power.NewAtom(leaf, p, policy)
	if err != nil {
		return CompiledAtom{}, err
	}
	return CompiledAtom{
		Spec:       spec,
		Atom:       atom.Name(),
		Descriptor: describe(spec.Exponent, atom.Descriptor(), leaf.Sign(), policy),
	}, nil
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d atom(s)\n\n", len(result.Atoms))
	fmt.Fprintln(formatter.Writer, "Atoms:")
	for _, a := range result.Atoms {
		line := fmt.Sprintf("  %s: %s %s", a.Spec.Name, a.Atom, a.Descriptor.Regime)
		if w := a.Descriptor.Weights; w != nil {
			line += fmt.Sprintf(" (%s, %s)", w[0], w[1])
		}
		if a.Descriptor.Approximated {
			line += fmt.Sprintf(" [from %s]", a.Descriptor.Original)
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	fmt.Fprintln(formatter.Writer)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote compiled atoms to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{
				Code:    code,
				Message: message,
			}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var verr compiler.ValidationError
	if errors.As(err, &verr) {
		return verr.Code, fmt.Sprintf("%s: %s", verr.Field, verr.Message)
	}
	return ErrCodeGeneric, err.Error()
}

// writeAtomsToFile writes the compilation result as indented JSON.
func writeAtomsToFile(result *CompilationResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling atoms: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
