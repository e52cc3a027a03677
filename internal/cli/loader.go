package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/powcanon/internal/compiler"
	"github.com/roach88/powcanon/internal/ir"
)

// LoadMode controls how errors are handled during spec loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the atoms loaded from a directory of CUE files.
type LoadResult struct {
	Atoms     []ir.AtomSpec
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadError represents an error that occurred during spec loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func loadErr(code, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// LoadAtoms compiles the `atom: <name>: {...}` declarations in the CUE
// package at dir. LoadModeFailFast stops at the first bad atom;
// LoadModeCollectAll reports every one.
//
// A nil result means the directory itself could not be loaded.
func LoadAtoms(dir string, mode LoadMode) (*LoadResult, []error) {
	value, fileCount, err := buildPackage(dir)
	if err != nil {
		return nil, []error{err}
	}
	result := &LoadResult{CUEValue: value, FileCount: fileCount}

	atoms := value.LookupPath(cue.ParsePath("atom"))
	if !atoms.Exists() {
		return result, []error{loadErr(ErrCodeGeneric, "no atoms found in specs")}
	}
	iter, iterErr := atoms.Fields()
	if iterErr != nil {
		return result, []error{loadErr(ErrCodeGeneric, "iterating atoms: %v", iterErr)}
	}

	var errs []error
	for iter.Next() {
		spec, compileErr := compiler.CompileAtom(iter.Value())
		if compileErr == nil {
			result.Atoms = append(result.Atoms, *spec)
			continue
		}
		errs = append(errs, convertCompileError(compileErr, "atom."+iter.Label()))
		if mode == LoadModeFailFast {
			break
		}
	}
	if len(result.Atoms) == 0 && len(errs) == 0 {
		errs = append(errs, loadErr(ErrCodeGeneric, "no atoms found in specs"))
	}
	return result, errs
}

// buildPackage loads and evaluates the CUE package in dir.
func buildPackage(dir string) (cue.Value, int, *LoadError) {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return cue.Value{}, 0, loadErr(ErrCodeNotFound, "specs directory not found: %s", dir)
	case err != nil:
		return cue.Value{}, 0, loadErr(ErrCodeNotFound, "error accessing specs directory: %v", err)
	case !info.IsDir():
		return cue.Value{}, 0, loadErr(ErrCodeNotFound, "not a directory: %s", dir)
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return cue.Value{}, 0, loadErr(ErrCodeScanError, "error scanning directory: %v", err)
	}
	if len(files) == 0 {
		return cue.Value{}, 0, loadErr(ErrCodeNoFiles, "no CUE files found in %s", dir)
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, 0, loadErr(ErrCodeLoadFailed, "no CUE instances loaded")
	}
	if err := instances[0].Err; err != nil {
		return cue.Value{}, 0, loadErr(ErrCodeLoadFailed, "loading CUE files: %v", err)
	}

	value := cuecontext.New().BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return cue.Value{}, 0, loadErr(ErrCodeBuildFailed, "building CUE value: %v", err)
	}
	return value, len(files), nil
}

// FindCUEFiles returns every .cue file under dir.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError turns a compile failure into a positioned LoadError
// coded by the offending field.
func convertCompileError(err error, path string) *LoadError {
	var compileErr *compiler.CompileError
	if !errors.As(err, &compileErr) {
		return loadErr(ErrCodeGeneric, "%s: %v", path, err)
	}
	return &LoadError{
		Code:    MapFieldToErrorCode(compileErr.Field),
		Message: path + ": " + compileErr.Message,
		Pos:     compileErr.Pos,
	}
}

// CLI error codes. E1xx codes come from compiler validation.
const (
	ErrCodeGeneric     = "E001"
	ErrCodeScanError   = "E002"
	ErrCodeNoFiles     = "E003"
	ErrCodeLoadFailed  = "E004"
	ErrCodeNotFound    = "E005" // specs directory missing
	ErrCodeBuildFailed = "E006"
	ErrCodeWriteFailed = "E007" // --output could not be written

	ErrCodeInvalidExponent = "E010" // Exponent is not a real scalar
	ErrCodeInvalidFlag     = "E011" // Bad shape, sign or bound
	ErrCodeLowerFailed     = "E012" // Lowering failed
	ErrCodeStoreFailed     = "E013" // Store read or write failed
)

// MapFieldToErrorCode returns the validation code for a failing atom field.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "exponent":
		return compiler.ErrInvalidExponent
	case "operand", "operand.name":
		return compiler.ErrOperandNameEmpty
	case "operand.shape":
		return compiler.ErrInvalidShape
	case "operand.sign":
		return compiler.ErrInvalidSign
	default:
		return ErrCodeGeneric
	}
}
