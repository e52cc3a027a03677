package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/powcanon/internal/canon"
	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
	"github.com/roach88/powcanon/internal/rational"
	"github.com/roach88/powcanon/internal/store"
	"github.com/roach88/powcanon/internal/testutil"
)

// LowerOptions holds flags for the lower command.
type LowerOptions struct {
	*RootOptions
	Name          string
	Shape         string
	Sign          string
	Database      string
	Deterministic bool
}

// LowerResult is the JSON view of a lowered atom.
type LowerResult struct {
	ProgramID   string      `json:"program_id"`
	Atom        string      `json:"atom"`
	Exponent    string      `json:"exponent"`
	Regime      string      `json:"regime"`
	Output      string      `json:"output"`
	Constraints []string    `json:"constraints"`
	Program     ir.IRObject `json:"program"`
	Recorded    bool        `json:"recorded"`
}

// NewLowerCommand creates the lower command.
func NewLowerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LowerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lower <exponent>",
		Short: "Lower power(x, p) into geometric-mean constraints",
		Long: `Lower power(x, p) into an output operand and geo_mean2 constraints.

The operand x is referenced by name. New epigraph and auxiliary variables
get UUIDv7 identifiers unless --deterministic is set, in which case they
are numbered v1, v2, ...

With --db (or database in the config file) the lowered program is recorded
in a SQLite store, keyed by its content hash.

Examples:
  powcanon lower 2.5 --name x --shape 3x1
  powcanon lower 0.5 --sign nonnegative --db ./powcanon.db
  powcanon lower --deterministic --format json -- -1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "x", "name of the operand")
	cmd.Flags().StringVar(&opts.Shape, "shape", "1x1", "shape of the operand (RxC or N)")
	cmd.Flags().StringVar(&opts.Sign, "sign", "unknown", "sign of the operand")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the program in this SQLite database")
	cmd.Flags().BoolVar(&opts.Deterministic, "deterministic", false, "number new variables v1, v2, ... instead of using UUIDs")

	return cmd
}

func runLower(opts *LowerOptions, exponent string, cmd *cobra.Command) error {
	if err := requireFormat(opts.Format); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	shape, err := ir.ParseShape(opts.Shape)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error())
	}
	sign, err := ir.ParseSign(opts.Sign)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error())
	}
	policy := opts.policy()
	if err := policy.Validate(); err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error())
	}

	p, err := rational.Parse(exponent)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidExponent, err.Error())
	}
	atom, err := power.NewAtom(ir.Leaf{Label: opts.Name, Dims: shape, Sgn: sign}, p, policy)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidExponent, err.Error())
	}

	var vars canon.VariableSource = canon.UUIDVariables{}
	if opts.Deterministic {
		vars = testutil.NewSeqVariables()
	}
	lowerer := canon.New(vars, canon.WithLogger(logger))

	prog, err := lowerer.LowerAtom(atom, ir.Ref{Name: opts.Name, Dims: shape})
	if err != nil {
		return commandError(formatter, ErrCodeLowerFailed, err.Error())
	}

	rec, err := store.NewLowering(prog, atom.Descriptor(), policy)
	if err != nil {
		return commandError(formatter, ErrCodeLowerFailed, err.Error())
	}

	result := LowerResult{
		ProgramID:   rec.ID,
		Atom:        prog.Atom,
		Exponent:    rec.Exponent,
		Regime:      rec.Regime,
		Output:      fmt.Sprint(prog.Output),
		Constraints: make([]string, len(prog.Constraints)),
		Program:     rec.Program,
	}
	for i, c := range prog.Constraints {
		result.Constraints[i] = fmt.Sprint(c)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.RootOptions.Database
	}
	if dbPath != "" {
		if err := recordLowering(cmd.Context(), dbPath, rec, opts.logger()); err != nil {
			return commandError(formatter, ErrCodeStoreFailed, err.Error())
		}
		result.Recorded = true
		logger.Debug("recorded lowering", "id", rec.ID, "db", dbPath)
		formatter.VerboseLog("recorded %s in %s", rec.ID, dbPath)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	writeLowering(formatter.Writer, result, dbPath)
	return nil
}

func recordLowering(ctx context.Context, path string, rec store.Lowering, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	return st.WriteLowering(ctx, rec)
}

func writeLowering(w io.Writer, r LowerResult, dbPath string) {
	fmt.Fprintf(w, "%s (%s)\n", r.Atom, r.Regime)
	fmt.Fprintf(w, "  output: %s\n", r.Output)
	if len(r.Constraints) == 0 {
		fmt.Fprintln(w, "  constraints: none")
	} else {
		fmt.Fprintln(w, "  constraints:")
		for _, c := range r.Constraints {
			fmt.Fprintf(w, "    %s\n", c)
		}
	}
	fmt.Fprintf(w, "  program: %s\n", r.ProgramID)
	if r.Recorded {
		fmt.Fprintf(w, "  recorded in %s\n", dbPath)
	}
}
