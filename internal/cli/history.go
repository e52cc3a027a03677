package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/powcanon/internal/power"
	"github.com/roach88/powcanon/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Regime   string // optional - filter to one regime
}

// HistoryResult holds the recorded lowerings, oldest first.
type HistoryResult struct {
	Lowerings []store.Lowering `json:"lowerings"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List lowered programs recorded in a database",
		Long: `List the lowered programs recorded by "powcanon lower --db", in the
order they were first recorded.

Examples:
  powcanon history --db ./powcanon.db
  powcanon history --db ./powcanon.db --regime negative
  powcanon history --db ./powcanon.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to the config file's database)")
	cmd.Flags().StringVar(&opts.Regime, "regime", "", "only list lowerings in this regime")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if err := requireFormat(opts.Format); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = opts.RootOptions.Database
	}
	if dbPath == "" {
		return commandError(formatter, ErrCodeInvalidFlag, "no database: pass --db or set database in the config file")
	}
	if opts.Regime != "" {
		if _, err := power.ParseRegime(opts.Regime); err != nil {
			return commandError(formatter, ErrCodeInvalidFlag, err.Error())
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(dbPath, store.WithLogger(opts.logger()))
	if err != nil {
		return commandError(formatter, ErrCodeStoreFailed, fmt.Sprintf("failed to open database: %v", err))
	}
	defer st.Close()

	var lowerings []store.Lowering
	if opts.Regime != "" {
		lowerings, err = st.ListLoweringsByRegime(ctx, opts.Regime)
	} else {
		lowerings, err = st.ListLowerings(ctx)
	}
	if err != nil {
		return commandError(formatter, ErrCodeStoreFailed, err.Error())
	}

	formatter.VerboseLog("Found %d lowering(s) in %s", len(lowerings), dbPath)

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Lowerings: lowerings})
	}

	w := formatter.Writer
	if len(lowerings) == 0 {
		fmt.Fprintf(w, "No lowerings recorded in %s\n", dbPath)
		return nil
	}
	for _, l := range lowerings {
		fmt.Fprintf(w, "%4d  %s  %-18s %d constraint(s)  max_den=%d  %s\n",
			l.Seq, l.ID[:12], l.Regime, l.ConstraintCount, l.MaxDenominator, l.Atom)
	}
	return nil
}
