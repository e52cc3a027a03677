package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/powcanon/internal/config"
	"github.com/roach88/powcanon/internal/power"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose        bool
	Format         string // "json" | "text"
	ConfigPath     string
	MaxDenominator int64
	Database       string // from the config file; commands with --db override it

	// Logger is set by the root command. Commands built on their own (as in
	// tests) fall back to a discard logger.
	Logger *slog.Logger

	syncLogger func()
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.ValidFormats

// NewRootCommand creates the root command for the powcanon CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "powcanon",
		Short: "powcanon - power atom canonicalizer",
		Long: `Normalize scalar exponents into exact rationals and lower x^p into
geometric-mean cone constraints for disciplined convex programs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyConfig(cmd); err != nil {
				return err
			}
			opts.Logger, opts.syncLogger = newLogger(opts.Verbose, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.syncLogger != nil {
				opts.syncLogger()
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().Int64Var(&opts.MaxDenominator, "max-denominator", power.DefaultMaxDenominator, "largest denominator allowed when approximating exponents")

	// Add subcommands
	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewLowerCommand(opts))
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// applyConfig merges the config file into opts. Flags given on the command
// line win over the file.
func (o *RootOptions) applyConfig(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("max-denominator") {
		cfg.MaxDenominator = o.MaxDenominator
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid options", err)
	}

	o.Format = cfg.Format
	o.MaxDenominator = cfg.MaxDenominator
	o.Database = cfg.Database
	return nil
}

// policy returns the approximation policy. A zero bound means the default.
func (o *RootOptions) policy() power.Policy {
	if o.MaxDenominator == 0 {
		return power.DefaultPolicy()
	}
	return power.Policy{MaxDenominator: o.MaxDenominator}
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// requireFormat rejects unknown formats for commands run without the root.
func requireFormat(format string) error {
	if !isValidFormat(format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", format, ValidFormats))
	}
	return nil
}
