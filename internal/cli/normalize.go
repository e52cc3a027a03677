package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
	"github.com/roach88/powcanon/internal/rational"
)

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	*RootOptions
	Sign string // sign of the argument, for the derived atom sign
}

// DescriptorResult is the JSON view of a normalized exponent.
type DescriptorResult struct {
	Input          string   `json:"input"`
	Original       string   `json:"original"`
	Exponent       string   `json:"exponent"`
	Regime         string   `json:"regime"`
	Weights        []string `json:"weights,omitempty"`
	Approximated   bool     `json:"approximated"`
	Collapsed      bool     `json:"collapsed"`
	Curvature      string   `json:"curvature"`
	Monotonicity   string   `json:"monotonicity"`
	Sign           string   `json:"sign"`
	EvenPower      bool     `json:"even_power"`
	MaxDenominator int64    `json:"max_denominator"`
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "normalize <exponent>...",
		Short: "Normalize exponents into power descriptors",
		Long: `Normalize one or more exponents into exact rationals with a regime,
geometric-mean weights, and the curvature and monotonicity they imply.

Exponents are integers, fractions ("3/4") or decimals ("0.25"). Decimals
are read exactly. Put negative exponents after "--" so they are not taken
for flags.

Examples:
  powcanon normalize 2.5
  powcanon normalize 0.3 --max-denominator 4
  powcanon normalize --format json -- -1/2 3`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sign, "sign", "unknown", "sign of the argument (unknown|zero|positive|negative|nonnegative|nonpositive)")

	return cmd
}

func runNormalize(opts *NormalizeOptions, args []string, cmd *cobra.Command) error {
	if err := requireFormat(opts.Format); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	argSign, err := ir.ParseSign(opts.Sign)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error())
	}

	policy := opts.policy()
	if err := policy.Validate(); err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error())
	}

	results := make([]DescriptorResult, 0, len(args))
	for _, arg := range args {
		desc, err := parseDescriptor(arg, policy)
		if err != nil {
			return commandError(formatter, ErrCodeInvalidExponent, err.Error())
		}
		formatter.VerboseLog("normalized %s to %s (%s)", arg, desc.Exponent(), desc.Regime())
		results = append(results, describe(arg, desc, argSign, policy))
	}

	if formatter.Format == "json" {
		return formatter.Success(results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		writeDescriptor(formatter.Writer, r)
	}
	return nil
}

// parseDescriptor reads an exponent argument exactly and normalizes it.
func parseDescriptor(arg string, policy power.Policy) (power.Descriptor, error) {
	p, err := rational.Parse(arg)
	if err != nil {
		return power.Descriptor{}, err
	}
	return power.NewDescriptor(p, policy)
}

func describe(input string, desc power.Descriptor, arg ir.Sign, policy power.Policy) DescriptorResult {
	r := DescriptorResult{
		Input:          input,
		Original:       desc.Original().String(),
		Exponent:       desc.Exponent().String(),
		Regime:         desc.Regime().String(),
		Approximated:   desc.Approximated(),
		Collapsed:      desc.Collapsed(),
		Curvature:      desc.Curvature().String(),
		Monotonicity:   desc.Monotonicity().String(),
		Sign:           desc.Sign(arg).String(),
		EvenPower:      desc.IsEvenPower(),
		MaxDenominator: policy.MaxDenominator,
	}
	if w, ok := desc.Weights(); ok {
		r.Weights = []string{w.W1.String(), w.W2.String()}
	}
	return r
}

func writeDescriptor(w io.Writer, r DescriptorResult) {
	fmt.Fprintf(w, "%s -> %s\n", r.Input, r.Exponent)
	fmt.Fprintf(w, "  regime:       %s\n", r.Regime)
	if r.Weights != nil {
		fmt.Fprintf(w, "  weights:      (%s, %s)\n", r.Weights[0], r.Weights[1])
	}
	fmt.Fprintf(w, "  curvature:    %s\n", r.Curvature)
	fmt.Fprintf(w, "  monotonicity: %s\n", r.Monotonicity)
	fmt.Fprintf(w, "  sign:         %s\n", r.Sign)
	switch {
	case r.Collapsed:
		fmt.Fprintf(w, "  collapsed from %s (max denominator %d)\n", r.Original, r.MaxDenominator)
	case r.Approximated:
		fmt.Fprintf(w, "  approximated from %s (max denominator %d)\n", r.Original, r.MaxDenominator)
	}
}
