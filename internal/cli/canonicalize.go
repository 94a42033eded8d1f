package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jammie/rdf/internal/literal"
)

// CanonicalizeOptions holds flags for the canonicalize command.
type CanonicalizeOptions struct {
	*RootOptions
	Datatype string
}

// CanonicalResult is the outcome for one input.
type CanonicalResult struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewCanonicalizeCommand creates the canonicalize command.
func NewCanonicalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CanonicalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "canonicalize <lexical>...",
		Short: "Print canonical forms",
		Long: `Print the canonical lexical form of each input.

Times are converted to UTC with "Z" as the only timezone suffix and
24:00:00 becomes 00:00:00. Fractional seconds are kept.

Exit codes:
  0 - Every input was canonicalized
  1 - At least one input has no value
  2 - Command error

Examples:
  rdflit canonicalize 14:30:00-05:00
  rdflit canonicalize --datatype date 2024-01-01+00:00
  rdflit canonicalize 24:00:00 10:00:00.500Z --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonicalize(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Datatype, "datatype", "d", "time", "datatype (time|date|dateTime|string|<uri>)")

	return cmd
}

func runCanonicalize(opts *CanonicalizeOptions, inputs []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	results := make([]CanonicalResult, 0, len(inputs))
	failed := 0
	for _, in := range inputs {
		lit := buildLiteral(in, opts.Datatype)
		canonical, err := literal.Canonical(lit)
		if err != nil {
			logger.Debug("canonicalize failed", "input", in, "error", err)
			results = append(results, CanonicalResult{Input: in, Error: err.Error()})
			failed++
			continue
		}
		formatter.VerboseLog("%s -> %s (valid=%v)", in, canonical, lit.Valid())
		results = append(results, CanonicalResult{Input: in, Canonical: canonical})
	}

	if opts.Format == "json" {
		var cliErr *CLIError
		if failed > 0 {
			cliErr = &CLIError{Code: ErrCodeNoValue, Message: fmt.Sprintf("%d input(s) could not be canonicalized", failed)}
		}
		if err := formatter.JSON(results, cliErr); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, r := range results {
			if r.Error != "" {
				fmt.Fprintf(w, "✗ %s: %s\n", r.Input, r.Error)
				continue
			}
			fmt.Fprintln(w, r.Canonical)
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d input(s) could not be canonicalized", failed))
	}
	return nil
}
