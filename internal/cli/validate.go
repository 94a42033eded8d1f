package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Datatype string
}

// ValidationResult holds the validity of one input.
type ValidationResult struct {
	Input    string `json:"input"`
	Kind     string `json:"kind"`
	Datatype string `json:"datatype"`
	Valid    bool   `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <lexical>...",
		Short: "Check literals against their datatype grammar",
		Long: `Report whether each input is a valid literal of the datatype.

An input is valid when it parses to a value and its lexical form matches
the datatype grammar exactly. "10:00" parses but is not valid xsd:time.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Datatype, "datatype", "d", "time", "datatype (time|date|dateTime|string|<uri>)")

	return cmd
}

func runValidate(opts *ValidateOptions, inputs []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	results := make([]ValidationResult, 0, len(inputs))
	invalid := 0
	for _, in := range inputs {
		lit := buildLiteral(in, opts.Datatype)
		r := ValidationResult{
			Input:    in,
			Kind:     lit.Kind().String(),
			Datatype: lit.Datatype().String(),
			Valid:    lit.Valid(),
		}
		if !r.Valid {
			invalid++
		}
		results = append(results, r)
	}

	if opts.Format == "json" {
		var cliErr *CLIError
		if invalid > 0 {
			cliErr = &CLIError{Code: ErrCodeInvalidLiteral, Message: fmt.Sprintf("%d invalid literal(s)", invalid)}
		}
		if err := formatter.JSON(results, cliErr); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, r := range results {
			mark := "✓"
			if !r.Valid {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s %s\n", mark, r.Input)
			formatter.VerboseLog("  kind=%s datatype=%s", r.Kind, r.Datatype)
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid literal(s)", invalid))
	}
	return nil
}
