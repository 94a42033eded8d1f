package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// EqualOptions holds flags for the equal command.
type EqualOptions struct {
	*RootOptions
	DatatypeA string
	DatatypeB string
}

// EqualResult reports the comparison of two literals.
type EqualResult struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Equal bool   `json:"equal"`
}

// NewEqualCommand creates the equal command.
func NewEqualCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EqualOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "equal <a> <b>",
		Short: "Compare two literals",
		Long: `Compare two literals for value equality.

Valid times are equal when their UTC wall clocks match; fractional seconds
and the date are ignored. A time never equals a date or a date-time. Any
other pair is equal only if datatype and lexical form are identical.

Exit codes:
  0 - Equal
  1 - Not equal
  2 - Command error

Examples:
  rdflit equal 14:30:00-05:00 19:30:00Z
  rdflit equal 10:00:00Z 2024-01-01 --datatype-b date`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEqual(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DatatypeA, "datatype-a", "time", "datatype of the first literal")
	cmd.Flags().StringVar(&opts.DatatypeB, "datatype-b", "time", "datatype of the second literal")

	return cmd
}

func runEqual(opts *EqualOptions, a, b string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	la := buildLiteral(a, opts.DatatypeA)
	lb := buildLiteral(b, opts.DatatypeB)
	result := EqualResult{A: a, B: b, Equal: la.Equal(lb)}

	formatter.VerboseLog("%s: kind=%s valid=%v", a, la.Kind(), la.Valid())
	formatter.VerboseLog("%s: kind=%s valid=%v", b, lb.Kind(), lb.Valid())

	if opts.Format == "json" {
		var cliErr *CLIError
		if !result.Equal {
			cliErr = &CLIError{Code: ErrCodeNotEqual, Message: "literals are not equal"}
		}
		if err := formatter.JSON(result, cliErr); err != nil {
			return err
		}
	} else if err := formatter.Success(result.Equal); err != nil {
		return err
	}

	if !result.Equal {
		return NewExitError(ExitFailure, fmt.Sprintf("%s and %s are not equal", a, b))
	}
	return nil
}
