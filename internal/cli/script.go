package cli

import (
	"github.com/spf13/cobra"

	"github.com/jammie/rdf/internal/script"
)

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script [file]",
		Short: "Run a Starlark script with the literal module",
		Long: `Run a Starlark script, or start a REPL when no file is given.

Scripts see two predeclared modules: literal (time, date, datetime and
literal constructors plus the XSD datatype URIs) and time.

Example script:
  t = literal.time("14:30:00-05:00")
  print(t.canonical)            # 19:30:00Z
  print(t == literal.time("19:30:00Z"))`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			interp := script.New(cmd.OutOrStdout(), rootOpts.logger())
			if len(args) == 0 {
				interp.REPL()
				return nil
			}
			if _, err := interp.ExecFile(args[0], nil); err != nil {
				return WrapExitError(ExitFailure, "script failed", err)
			}
			return nil
		},
	}
	return cmd
}
