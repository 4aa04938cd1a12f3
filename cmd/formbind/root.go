package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "formbind",
		Short: "Validate HTML forms against a rule schema",
		Long: `formbind binds the rules of a YAML schema to a form of an HTML page,
fills the form with the given values and runs the submit interaction:
every rule of every field is checked and the form is submitted only
when all of them pass.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	cmd.AddCommand(checkCmd(), hashCmd())
	return cmd
}
