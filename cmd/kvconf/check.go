package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a configuration file against the defaults",
		Long: `Load the defaults, then the configuration file, and report the first
problem together with the file and line it was found on.

The file may be given as an argument or with --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.File = args[0]
			}

			store, err := app.Load()
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "ok: %d options\n", store.Len())
			return nil
		},
	}
}
