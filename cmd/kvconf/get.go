package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCmd creates the get command.
func NewGetCmd(app *App) *cobra.Command {
	var (
		asInt        bool
		showLocation bool
	)

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of one option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			store, err := app.Load()
			if err != nil {
				return err
			}

			var value string
			if asInt {
				n, err := store.Int64(key)
				if err != nil {
					return err
				}
				value = fmt.Sprint(n)
			} else {
				value, err = store.String(key)
				if err != nil {
					return err
				}
			}

			if !showLocation {
				fmt.Fprintln(app.Out, value)
				return nil
			}

			location, err := store.Location(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s\t%s\n", value, location)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asInt, "int", false, "interpret the value as a 64-bit integer")
	cmd.Flags().BoolVarP(&showLocation, "location", "l", false, "also print where the value was set")
	return cmd
}
