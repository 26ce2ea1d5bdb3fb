package main

import (
	"github.com/lixenwraith/kvconf"
	"github.com/spf13/cobra"
)

// NewDumpCmd creates the dump command.
func NewDumpCmd(app *App) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the merged configuration",
		Long: `Print every option after defaults, file and overrides are applied.

Formats: kv, toml, yaml, json. With --output the merged configuration is
saved atomically in kv format with a location comment on each line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Load()
			if err != nil {
				return err
			}

			if output != "" {
				return store.Save(output)
			}
			return store.Dump(app.Out, kvconf.Format(format))
		},
	}

	cmd.Flags().StringVar(&format, "format", string(kvconf.FormatKV), "output format (kv, toml, yaml, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save to a file instead of printing")
	return cmd
}
