package main

import (
	"io"
	"log/slog"

	"github.com/lixenwraith/kvconf"
	"github.com/spf13/cobra"
)

// App holds the state shared by all subcommands.
type App struct {
	Out io.Writer
	Err io.Writer

	DefaultsFile string
	File         string
	Sets         []string
	Verbose      bool
}

// NewRootCmd creates the kvconf command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	app := &App{Out: out, Err: errOut}

	rootCmd := &cobra.Command{
		Use:   "kvconf",
		Short: "Inspect key=value configuration files",
		Long: `kvconf loads a defaults file that declares every legal option, then
applies a configuration file and --set overrides on top of it. Overrides
may only change options the defaults declare.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.DefaultsFile, "defaults", "d", "", "file declaring options and their default values (required)")
	flags.StringVarP(&app.File, "file", "f", "", "configuration file applied over the defaults (\"-\" for stdin)")
	flags.StringArrayVar(&app.Sets, "set", nil, "override an option as key=value (repeatable)")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "log load progress to stderr")
	cobra.CheckErr(rootCmd.MarkPersistentFlagRequired("defaults"))

	rootCmd.AddCommand(
		NewCheckCmd(app),
		NewGetCmd(app),
		NewDumpCmd(app),
	)
	return rootCmd
}

// Load builds the store from the defaults file, the configuration file and
// the --set overrides, in that order.
func (app *App) Load() (*kvconf.Store, error) {
	args := make([]string, 0, len(app.Sets))
	for _, set := range app.Sets {
		args = append(args, "--"+set)
	}

	return kvconf.NewBuilder().
		WithDefaultsFile(app.DefaultsFile).
		WithFile(app.File).
		WithArgs(args).
		WithLogger(app.logger()).
		Build()
}

func (app *App) logger() *slog.Logger {
	if !app.Verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(app.Err, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
