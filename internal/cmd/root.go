// Package cmd provides the CLI commands for configbridge.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/thirteen37/configbridge"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/logging"
)

// app holds the state shared by all commands.
type app struct {
	verbose bool
	noColor bool
	engine  *configbridge.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "configbridge",
		Short: "Convert configuration files between JSON, YAML and TOML",
		Long: `configbridge converts configuration files between JSON, ordered JSON,
YAML, TOML and ordered TOML.

Value types survive the trip: YAML scalars are typed on the way in,
integral floats stay floats ("1.0"), and key order is kept whenever the
output format allows it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log conversion steps to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newFormatsCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newInitCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	a.engine = configbridge.New(configbridge.WithLogger(logging.NewSlogAdapter(slog.New(handler))))

	color.NoColor = a.noColor || !isTerminal(cmd.OutOrStdout())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// formatFor resolves a --from/--to flag value. An empty value or "auto"
// infers the format from the file extension.
func formatFor(flag, path string) (document.Format, error) {
	if flag == "" || flag == "auto" {
		if path == "-" {
			return document.Auto, nil
		}
		return document.GuessFormat(path), nil
	}
	return document.ParseFormat(flag)
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("configbridge:"), err)
		os.Exit(1)
	}
}
