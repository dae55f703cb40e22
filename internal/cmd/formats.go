package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thirteen37/configbridge/document"
)

var knownExtensions = []string{".json", ".yaml", ".yml", ".toml", ".ini", ".xml"}

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported formats and conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFormats(cmd)
		},
	}
}

func (a *app) runFormats(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-14s %-12s %s\n", "FORMAT", "EXTENSIONS", "ADAPTER")
	for _, f := range document.Formats() {
		var exts []string
		for _, ext := range knownExtensions {
			if document.GuessFormat("file"+ext) == f {
				exts = append(exts, ext)
			}
		}
		extList := strings.Join(exts, " ")
		if extList == "" {
			extList = "-"
		}

		adapter := color.YellowString("not implemented")
		if ad := a.engine.Registry().Find(f); ad != nil {
			adapter = ad.Name()
		}
		fmt.Fprintf(out, "%-14s %-12s %s\n", f, extList, adapter)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Native bridges:")
	for _, p := range a.engine.Converter().NativePairs() {
		fmt.Fprintf(out, "  %s -> %s\n", p.From, p.To)
	}
	return nil
}
