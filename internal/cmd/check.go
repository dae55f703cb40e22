package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thirteen37/configbridge/document"
)

func newCheckCmd(a *app) *cobra.Command {
	var formatName string
	var stripComments bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check that configuration files parse",
		Long: `Parse each file with the adapter for its format and report the result.

Example:
  configbridge check config.yaml settings.json
  configbridge check --format yaml .config`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := document.Options{StripComments: stripComments}
			return a.runCheck(cmd, formatName, opts, args)
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "Format of all files (default: inferred from each extension)")
	cmd.Flags().BoolVar(&stripComments, "strip-comments", false, "Strip // comments from JSON input")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, formatName string, opts document.Options, files []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, file := range files {
		f, err := formatFor(formatName, file)
		if err != nil {
			return err
		}

		doc, err := a.engine.Load(file, f, opts)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), file, err)
			continue
		}

		data, err := a.engine.Dump(doc, docFormat(doc, f), opts)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: parsed but cannot be rendered: %v\n", color.RedString("FAIL"), file, err)
			continue
		}
		fmt.Fprintf(out, "%s   %s (%s, %s)\n", color.GreenString("ok"), file, doc.Kind(), humanize.Bytes(uint64(len(data))))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// docFormat is the format to re-render a loaded document with.
func docFormat(doc document.Document, f document.Format) document.Format {
	if f != document.Auto {
		return f
	}
	switch doc.Kind() {
	case document.KindYAML:
		return document.YAML
	case document.KindTOML:
		return document.TOML
	default:
		return document.JSON
	}
}
