package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/internal/config"
)

type convertFlags struct {
	from          string
	to            string
	optionsFile   string
	precision     int
	strictBools   bool
	noAutoBoolean bool
	noAutoNumber  bool
	stripComments bool
}

func newConvertCmd(a *app) *cobra.Command {
	f := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a configuration file to another format",
		Long: `Convert a configuration file to another format.

Formats are inferred from the file extensions unless --from or --to is
given. Use - as input to read stdin and - as output to write stdout; the
format must then be given explicitly.

Example:
  configbridge convert config.yaml config.json
  configbridge convert --to ordered-toml config.json -
  cat config.yaml | configbridge convert --from yaml --to json --strict-booleans - -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, f, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&f.from, "from", "", "Input format (json, ordered-json, yaml, toml, ordered-toml)")
	cmd.Flags().StringVar(&f.to, "to", "", "Output format")
	cmd.Flags().StringVar(&f.optionsFile, "options", "", "Options file (.json, .yaml or .toml)")
	cmd.Flags().IntVar(&f.precision, "precision", document.DefaultFloatPrecision, "Significant digits for floats; negative for shortest exact form")
	cmd.Flags().BoolVar(&f.strictBools, "strict-booleans", false, "Only treat true and false as booleans in YAML")
	cmd.Flags().BoolVar(&f.noAutoBoolean, "no-auto-boolean", false, "Keep boolean-looking YAML scalars as strings")
	cmd.Flags().BoolVar(&f.noAutoNumber, "no-auto-number", false, "Keep numeric-looking YAML scalars as strings")
	cmd.Flags().BoolVar(&f.stripComments, "strip-comments", false, "Strip // comments from JSON input")

	return cmd
}

// options merges the options file with the flags given on the command line.
func (f *convertFlags) options(cmd *cobra.Command) (document.Options, error) {
	var opts document.Options
	if f.optionsFile != "" {
		cfg, err := config.Load(f.optionsFile)
		if err != nil {
			return opts, err
		}
		opts = cfg.Options()
	}

	flags := cmd.Flags()
	if flags.Changed("precision") {
		opts.FloatPrecision = f.precision
	}
	if flags.Changed("strict-booleans") {
		opts.StrictBooleans = f.strictBools
	}
	if flags.Changed("no-auto-boolean") {
		opts.DisableAutoBoolean = f.noAutoBoolean
	}
	if flags.Changed("no-auto-number") {
		opts.DisableAutoNumber = f.noAutoNumber
	}
	if flags.Changed("strip-comments") {
		opts.StripComments = f.stripComments
	}
	return opts, nil
}

func (a *app) runConvert(cmd *cobra.Command, f *convertFlags, input, output string) error {
	opts, err := f.options(cmd)
	if err != nil {
		return err
	}

	from, err := formatFor(f.from, input)
	if err != nil {
		return err
	}
	if from == document.Auto {
		return fmt.Errorf("cannot infer the format of %q, use --from", input)
	}
	to, err := formatFor(f.to, output)
	if err != nil {
		return err
	}
	if to == document.Auto {
		return fmt.Errorf("cannot infer the format of %q, use --to", output)
	}

	var data []byte
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out, err := a.engine.ConvertText(from, to, data, opts)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) -> %s (%s, %s)\n",
		color.GreenString("converted"), input, from, output, to, humanize.Bytes(uint64(len(out))))
	return nil
}
