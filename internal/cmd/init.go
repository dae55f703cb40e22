package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/internal/config"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <options-file>",
		Short: "Write an options file with the default settings",
		Long: `Write an options file with the default conversion settings.

The file is encoded according to its extension (.json, .yaml, .yml or
.toml) and can be passed to convert with --options.

Example:
  configbridge init ~/.config/configbridge/options.toml
  configbridge convert --options ~/.config/configbridge/options.toml in.yaml out.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, target string, force bool) error {
	target = expandPath(target)

	if !force {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", target, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg := &config.File{FloatPrecision: document.DefaultFloatPrecision}
	if err := cfg.Save(target); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", target)
	return nil
}

// expandPath expands ~ to home directory.
func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
