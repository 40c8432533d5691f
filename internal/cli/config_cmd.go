package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigGenerateCmd())
	return cmd
}

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite bool
	var update bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a default config.toml",
		Long:  "Write a config.toml seeded with every folio option, including the catalog source, site metadata for pages and feeds, and the visibility toggles.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && update {
				return fmt.Errorf("choose either --overwrite or --update")
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			return generateConfig(cmd, out, overwrite, update)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config (keeps a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "merge new defaults into an existing config (keeps a backup)")
	return cmd
}

func generateConfig(cmd *cobra.Command, out string, overwrite, update bool) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o700); err != nil {
		return err
	}

	existing, readErr := os.ReadFile(out)
	exists := readErr == nil
	if exists && !overwrite && !update {
		return fmt.Errorf("%s already exists; --update merges new option defaults, --overwrite replaces it", out)
	}

	content := config.RenderDefaultTOML()
	fresh := true
	if update && exists {
		merged, changed := config.UpdateTOML(string(existing))
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already has every option\n", out)
			return nil
		}
		content = merged
		fresh = false
	}

	if exists {
		backup, err := backupConfig(out, existing)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "kept previous config as %s\n", backup)
	}
	if err := os.WriteFile(out, []byte(content), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	if fresh {
		fmt.Fprintln(cmd.OutOrStdout(), "Point source at your projects.json (path or http(s) URL), then run: folio validate")
	}
	return nil
}

func backupConfig(path string, data []byte) (string, error) {
	backup := path + ".bak"
	if _, err := os.Stat(backup); err == nil {
		backup = fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	}
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return "", err
	}
	return backup, nil
}
