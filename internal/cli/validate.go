package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/config"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and project catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if err := config.CheckConfigValidity(app.Cfg); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			hidden := 0
			for _, p := range cat.Projects {
				if p.Hidden() {
					hidden++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d projects (%d hidden by default) from %s\n",
				len(cat.Projects), hidden, cat.Location)
			return nil
		},
	}
	return cmd
}
