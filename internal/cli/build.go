package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/site"
)

func newBuildCmd() *cobra.Command {
	var filters FilterOpts
	var outputDir string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the static site",
		Long:  "Render the index grid, per-project pages, stylesheet, RSS and Atom feeds, and a build manifest into the output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = app.Cfg.GetString("output_dir")
			}

			manifest, err := site.Build(cmd.Context(), config.SiteFromViper(app.Cfg), cat.Projects, site.BuildOptions{
				OutputDir:    outputDir,
				Source:       cat.Location,
				Query:        filters.query(app.Cfg),
				FeedMaxItems: app.Cfg.GetInt("feed.max_items"),
			})
			if err != nil {
				return err
			}

			app.Log.Printf("built %d artifacts into %s", len(manifest.Artifacts), outputDir)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(manifest.Artifacts), outputDir)
			return nil
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory to write the site into (default: output_dir config)")
	registerTagCompletion(cmd, "tag-any")
	registerTagCompletion(cmd, "tag-all")
	return cmd
}
