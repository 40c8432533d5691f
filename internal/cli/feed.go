package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/feed"
)

func newFeedCmd() *cobra.Command {
	var atomFormat bool
	var outFile string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Generate the RSS or Atom feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			siteMeta := config.SiteFromViper(app.Cfg)
			now := time.Now().UTC()
			items := feed.Items(siteMeta, cat.Projects, app.Cfg.GetInt("feed.max_items"), now)

			var doc string
			if atomFormat {
				doc = feed.BuildAtom(siteMeta, items, now)
			} else {
				doc = feed.BuildRSS(siteMeta, items, now)
			}

			if outFile != "" {
				if err := atomic.WriteFile(outFile, bytes.NewReader([]byte(doc))); err != nil {
					return fmt.Errorf("write feed: %w", err)
				}
				app.Log.Printf("wrote feed to %s", outFile)
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		},
	}
	cmd.Flags().BoolVar(&atomFormat, "atom", false, "emit Atom instead of RSS 2.0")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the feed to a file instead of stdout")
	return cmd
}
