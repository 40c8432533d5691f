package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"folio/internal/filter"
)

func newTagsCmd() *cobra.Command {
	var filters FilterOpts
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with project counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			names, counts := filter.Tags(cat.Projects, filters.query(app.Cfg))

			if asJSON {
				type tagCount struct {
					Tag   string `json:"tag"`
					Count int    `json:"count"`
				}
				out := make([]tagCount, 0, len(names))
				for _, n := range names {
					out = append(out, tagCount{Tag: n, Count: counts[n]})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(out)
			}

			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
				fmt.Fprintln(tw, "tag\tcount")
				for _, n := range names {
					fmt.Fprintf(tw, "%s\t%d\n", n, counts[n])
				}
				return tw.Flush()
			})
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}
