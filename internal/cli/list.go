package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/filter"
	"folio/internal/present"
)

func newListCmd() *cobra.Command {
	var filters FilterOpts
	var outputMode string
	var noHeaders bool
	var fuzzyPattern string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			visible := filter.Apply(cat.Projects, filters.query(app.Cfg))
			if fuzzyPattern != "" {
				visible = filter.Fuzzy(visible, fuzzyPattern)
			}

			opts := present.Options{
				Mode:        mode,
				Headers:     !noHeaders,
				PrettyStyle: app.Cfg.GetString("pretty.style"),
				PrettyWidth: app.Cfg.GetInt("pretty.width"),
			}
			if mode == present.ModeTUI {
				return present.RenderProjects(cmd.Context(), cmd.OutOrStdout(), visible, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderProjects(cmd.Context(), w, visible, opts)
			})
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|pretty|json|ndjson|tui")
	cmd.Flags().StringVar(&fuzzyPattern, "fuzzy", "", "fuzzy-rank projects by title")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "pretty", "json", "ndjson", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	registerTagCompletion(cmd, "tag-any")
	registerTagCompletion(cmd, "tag-all")
	return cmd
}
