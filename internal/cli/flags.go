package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"folio/pkg/api"
)

// FilterOpts carries the shared filter/visibility flags.
type FilterOpts struct {
	Text     string
	TagsAny  string
	TagsAll  string
	Drafts   bool
	Archived bool
	Private  bool
}

func addFilterFlags(cmd *cobra.Command, opts *FilterOpts) {
	cmd.Flags().StringVar(&opts.Text, "filter", "", "free-text filter over id, title, tags, description")
	cmd.Flags().StringVar(&opts.TagsAny, "tag-any", "", "comma-separated tags; match any")
	cmd.Flags().StringVar(&opts.TagsAll, "tag-all", "", "comma-separated tags; match all")
	cmd.Flags().BoolVar(&opts.Drafts, "drafts", false, "include draft projects")
	cmd.Flags().BoolVar(&opts.Archived, "archived", false, "include archived projects")
	cmd.Flags().BoolVar(&opts.Private, "private", false, "include private projects")
}

// query merges flags with the show.* config defaults. A flag only
// widens visibility; config can already have a toggle on.
func (o FilterOpts) query(cfg *viper.Viper) api.Query {
	return api.Query{
		Text:         strings.TrimSpace(o.Text),
		TagsAny:      splitCSV(o.TagsAny),
		TagsAll:      splitCSV(o.TagsAll),
		ShowDrafts:   o.Drafts || cfg.GetBool("show.drafts"),
		ShowArchived: o.Archived || cfg.GetBool("show.archived"),
		ShowPrivate:  o.Private || cfg.GetBool("show.private"),
	}
}

// splitCSV splits a comma-separated list into trimmed non-empty strings.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
