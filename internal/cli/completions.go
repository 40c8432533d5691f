package cli

import (
	"os"

	"github.com/spf13/cobra"

	"folio/internal/filter"
	"folio/internal/util"
	"folio/pkg/api"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate bash",
		Short: "Generate Bash completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenBashCompletion(os.Stdout)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "generate zsh",
		Short: "Generate Zsh completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenZshCompletion(os.Stdout)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "generate fish",
		Short: "Generate Fish completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		},
	})

	return cmd
}

func registerTagCompletion(cmd *cobra.Command, flag string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		app := getApp(cmd)
		cat, err := app.Catalog(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names, _ := filter.Tags(cat.Projects, api.Query{})
		return util.ScoreCompletions(toComplete, names, 20), cobra.ShellCompDirectiveNoFileComp
	})
}
