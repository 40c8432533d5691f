package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"folio/internal/present"
	"folio/internal/util"
)

func newShowCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			p, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			if outputMode == "" {
				// Pretty on a terminal, plain when piped.
				outputMode = "plain"
				if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
					outputMode = "pretty"
				}
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			opts := present.Options{
				Mode:        mode,
				Headers:     true,
				PrettyStyle: app.Cfg.GetString("pretty.style"),
				PrettyWidth: prettyWidth(cmd.OutOrStdout(), app.Cfg.GetInt("pretty.width")),
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderProject(cmd.Context(), w, p, opts)
			})
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "", "output mode: plain|pretty|json|ndjson (default: pretty on a TTY)")
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		app := getApp(cmd)
		cat, err := app.Catalog(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return util.ScoreCompletions(toComplete, cat.IDs(), 20), cobra.ShellCompDirectiveNoFileComp
	}
	return cmd
}

// prettyWidth picks the terminal width when the output is a TTY,
// otherwise the configured wrap width.
func prettyWidth(out io.Writer, fallback int) int {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if fallback <= 0 {
		return 80
	}
	return fallback
}
