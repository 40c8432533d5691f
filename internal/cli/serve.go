package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Long:  "Serve the project grid, per-project pages, feeds, and a JSON API directly from the loaded catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if listen != "" {
				app.Cfg.Set("http_addr", listen)
			}
			if err := config.CheckConfigValidity(app.Cfg); err != nil {
				return err
			}
			cat, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			addr := app.Cfg.GetString("http_addr")
			if addr == "" {
				addr = ":8080"
			}
			srv, err := server.New(app.Cfg, cat, app.Log)
			if err != nil {
				return err
			}
			httpSrv := &http.Server{Addr: addr, Handler: srv.Router()}
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio server listening on %s\n", addr)
			app.Log.Printf("serving %d projects from %s on %s", len(cat.Projects), cat.Location, addr)
			return httpSrv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (override config http_addr)")
	return cmd
}
