package wire

import (
	"context"
	"log"
	"os"

	"github.com/spf13/viper"

	"folio/internal/config"
	"folio/internal/source"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg *viper.Viper
	Log *log.Logger

	catalog *source.Catalog
}

// BuildApp wires dependencies with the provided config. The catalog is
// loaded lazily: commands that never touch project data (config
// generate, completion) must work without a catalog file present.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	logger := log.New(os.Stderr, "folio ", log.LstdFlags)
	return &App{Cfg: cfg, Log: logger}, nil
}

// Catalog loads the project catalog on first use and memoizes it for
// the rest of the invocation.
func (a *App) Catalog(ctx context.Context) (*source.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	cat, err := source.Load(ctx, a.Cfg.GetString("source"), config.FetchTimeout(a.Cfg))
	if err != nil {
		return nil, err
	}
	a.catalog = cat
	return cat, nil
}
