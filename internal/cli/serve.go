package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/internal/api"
	"github.com/opendata-yamanashi/yama-api/internal/engine"
	"github.com/opendata-yamanashi/yama-api/internal/scrape"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var site, listen, rootPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table over HTTP",
		Long: `Serve loads the site's table (downloading it on first run) and answers
queries over HTTP. If the table cannot be loaded the server still starts and
data routes answer 404 until a reload succeeds.

Send SIGHUP to reload the cached page without restarting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}
			if cmd.Flags().Changed("root-path") {
				a.cfg.RootPath = rootPath
			}
			return a.runServe(cmd.Context(), site)
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "site name from the registry (default: configured site)")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: config listen)")
	cmd.Flags().StringVar(&rootPath, "root-path", "", "path prefix for data routes (default: config root_path)")
	return cmd
}

func (a *app) runServe(ctx context.Context, site string) error {
	url, err := a.siteURL(site)
	if err != nil {
		return err
	}

	loader := a.loader()
	store := engine.NewStore(nil)
	reloadTable(ctx, loader, store, url)

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(engine.New(store, a.cfg.MaxCount), api.Options{
		RootPath:   a.cfg.RootPath,
		CORSOrigin: a.cfg.CORSOrigin,
		RateLimit:  a.cfg.RateLimit,
		Logger:     a.logger,
	})
	httpSrv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Listen, "root_path", api.NormalizeRootPath(a.cfg.RootPath), "site", url)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	for {
		select {
		case <-hup:
			a.logger.Info("reload requested")
			reloadTable(ctx, loader, store, url)
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		}
	}
}

// reloadTable loads url through the page cache and publishes the result. On
// failure the current snapshot, possibly none, stays in place.
func reloadTable(ctx context.Context, loader *scrape.Loader, store *engine.Store, url string) bool {
	t, err := loader.Load(ctx, url)
	if err != nil {
		loader.Logger.Error("table unavailable", "url", url, "error", err)
		return false
	}
	if old := store.Swap(t); old != nil {
		loader.Logger.Info("table replaced", "old_rows", old.Len(), "rows", t.Len())
	}
	return true
}
