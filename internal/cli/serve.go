package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kittclouds/moodreel/internal/api"
	"github.com/kittclouds/moodreel/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Load the catalog, build the index and serve the recommendation API.

A catalog that fails to load stops the server before it listens.

Example:
  MOODREEL_SERVER_PORT=9000 moodreel serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	loader, idx, err := a.buildIndex()
	if err != nil {
		return err
	}

	history, err := a.openHistory()
	if err != nil {
		return err
	}
	defer history.Close()

	var similar api.SimilarIndex
	if a.cfg.Similar.Enabled {
		vs, err := a.similarIndex(idx)
		if err != nil {
			return err
		}
		similar = vs
	}

	srv := api.NewServer(loader, history, similar, api.Options{
		DefaultTopN:  a.cfg.Recommend.DefaultTopN,
		MaxTopN:      a.cfg.Recommend.MaxTopN,
		HistoryLimit: a.cfg.History.Limit,
		Neighbours:   a.cfg.Similar.Neighbours,
		CORSOrigins:  a.cfg.Server.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           srv.Routes(),
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", httpServer.Addr).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
