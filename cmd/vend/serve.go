package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "vending-machine/internal/adapter/http/handler"
	"vending-machine/internal/adapter/storage/csvfile"
	redisStorage "vending-machine/internal/adapter/storage/redis"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only status server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	a.log.Info().
		Str("addr", a.cfg.Server.Addr()).
		Msg("Starting vending machine status server")

	// The session process owns the file; re-read it whenever it changes.
	reader := csvfile.NewReader(a.cfg.Inventory, a.log)
	if err := reader.Load(ctx); err != nil {
		return err
	}
	checkers := []ports.HealthChecker{reader}

	// Sale ledger, health only
	if a.cfg.Database.Enabled {
		_, pgHealth, closeLedger, err := a.openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()
		checkers = append(checkers, pgHealth)
	}

	// Redis carries the rate limit counters
	var rateLimitStore *redisStorage.RateLimitStore
	if a.cfg.Redis.Enabled {
		client, err := a.openRedis(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
		checkers = append(checkers, redisStorage.NewHealthCheck(client))
		if a.cfg.Server.RateLimit > 0 {
			rateLimitStore = redisStorage.NewRateLimitStore(client)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Inventory:      reader,
		Coins:          domain.NewCoinCatalog().All(),
		HealthCheckers: checkers,
		RateLimitStore: rateLimitStore,
		RateLimit:      a.cfg.Server.RateLimit,
		Logger:         a.log,
	})

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	a.log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	a.log.Info().Msg("Server exited")
	return nil
}
