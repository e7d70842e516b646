package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/api"
	"github.com/axellelanca/shortlinks/internal/monitor"
)

// RunServerCmd starts the HTTP API.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Start the URL shortener HTTP API",
	Long: `Opens and migrates the configured database, starts the optional
reachability monitor, then serves the HTTP API until SIGINT or SIGTERM.`,
	RunE: func(c *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx)
	},
}

func run(ctx context.Context) error {
	cfg, log := cmd.Cfg, cmd.Log

	app, err := cmd.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	if cfg.Monitor.Enabled {
		checker := monitor.NewHTTPChecker(cfg.ProbeTimeout(), log)
		urlMonitor := monitor.NewURLMonitor(app.LinkRepo, checker, cfg.MonitorInterval(), log)
		go urlMonitor.Start(ctx)
	}

	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(api.RequestID(), api.Logger(log), gin.Recovery())
	api.SetupRoutes(router, app.LinkService, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_url", cfg.Server.BaseURL).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
