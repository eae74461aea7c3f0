package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frudas24/monitorshape/internal/app"
	"github.com/frudas24/monitorshape/internal/config"
	"github.com/frudas24/monitorshape/internal/logging"
	"github.com/frudas24/monitorshape/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// newServeCmd runs the HTTP and websocket validation service.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve monitor record validation over HTTP and websocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	flags := cmd.Flags()
	flags.String("listen", "", "Listen address (default 127.0.0.1:8790)")
	flags.String("password", "", "Shared password required from clients")
	flags.Bool("strict", false, "Check value constraints unless a request overrides it")
	return cmd
}

// serve wires the application and blocks until ctx is cancelled or the server fails.
func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	sess := session.New(cfg.Password)
	logStartup(cfg, sess, logger)

	appInstance, err := app.New(cfg, sess, logger)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grp, groupCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutMs)*time.Millisecond)
		defer cancel()
		appInstance.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
		return nil
	})

	if err := grp.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// logStartup reports the effective settings.
func logStartup(cfg config.Config, sess *session.Session, logger *zap.Logger) {
	logger.Info("monitorshape starting",
		zap.String("version", version),
		zap.String("listen", cfg.ListenAddr),
		zap.Bool("auth", sess.Enabled()),
		zap.Bool("strict", cfg.Strict),
		zap.Int("ws_rate_per_sec", cfg.WSRatePerSec),
		zap.Int("ws_burst", cfg.WSBurst))
}
