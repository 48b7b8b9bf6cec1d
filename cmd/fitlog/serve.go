package fitlog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/fitlog/internal/config"
	"github.com/saadjs/fitlog/internal/httpapi"
	"github.com/saadjs/fitlog/internal/provider/fitbit"
	"github.com/saadjs/fitlog/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return withStore(func(cfg *config.Config, st *store.Store, logger *zap.Logger) error {
			if servePort != 0 {
				cfg.Server.Port = servePort
			}
			return serve(ctx, cfg, st, logger)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides PORT)")
}

func newFitbitClient(cfg *config.Config, logger *zap.Logger) *fitbit.Client {
	if !cfg.FitbitConfigured() {
		logger.Info("fitbit credentials not set, integration disabled")
		return nil
	}
	tokens := store.NewTokenStore(cfg.Paths().TokensFile(), logger)
	return fitbit.NewClient(fitbit.Config{
		ClientID:     cfg.Fitbit.ClientID,
		ClientSecret: cfg.Fitbit.ClientSecret,
		RedirectURL:  cfg.Fitbit.RedirectURI,
		Timeout:      cfg.Fitbit.Timeout,
	}, tokens, logger)
}

func serve(ctx context.Context, cfg *config.Config, st *store.Store, logger *zap.Logger) error {
	api := httpapi.New(httpapi.Options{
		Store:       st,
		Fitbit:      newFitbitClient(cfg, logger),
		Logger:      logger,
		CORSOrigins: cfg.Origins(),
	})
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      api.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("data", st.Path()))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
