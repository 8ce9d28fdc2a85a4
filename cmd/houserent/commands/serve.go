package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/config"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/middleware"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/router"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var useMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API on APP_PORT.

Examples:
  houserent serve              # PostgreSQL storage, migrations run on start
  houserent serve --memory     # In-memory storage for local experiments`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if useMemory {
			if err := os.Setenv("STORAGE_DRIVER", config.StorageDriverMemory); err != nil {
				return err
			}
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runServe(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&useMemory, "memory", false, "Keep all data in process memory")
}

func runServe(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting house rent API...", "env", cfg.AppEnv, "storage", cfg.StorageDriver)

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	notifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}
	adCache, closeCache := newCache(ctx, cfg)
	defer closeCache()

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, cfg.GetRateLimitWindow())
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router.New(newHandlerManager(cfg, st, notifier, adCache), limiter),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
