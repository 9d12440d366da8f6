package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicing/blob"
	"github.com/satheeshds/invoicing/config"
	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/handlers"
	"github.com/satheeshds/invoicing/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Example: `  # Serve on the configured port
  invoicing serve

  # Serve on another port against a local MongoDB
  MONGO_URI=mongodb://localhost:27017 invoicing serve --port 9000

  # Try the API without MongoDB
  DATABASE_DRIVER=memory invoicing serve`,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(c *cobra.Command) {
	c.Flags().Int("port", 0, "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logging.WithComponent("serve")
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	// Missing indexes slow queries down but do not stop the API.
	if err := store.Migrate(ctx); err != nil {
		log.Warn().Err(err).Msg("database migrations failed")
	}

	h := handlers.New(store, newUploader(cfg.Cloudinary), cfg.Server.MaxUploadBytes)
	if err := h.Invoices().SyncSequence(ctx); err != nil {
		return fmt.Errorf("syncing invoice numbers: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handlers.NewRouter(h, cfg.Security),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// newUploader returns the Cloudinary uploader behind a circuit breaker, or
// an uploader that rejects images when Cloudinary is not configured.
func newUploader(c config.CloudinaryConfig) blob.Uploader {
	if !c.Enabled() {
		logging.Warn().Msg("Cloudinary credentials not set, product image uploads are disabled")
		return blob.Disabled{}
	}
	cld, err := blob.NewCloudinary(c)
	if err != nil {
		logging.Error().Err(err).Msg("Cloudinary configuration rejected, product image uploads are disabled")
		return blob.Disabled{}
	}
	return blob.NewBreaker(cld, blob.DefaultBreakerConfig())
}
