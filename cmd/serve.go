package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"tripagent/database"
	"tripagent/handlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(ctx, cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		defer database.Close()

		flights, hotels, places := cat.Counts()
		log.Printf("✅ Catalog loaded from %s: %d flights, %d hotels, %d places",
			cfg.Catalog.Source, flights, hotels, places)

		if cfg.HTTP.GinMode == gin.ReleaseMode {
			gin.SetMode(gin.ReleaseMode)
		}

		h := handlers.New(newPlanner(cfg, cat), cat, newAIClient(cfg), cfg.CurrencySymbol)
		router, err := handlers.NewRouter(h, cfg.HTTP.AllowedOrigins(), cfg.HTTP.Proxies())
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:    ":" + cfg.HTTP.Port,
			Handler: router,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("🚀 Trip agent starting on port %s", cfg.HTTP.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("failed to start server: %w", err)
		case <-ctx.Done():
		}

		log.Println("⏳ Shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Println("✅ Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
