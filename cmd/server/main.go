package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solsync/solsync/internal/api"
	"github.com/solsync/solsync/internal/api/handlers"
	"github.com/solsync/solsync/internal/config"
	"github.com/solsync/solsync/internal/storage"
	"github.com/solsync/solsync/internal/utils"
)

// @title SolSync transfer API
// @version 1.0
// @description One-time upload/download pairs backed by an R2 bucket.
func main() {
	cfg := config.Load()

	store := storage.NewR2Store(cfg.R2)
	h := handlers.New(cfg, store, utils.SecureTokenGenerator{})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(cfg, h),
		// Header timeout only; uploads and downloads may legitimately stream
		// for a long time.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting SolSync server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
