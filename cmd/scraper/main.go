package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devicehub-go/pkg/api"
	"devicehub-go/pkg/config"
	"devicehub-go/pkg/gsmarena"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fetcher := gsmarena.NewFetcher(cfg.Scraper.RatePerSecond, cfg.Scraper.UserAgent, 20*time.Second)
	router := api.NewScraperRouter(fetcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Scraper.Host, cfg.Scraper.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("scraper service starting on %s (%.2f req/s upstream)", srv.Addr, cfg.Scraper.RatePerSecond)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down scraper service...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("scraper service: %v", err)
	}
	log.Println("scraper service exited")
}
