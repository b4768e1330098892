package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/config"
	httpx "github.com/mehmetresatdemir/cryptonbets-admin/internal/http"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/memory"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/postgres"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/repositories"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage: Postgres when a DSN is configured, in-memory otherwise.
	var repo repositories.ResourceRepository
	if cfg.DB.DSN != "" {
		pool := postgres.MustOpen(ctx, cfg.DB.DSN)
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
		repo = postgres.NewResourceRepository(pool)
		log.Info().Msg("using postgres store")
	} else {
		repo = memory.New()
		log.Info().Msg("using in-memory store")
	}

	r := httpx.NewRouter(cfg, repo)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("admin API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
