package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/config"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/http/handlers"
	middlewarex "github.com/mehmetresatdemir/cryptonbets-admin/internal/http/middleware"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/repositories"
)

// Entities managed by the admin console.
var Entities = []string{
	"banners", "news", "notifications", "tickets", "email-templates", "users",
}

// NewRouter creates the admin API router.
func NewRouter(cfg config.Cfg, repo repositories.ResourceRepository) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Admin resource routes (protected by bearer auth)
	r.Route("/api/admin/{entity}", func(r chi.Router) {
		r.Use(middlewarex.BearerAuth(cfg.API.AdminToken))
		r.Use(middlewarex.KnownEntity(Entities))

		r.Get("/", handlers.ListResources(repo))
		r.Post("/", handlers.CreateResource(repo))
		r.Post("/bulk", handlers.BulkAction(repo))
		r.Put("/{id}", handlers.UpdateResource(repo))
		r.Delete("/{id}", handlers.DeleteResource(repo))
	})

	return r
}
