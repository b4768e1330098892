// admindemo drives a scripted banner-management session against a
// running admin API, exercising the full controller surface: list,
// search, create, edit, selection and bulk actions.
package main

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/config"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/banner"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/listctl"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/pages"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	session := api.NewSession(cfg.API.AdminToken)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.TimeoutSec, session)

	waitForAPI(ctx, client)

	ctrl, err := pages.Banners(pages.Deps{
		Client:   client,
		PageSize: cfg.List.DefaultPageSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("controller setup failed")
	}
	defer ctrl.Close()

	if err := ctrl.List(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial list failed")
	}
	report(ctrl, "initial list")

	// Create a banner through the form buffer
	ctrl.OpenCreate()
	ctrl.UpdateDraft(func(d *banner.Draft) {
		d.Title = "Welcome Bonus"
		d.ImageURL = "https://cdn.example.com/banners/welcome.png"
		d.LinkURL = "https://example.com/promotions/welcome"
		d.Status = banner.StatusActive
	})
	if fieldErrs, err := ctrl.Submit(ctx); err != nil {
		log.Fatal().Err(err).Interface("fields", fieldErrs).Msg("create failed")
	}
	report(ctrl, "after create")

	// Search and filter
	if err := ctrl.SetSearch(ctx, "welcome"); err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
	report(ctrl, "after search")
	if err := ctrl.SetFilter(ctx, "status", banner.StatusActive); err != nil {
		log.Fatal().Err(err).Msg("filter failed")
	}
	report(ctrl, "after status filter")

	// Bulk deactivate everything on the page
	ctrl.SelectAll()
	result, err := ctrl.BulkAct(ctx, "deactivate")
	if err != nil {
		log.Fatal().Err(err).Msg("bulk action failed")
	}
	log.Info().
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Msg("bulk deactivate done")

	if err := ctrl.ClearFilter(ctx, "status"); err != nil {
		log.Fatal().Err(err).Msg("clear filter failed")
	}
	report(ctrl, "final state")
}

// waitForAPI probes /health until the server answers. The controller
// itself never retries; only this startup probe does.
func waitForAPI(ctx context.Context, client *api.Client) {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	err := backoff.Retry(func() error {
		var health struct {
			Status string `json:"status"`
		}
		return client.GetJSON(ctx, "/health", nil, &health)
	}, policy)
	if err != nil {
		log.Fatal().Err(err).Msg("admin API unreachable")
	}
	log.Info().Msg("admin API is up")
}

func report(ctrl *listctl.Controller[banner.Banner, banner.Draft], label string) {
	snap := ctrl.Snapshot()
	log.Info().
		Str("step", label).
		Int("items", len(snap.List.Result.Items)).
		Int("total", snap.List.Result.TotalItems).
		Int("pages", snap.List.Result.TotalPages).
		Int("selected", len(snap.Selected)).
		Msg("list state")
}
