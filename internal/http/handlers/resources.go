package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/store/repositories"
)

// reservedParams are list query parameters that are not filter
// dimensions.
var reservedParams = map[string]struct{}{
	"page": {}, "limit": {}, "search": {}, "sortBy": {}, "sortOrder": {},
}

// bulk actions the admin API supports.
const (
	ActionDelete     = "delete"
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
)

// ListResources serves GET /api/admin/{entity}.
func ListResources(repo repositories.ResourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := chi.URLParam(r, "entity")
		params := listParams(r)

		page, err := repo.List(r.Context(), entity, params)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list "+entity)
			return
		}

		writeJSON(w, http.StatusOK, api.ListEnvelope[repositories.Document]{
			Data:  page.Items,
			Stats: page.Stats,
			Pagination: api.Pagination{
				CurrentPage: params.Page,
				TotalPages:  page.TotalPages,
				TotalItems:  page.TotalItems,
			},
		})
	}
}

// CreateResource serves POST /api/admin/{entity}.
func CreateResource(repo repositories.ResourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := chi.URLParam(r, "entity")

		var data repositories.Document
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(data) == 0 {
			writeError(w, http.StatusBadRequest, "empty payload")
			return
		}

		doc, err := repo.Create(r.Context(), entity, data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create "+entity)
			return
		}
		log.Info().Str("entity", entity).Interface("id", doc["id"]).Msg("resource created")
		writeJSON(w, http.StatusCreated, doc)
	}
}

// UpdateResource serves PUT /api/admin/{entity}/{id}.
func UpdateResource(repo repositories.ResourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := chi.URLParam(r, "entity")
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var data repositories.Document
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		doc, err := repo.Update(r.Context(), entity, id, data)
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, entity+" not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update "+entity)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// DeleteResource serves DELETE /api/admin/{entity}/{id}. A missing id
// is reported as an error, never swallowed as success.
func DeleteResource(repo repositories.ResourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := chi.URLParam(r, "entity")
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		err = repo.Delete(r.Context(), entity, id)
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, entity+" not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to delete "+entity)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
	}
}

// BulkAction serves POST /api/admin/{entity}/bulk with per-id outcomes,
// so partial failure is visible to the client instead of being folded
// into the HTTP status.
func BulkAction(repo repositories.ResourceRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := chi.URLParam(r, "entity")

		var req api.BulkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(req.IDs) == 0 {
			writeError(w, http.StatusBadRequest, "ids are required")
			return
		}

		var statusChange string
		switch req.Action {
		case ActionDelete:
		case ActionActivate:
			statusChange = "active"
		case ActionDeactivate:
			statusChange = "inactive"
		default:
			writeError(w, http.StatusBadRequest, "unsupported action: "+req.Action)
			return
		}

		result := api.BulkResult{Action: req.Action, Succeeded: []int64{}}
		for _, id := range req.IDs {
			var err error
			if req.Action == ActionDelete {
				err = repo.Delete(r.Context(), entity, id)
			} else {
				_, err = repo.Update(r.Context(), entity, id, repositories.Document{"status": statusChange})
			}
			if err != nil {
				result.Failed = append(result.Failed, api.BulkFailure{ID: id, Error: err.Error()})
				continue
			}
			result.Succeeded = append(result.Succeeded, id)
		}

		log.Info().
			Str("entity", entity).
			Str("action", req.Action).
			Str("batch_id", req.BatchID).
			Int("succeeded", len(result.Succeeded)).
			Int("failed", len(result.Failed)).
			Msg("bulk action processed")
		writeJSON(w, http.StatusOK, result)
	}
}

// listParams maps the request's query string onto repository list
// parameters. Unreserved parameters become filter dimensions.
func listParams(r *http.Request) repositories.ListParams {
	q := r.URL.Query()
	params := repositories.ListParams{
		Search:  q.Get("search"),
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortOrder"),
		Filters: map[string]string{},
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		params.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		params.Limit = n
	}
	for k, vs := range q {
		if _, reserved := reservedParams[k]; reserved || len(vs) == 0 {
			continue
		}
		params.Filters[k] = vs[0]
	}
	return params
}
