package middlewarex

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// KnownEntity rejects requests for entities the admin console does not
// manage, before any handler runs.
func KnownEntity(entities []string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		known[e] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := known[chi.URLParam(r, "entity")]; !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown entity"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
