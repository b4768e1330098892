package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if status >= 500 {
		log.Error().Int("status", status).Str("error", msg).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
