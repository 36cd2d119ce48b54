package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nurdn/binarytalk-be/internal/apperr"
)

// writeJSON writes payload wrapped in the success envelope.
func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": payload}); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError translates an error into the `{"errors": msg}` envelope.
// Unclassified errors become a 500 with a generic message; the cause is
// logged, never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Unhandled request error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"errors": apperr.MessageOf(err)})
}
