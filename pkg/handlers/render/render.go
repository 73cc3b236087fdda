// Package render holds the JSON response helpers shared by all handlers.
package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/services/credentials"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, api.Error{Error: msg})
}

// UpstreamError maps aggregation failures onto the HTTP contract: a missing
// binding is a precondition failure, anything else an upstream failure. The
// raw error text never reaches the response body.
func UpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	if errors.Is(err, credentials.ErrNotConnected) {
		Error(w, r, http.StatusPreconditionFailed, credentials.ErrNotConnected.Error())
		return
	}

	logger.Error().Err(err).Msg("upstream AWS call failed")
	Error(w, r, http.StatusInternalServerError, "upstream AWS request failed")
}
