package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrJJimenez/awwjobs/internal/network"
	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/rs/zerolog"
)

const (
	codeSourceUnreachable = "source_unreachable"
	codeNotFound          = "not_found"
	codeScrapeFailed      = "scrape_failed"
	codeValidation        = "validation_error"
	codeMethodNotAllowed  = "method_not_allowed"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, APIError{
		Error:     code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	})
}

// writePipelineError maps a pipeline failure to its response. The underlying
// error is logged and never echoed to the client.
func writePipelineError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	var (
		notFound *scraper.NotFoundError
		netErr   *network.NetworkError
	)
	switch {
	case errors.As(err, &notFound):
		WriteError(w, r, http.StatusNotFound, codeNotFound, fmt.Sprintf("Job not found: %s", notFound.ID))
	case errors.As(err, &netErr):
		logger.Warn().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("source unreachable")
		WriteError(w, r, http.StatusServiceUnavailable, codeSourceUnreachable, "The job source could not be reached.")
	default:
		logger.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("scrape failed")
		WriteError(w, r, http.StatusInternalServerError, codeScrapeFailed, "Scraping the job source failed.")
	}
}
