package api

import (
	"errors"
	"net/http"

	"github.com/quickai/quickai-api/internal/api/shared"
	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/service"
)

// genericFailureMessage is the sanitized message for unexpected faults. The
// underlying error is logged, never sent to the client.
const genericFailureMessage = "Something went wrong, please try again."

// handleServiceError maps a creation-service error to the response envelope.
//
// Mapping:
//   - quota declines: 200 with success:false and the decline message
//   - input validation sentinels: 400 with the sentinel message
//   - provider faults: the adapter's status code (default 500), with the
//     normalized upstream detail in the envelope's error field
//   - persistence and usage faults: 500 with a sanitized message
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if denied, ok := service.AsQuotaDenied(err); ok {
		shared.RespondWithFailure(w, r, http.StatusOK, denied.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmptyPrompt),
		errors.Is(err, service.ErrInvalidLength),
		errors.Is(err, service.ErrEmptyImagePath),
		errors.Is(err, service.ErrEmptyObject):
		shared.RespondWithFailure(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if providerErr, ok := generation.AsProviderError(err); ok {
		shared.RespondWithFailureDetail(w, r, providerErr.StatusCode, providerErr.Message, providerErr.Detail, err)
		return
	}

	shared.RespondWithFailureAndLog(w, r, http.StatusInternalServerError, genericFailureMessage, err)
}
