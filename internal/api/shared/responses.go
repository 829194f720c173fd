// Package shared holds the response envelope and request-context helpers
// used by every handler.
package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quickai/quickai-api/internal/redact"
)

// FailureResponse is the unsuccessful envelope. Business declines (quota,
// upgrade) use it with a 200 status; faults use it with 4xx/5xx. Error
// carries the upstream provider's detail when one exists; it is already
// normalized by the adapter, never a raw internal error string.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithSuccess writes a 200 envelope with success:true plus the given
// payload fields. Field names vary per route (content, imageUrl, secure_url,
// creations), so the payload is assembled by the handler.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, fields map[string]interface{}) {
	body := make(map[string]interface{}, len(fields)+1)
	body["success"] = true
	for k, v := range fields {
		body[k] = v
	}
	RespondWithJSON(w, r, http.StatusOK, body)
}

// RespondWithFailure writes an unsuccessful envelope with the given status
// and user-facing message, tagging it with the request's trace ID.
func RespondWithFailure(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithFailureAndLog(w, r, status, message, nil)
}

// RespondWithFailureAndLog writes an unsuccessful envelope and logs the
// underlying error (redacted) for correlation. 5xx responses log at ERROR,
// everything else at DEBUG. The raw error never reaches the client.
func RespondWithFailureAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	respondWithFailure(w, r, status, userMessage, "", err)
}

// RespondWithFailureDetail writes an unsuccessful envelope whose optional
// error field carries the normalized upstream detail, and logs the
// underlying error like RespondWithFailureAndLog.
func RespondWithFailureDetail(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	detail string,
	err error,
) {
	respondWithFailure(w, r, status, userMessage, detail, err)
}

func respondWithFailure(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	detail string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API failure response", logAttrs...)

	RespondWithJSON(w, r, status, FailureResponse{
		Success: false,
		Message: userMessage,
		Error:   detail,
		TraceID: traceID,
	})
}
