package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithSuccess(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	RespondWithSuccess(rr, req, map[string]interface{}{"content": "hello"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "hello", body["content"])
}

func TestRespondWithFailure(t *testing.T) {
	t.Parallel()

	t.Run("business decline keeps a 200 status", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		RespondWithFailure(rr, req, http.StatusOK, "Limit reached, upgrade to continue.")

		assert.Equal(t, http.StatusOK, rr.Code)
		var body FailureResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Limit reached, upgrade to continue.", body.Message)
	})

	t.Run("carries upstream detail in the error field", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		RespondWithFailureDetail(rr, req, http.StatusBadGateway,
			"image generation failed", `{"error":"quota exhausted"}`, nil)

		var body FailureResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "image generation failed", body.Message)
		assert.Equal(t, `{"error":"quota exhausted"}`, body.Error)
	})

	t.Run("includes the trace ID when present", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(SetTraceID(req.Context()))

		RespondWithFailure(rr, req, http.StatusBadRequest, "bad input")

		var body FailureResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
		assert.Len(t, body.TraceID, 32)
	})
}

func TestUserContextRoundTrip(t *testing.T) {
	t.Parallel()

	_, ok := UserFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
