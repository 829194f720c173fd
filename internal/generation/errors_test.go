package generation

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderError(t *testing.T) {
	t.Parallel()

	t.Run("defaults status to 500", func(t *testing.T) {
		t.Parallel()
		pe := NewProviderError(0, "generation failed", "", nil)
		assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
	})

	t.Run("keeps transport status", func(t *testing.T) {
		t.Parallel()
		pe := NewProviderError(http.StatusTooManyRequests, "rate limited", "quota exceeded", nil)
		assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
		assert.Contains(t, pe.Error(), "quota exceeded")
	})

	t.Run("unwraps underlying error", func(t *testing.T) {
		t.Parallel()
		underlying := errors.New("connection refused")
		pe := NewProviderError(0, "generation failed", "", underlying)
		assert.ErrorIs(t, pe, underlying)
	})
}

func TestAsProviderError(t *testing.T) {
	t.Parallel()

	pe := NewProviderError(http.StatusBadGateway, "upstream down", "", nil)
	wrapped := fmt.Errorf("invoking adapter: %w", pe)

	got, ok := AsProviderError(wrapped)
	require.True(t, ok)
	assert.Equal(t, pe, got)

	_, ok = AsProviderError(errors.New("plain"))
	assert.False(t, ok)
}
