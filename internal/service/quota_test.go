package service

import (
	"testing"

	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/stretchr/testify/assert"
)

func TestAdmit(t *testing.T) {
	t.Parallel()

	freeUser := func(usage int) *identity.User {
		return &identity.User{ID: "user_free", Plan: domain.PlanFree, FreeUsage: usage}
	}
	premiumUser := func(usage int) *identity.User {
		return &identity.User{ID: "user_prem", Plan: domain.PlanPremium, FreeUsage: usage}
	}

	allCapabilities := []domain.Capability{
		domain.CapabilityArticle,
		domain.CapabilityEmail,
		domain.CapabilityImageGeneration,
		domain.CapabilityBackgroundRemoval,
		domain.CapabilityObjectRemoval,
	}

	t.Run("premium users pass every capability and are never counted", func(t *testing.T) {
		t.Parallel()
		for _, capability := range allCapabilities {
			// Even far past the free limit.
			decision := Admit(premiumUser(100), capability)
			assert.True(t, decision.Allowed, "capability %s", capability)
			assert.False(t, decision.CountUsage, "capability %s", capability)
		}
	})

	t.Run("free users pass text capabilities below the limit and are counted", func(t *testing.T) {
		t.Parallel()
		for _, capability := range []domain.Capability{domain.CapabilityArticle, domain.CapabilityEmail} {
			decision := Admit(freeUser(FreeUsageLimit-1), capability)
			assert.True(t, decision.Allowed, "capability %s", capability)
			assert.True(t, decision.CountUsage, "capability %s", capability)
		}
	})

	t.Run("free users are denied text capabilities at the limit", func(t *testing.T) {
		t.Parallel()
		decision := Admit(freeUser(FreeUsageLimit), domain.CapabilityEmail)
		assert.False(t, decision.Allowed)
		assert.Equal(t, DenialLimitReached, decision.Reason)
		assert.Equal(t, "Limit reached, upgrade to continue.", decision.Message)
	})

	t.Run("free users are denied image capabilities regardless of quota", func(t *testing.T) {
		t.Parallel()
		imageCapabilities := []domain.Capability{
			domain.CapabilityImageGeneration,
			domain.CapabilityBackgroundRemoval,
			domain.CapabilityObjectRemoval,
		}
		for _, capability := range imageCapabilities {
			decision := Admit(freeUser(0), capability)
			assert.False(t, decision.Allowed, "capability %s", capability)
			assert.Equal(t, DenialUpgradeRequired, decision.Reason)
			assert.Equal(t, "This feature is only available for premium users.", decision.Message)
		}
	})

	t.Run("usage above the limit is still denied", func(t *testing.T) {
		t.Parallel()
		decision := Admit(freeUser(FreeUsageLimit+5), domain.CapabilityArticle)
		assert.False(t, decision.Allowed)
		assert.Equal(t, DenialLimitReached, decision.Reason)
	})
}
