package service

import (
	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/identity"
)

// FreeUsageLimit is the number of free-tier requests a user may spend on
// free-eligible capabilities.
const FreeUsageLimit = 10

// DenialReason categorizes why the quota gate declined a request.
type DenialReason string

const (
	// DenialLimitReached means the user exhausted their free-tier quota.
	DenialLimitReached DenialReason = "limit_reached"

	// DenialUpgradeRequired means the capability is premium-only.
	DenialUpgradeRequired DenialReason = "upgrade_required"
)

// User-facing decline messages.
const (
	limitReachedMessage    = "Limit reached, upgrade to continue."
	upgradeRequiredMessage = "This feature is only available for premium users."
)

// freeEligible maps each capability to whether free-tier users may invoke it.
// Image capabilities are premium-only regardless of remaining quota.
var freeEligible = map[domain.Capability]bool{
	domain.CapabilityArticle:           true,
	domain.CapabilityEmail:             true,
	domain.CapabilityImageGeneration:   false,
	domain.CapabilityBackgroundRemoval: false,
	domain.CapabilityObjectRemoval:     false,
}

// Decision is the outcome of the quota gate for one request.
type Decision struct {
	// Allowed reports whether the request may proceed to the provider.
	Allowed bool
	// CountUsage reports whether a successful request must be recorded
	// against the user's free-tier quota.
	CountUsage bool
	// Reason is set when Allowed is false.
	Reason DenialReason
	// Message is the user-facing decline text when Allowed is false.
	Message string
}

// Admit evaluates the quota policy for the given user snapshot and
// capability. It is a pure function of its inputs: premium users pass
// unconditionally and are never counted; free users pass on free-eligible
// capabilities while their observed usage is below the limit.
func Admit(user *identity.User, capability domain.Capability) Decision {
	if user.Plan.IsPremium() {
		return Decision{Allowed: true}
	}

	if !freeEligible[capability] {
		return Decision{
			Allowed: false,
			Reason:  DenialUpgradeRequired,
			Message: upgradeRequiredMessage,
		}
	}

	if user.FreeUsage >= FreeUsageLimit {
		return Decision{
			Allowed: false,
			Reason:  DenialLimitReached,
			Message: limitReachedMessage,
		}
	}

	return Decision{Allowed: true, CountUsage: true}
}
