package domain

// Plan is the caller's subscription plan as reported by the identity
// provider. Any value other than PlanPremium is treated as the free tier.
type Plan string

// Known plan values.
const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// IsPremium reports whether the plan grants unrestricted access.
func (p Plan) IsPremium() bool {
	return p == PlanPremium
}
