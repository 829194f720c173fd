package domain

// Capability identifies one of the request kinds the gateway serves. Each
// capability is wired to exactly one provider adapter; which capabilities are
// free-eligible versus premium-only is decided by the quota gate's policy
// table, not by the capability itself.
type Capability string

// Supported capabilities.
const (
	CapabilityArticle           Capability = "article"
	CapabilityEmail             Capability = "email"
	CapabilityImageGeneration   Capability = "image-generation"
	CapabilityBackgroundRemoval Capability = "background-removal"
	CapabilityObjectRemoval     Capability = "object-removal"
)

// CreationType returns the creation type persisted for this capability.
func (c Capability) CreationType() CreationType {
	switch c {
	case CapabilityArticle:
		return CreationTypeArticle
	case CapabilityEmail:
		return CreationTypeEmail
	default:
		return CreationTypeImage
	}
}
