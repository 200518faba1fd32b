package platform

const (
	// TierBasic unlocks tier-1 content only.
	TierBasic uint8 = 1
	// TierPremium unlocks tier-1 and tier-2 content.
	TierPremium uint8 = 2
	// TierVIP unlocks every tier.
	TierVIP uint8 = 3
)

const day = 24 * 60 * 60

// tierDurations is a fixed lookup table; the entitlement window is not derived
// formulaically from the tier.
var tierDurations = map[uint8]uint64{
	TierBasic:   30 * day,
	TierPremium: 60 * day,
	TierVIP:     90 * day,
}

// ValidTier reports whether the supplied tier is one of the three supported
// subscription levels.
func ValidTier(tier uint8) bool {
	_, ok := tierDurations[tier]
	return ok
}

// TierDuration returns the entitlement window purchased with the supplied
// tier, in seconds. Unknown tiers return zero.
func TierDuration(tier uint8) uint64 {
	return tierDurations[tier]
}

// Subscription is the entitlement record held by a subscriber. Active is a
// convenience flag; effective validity additionally requires ExpiresAt to lie
// in the future at the moment of use.
type Subscription struct {
	Subscriber [20]byte `json:"subscriber"`
	Active     bool     `json:"active"`
	ExpiresAt  uint64   `json:"expiresAt"`
	Tier       uint8    `json:"tier"`
}

// EffectiveActive reports whether the subscription entitles access at the
// supplied instant.
func (s *Subscription) EffectiveActive(now uint64) bool {
	return s != nil && s.Active && s.ExpiresAt > now
}

// Clone returns a deep copy of the subscription.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// Content represents a published catalog entry. The URI is an opaque locator
// into off-platform storage and is only released through the access gate.
type Content struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	URI       string   `json:"uri"`
	Creator   [20]byte `json:"creator"`
	Tier      uint8    `json:"tier"`
	CreatedAt uint64   `json:"createdAt"`
	Active    bool     `json:"active"`
}

// Clone returns a deep copy of the content record.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Params bundles the global platform parameters for read-only inspection.
type Params struct {
	Admin        [20]byte
	UnitPrice    string
	Paused       bool
	ContentCount uint64
}
