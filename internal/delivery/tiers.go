package delivery

import (
	"shop-tg-bot/internal/constants"
)

// Tier is a bracket of distance to the nearest shop mapping to a delivery outcome
type Tier int

const (
	// TierPickup means the shop is close enough for free pickup or delivery
	TierPickup Tier = iota
	// TierNear means delivery for the near-range courier fee
	TierNear
	// TierFar means delivery for the far-range courier fee
	TierFar
	// TierUnreachable means the user is too far away, delivery is refused
	TierUnreachable
)

// ForDistance maps a distance in meters to a delivery tier.
func ForDistance(meters float64) Tier {
	switch {
	case meters < constants.PickupDistanceMeters:
		return TierPickup
	case meters < constants.NearDeliveryMeters:
		return TierNear
	case meters < constants.FarDeliveryMeters:
		return TierFar
	default:
		return TierUnreachable
	}
}

// FeeRub returns the courier fee for the tier in rubles. Zero for tiers
// that have no fee.
func (t Tier) FeeRub() int {
	switch t {
	case TierNear:
		return constants.NearDeliveryFeeRub
	case TierFar:
		return constants.FarDeliveryFeeRub
	default:
		return 0
	}
}
