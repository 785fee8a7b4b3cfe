package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shop-tg-bot/internal/delivery"
)

func TestForDistanceBoundaries(t *testing.T) {
	cases := []struct {
		meters float64
		want   delivery.Tier
	}{
		{0, delivery.TierPickup},
		{499, delivery.TierPickup},
		{500, delivery.TierNear},
		{4999, delivery.TierNear},
		{5000, delivery.TierFar},
		{19999, delivery.TierFar},
		{20000, delivery.TierUnreachable},
		{100000, delivery.TierUnreachable},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, delivery.ForDistance(c.meters), "distance %v", c.meters)
	}
}

func TestFees(t *testing.T) {
	assert.Equal(t, 0, delivery.TierPickup.FeeRub())
	assert.Equal(t, 100, delivery.TierNear.FeeRub())
	assert.Equal(t, 300, delivery.TierFar.FeeRub())
	assert.Equal(t, 0, delivery.TierUnreachable.FeeRub())
}
