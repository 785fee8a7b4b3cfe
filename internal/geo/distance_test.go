package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-tg-bot/internal/geo"
	"shop-tg-bot/internal/models"
)

func TestDistanceMeters(t *testing.T) {
	moscow := geo.Point{Longitude: 37.6173, Latitude: 55.7558}
	spb := geo.Point{Longitude: 30.3351, Latitude: 59.9343}

	t.Run("zero for equal points", func(t *testing.T) {
		assert.Zero(t, geo.DistanceMeters(moscow, moscow))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, geo.DistanceMeters(moscow, spb), geo.DistanceMeters(spb, moscow), 1e-6)
	})

	t.Run("known distance", func(t *testing.T) {
		// Moscow to Saint Petersburg is roughly 634 km great-circle.
		assert.InDelta(t, 634000, geo.DistanceMeters(moscow, spb), 5000)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := geo.Point{Longitude: 0, Latitude: 0}
		b := geo.Point{Longitude: 0, Latitude: 1}
		assert.InDelta(t, 111195, geo.DistanceMeters(a, b), 100)
	})
}

func TestNearestShop(t *testing.T) {
	t.Run("picks the closest", func(t *testing.T) {
		shops := []models.ShopEntry{
			{ID: "far", Longitude: 1, Latitude: 1},
			{ID: "near", Longitude: 0.001, Latitude: 0.001},
		}

		nearest, distance, found := geo.NearestShop(geo.Point{}, shops)

		require.True(t, found)
		assert.Equal(t, "near", nearest.ID)
		assert.Greater(t, distance, 0.0)
	})

	t.Run("first shop wins ties", func(t *testing.T) {
		shops := []models.ShopEntry{
			{ID: "east", Longitude: 0.01, Latitude: 0},
			{ID: "west", Longitude: -0.01, Latitude: 0},
		}

		nearest, _, found := geo.NearestShop(geo.Point{}, shops)

		require.True(t, found)
		assert.Equal(t, "east", nearest.ID)
	})

	t.Run("no shops", func(t *testing.T) {
		_, _, found := geo.NearestShop(geo.Point{}, nil)
		assert.False(t, found)
	})
}
