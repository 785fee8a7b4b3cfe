package geo

import (
	"math"

	"shop-tg-bot/internal/models"
)

const earthRadiusMeters = 6371000

// Point is a geographic coordinate pair
type Point struct {
	Longitude float64
	Latitude  float64
}

// DistanceMeters returns the great-circle distance between two points in
// meters using the haversine formula.
func DistanceMeters(a, b Point) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// NearestShop returns the shop closest to the point and the distance to it.
// Comparison is strict, so of several equidistant shops the first one in
// the slice wins. The boolean is false when shops is empty.
func NearestShop(user Point, shops []models.ShopEntry) (models.ShopEntry, float64, bool) {
	var nearest models.ShopEntry
	best := math.Inf(1)
	found := false

	for _, shop := range shops {
		d := DistanceMeters(user, Point{Longitude: shop.Longitude, Latitude: shop.Latitude})
		if d < best {
			best = d
			nearest = shop
			found = true
		}
	}

	return nearest, best, found
}
