package geo_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-tg-bot/internal/geo"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestResolveAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("geocode") {
		case "Moscow, Red Square":
			io.WriteString(w, `{"response":{"GeoObjectCollection":{"featureMember":[
				{"GeoObject":{"Point":{"pos":"37.617635 55.755814"}}},
				{"GeoObject":{"Point":{"pos":"1.0 1.0"}}}
			]}}}`)
		default:
			io.WriteString(w, `{"response":{"GeoObjectCollection":{"featureMember":[]}}}`)
		}
	}))
	defer server.Close()

	geocoder := geo.NewGeocoder("test-key", testLogger())
	geocoder.SetBaseURL(server.URL)

	t.Run("most relevant match wins", func(t *testing.T) {
		point, err := geocoder.ResolveAddress(context.Background(), "Moscow, Red Square")

		require.NoError(t, err)
		assert.InDelta(t, 37.617635, point.Longitude, 1e-9)
		assert.InDelta(t, 55.755814, point.Latitude, 1e-9)
	})

	t.Run("unknown address", func(t *testing.T) {
		_, err := geocoder.ResolveAddress(context.Background(), "gibberish")
		assert.ErrorIs(t, err, geo.ErrUnknownAddress)
	})
}
