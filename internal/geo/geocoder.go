package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"shop-tg-bot/internal/constants"
)

const yandexGeocoderURL = "https://geocode-maps.yandex.ru/1.x"

// ErrUnknownAddress is returned when the geocoder finds no match for an address.
var ErrUnknownAddress = errors.New("address not recognized")

// Geocoder resolves free-text addresses to coordinates via the Yandex
// geocoder API
type Geocoder struct {
	httpClient *resty.Client
	baseURL    string
	apiKey     string
	logger     *logrus.Logger
}

// NewGeocoder creates a new Yandex geocoder client
func NewGeocoder(apiKey string, logger *logrus.Logger) *Geocoder {
	httpClient := resty.New().
		SetTimeout(constants.DefaultTimeout * time.Second).
		SetRetryCount(constants.DefaultRetryCount).
		SetRetryWaitTime(constants.DefaultRetryWaitTime * time.Second).
		SetRetryMaxWaitTime(constants.DefaultRetryMaxWaitTime * time.Second)

	return &Geocoder{
		httpClient: httpClient,
		baseURL:    yandexGeocoderURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// SetBaseURL overrides the geocoder endpoint. Used in tests.
func (g *Geocoder) SetBaseURL(baseURL string) {
	g.baseURL = baseURL
}

type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// ResolveAddress resolves an address to a geographic point. The most
// relevant match wins. Returns ErrUnknownAddress when nothing is found.
func (g *Geocoder) ResolveAddress(ctx context.Context, address string) (Point, error) {
	g.logger.Debugf("Resolving address: %s", address)

	var parsed geocoderResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"geocode": address,
			"apikey":  g.apiKey,
			"format":  "json",
		}).
		SetResult(&parsed).
		Get(g.baseURL)

	if err != nil {
		return Point{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Point{}, fmt.Errorf("geocoder failed with status code: %d", resp.StatusCode())
	}

	places := parsed.Response.GeoObjectCollection.FeatureMember
	if len(places) == 0 {
		return Point{}, ErrUnknownAddress
	}

	return parsePos(places[0].GeoObject.Point.Pos)
}

// parsePos parses the geocoder's "lon lat" position string.
func parsePos(pos string) (Point, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("unexpected position format: %q", pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad longitude in %q: %w", pos, err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad latitude in %q: %w", pos, err)
	}

	return Point{Longitude: lon, Latitude: lat}, nil
}
