package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHOPS_FLOW_SLUG", "pizzeria")
	v.SetDefault("REDIS_DB", 0)

	// Define environment variables
	v.BindEnv("TG_TOKEN")
	v.BindEnv("EP_CLIENT_ID")
	v.BindEnv("EP_CLIENT_SECRET")
	v.BindEnv("SHOPS_FLOW_SLUG")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("REDIS_PASSWORD")
	v.BindEnv("REDIS_DB")
	v.BindEnv("YANDEX_GEOCODER_API_KEY")
	v.BindEnv("LOG_LEVEL")

	cfg := &Config{
		LogLevel: v.GetString("LOG_LEVEL"),
		Telegram: TelegramConfig{
			Token: strings.TrimSpace(v.GetString("TG_TOKEN")),
		},
		Elasticpath: ElasticpathConfig{
			ClientID:     strings.TrimSpace(v.GetString("EP_CLIENT_ID")),
			ClientSecret: strings.TrimSpace(v.GetString("EP_CLIENT_SECRET")),
			ShopsFlow:    strings.TrimSpace(v.GetString("SHOPS_FLOW_SLUG")),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Geocoder: GeocoderConfig{
			APIKey: strings.TrimSpace(v.GetString("YANDEX_GEOCODER_API_KEY")),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadElasticpath loads only the backend API settings. Used by the
// seeding tool, which needs no bot or Redis configuration.
func LoadElasticpath() (ElasticpathConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SHOPS_FLOW_SLUG", "pizzeria")
	v.BindEnv("EP_CLIENT_ID")
	v.BindEnv("EP_CLIENT_SECRET")
	v.BindEnv("SHOPS_FLOW_SLUG")

	cfg := ElasticpathConfig{
		ClientID:     strings.TrimSpace(v.GetString("EP_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(v.GetString("EP_CLIENT_SECRET")),
		ShopsFlow:    strings.TrimSpace(v.GetString("SHOPS_FLOW_SLUG")),
	}
	if cfg.ClientID == "" {
		return ElasticpathConfig{}, errors.New("EP_CLIENT_ID is required")
	}
	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return errors.New("TG_TOKEN is required")
	}
	if cfg.Elasticpath.ClientID == "" {
		return errors.New("EP_CLIENT_ID is required")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if cfg.Geocoder.APIKey == "" {
		return errors.New("YANDEX_GEOCODER_API_KEY is required")
	}
	if cfg.Elasticpath.ShopsFlow == "" {
		return errors.New("SHOPS_FLOW_SLUG is required")
	}
	return nil
}
