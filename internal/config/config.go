package config

// Config represents the application configuration
type Config struct {
	Telegram    TelegramConfig
	Elasticpath ElasticpathConfig
	Redis       RedisConfig
	Geocoder    GeocoderConfig
	LogLevel    string
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	Token string
}

// ElasticpathConfig holds the credentials and shop schema settings for
// the Elastic Path backend
type ElasticpathConfig struct {
	ClientID     string
	ClientSecret string
	ShopsFlow    string
}

// RedisConfig holds the connection settings for the user-state store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GeocoderConfig holds the Yandex geocoder settings
type GeocoderConfig struct {
	APIKey string
}
