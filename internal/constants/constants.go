package constants

const (
	// Catalog pagination constants
	ProductPageSize = 8

	// Delivery distance tiers in meters
	PickupDistanceMeters = 500
	NearDeliveryMeters   = 5000
	FarDeliveryMeters    = 20000

	// Delivery fees in rubles
	NearDeliveryFeeRub = 100
	FarDeliveryFeeRub  = 300

	// Network constants
	DefaultTimeout          = 30
	DefaultRetryCount       = 3
	DefaultRetryWaitTime    = 5
	DefaultRetryMaxWaitTime = 20

	// Cache constants
	PageCursorExpiration  = 30 // minutes
	CacheCleanupInterval  = 10 // minutes
	TokenExpirationMargin = 60 // seconds shaved off the reported token lifetime

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
)
