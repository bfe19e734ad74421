package config

import "time"

const (
	DefaultMongoURI           = "mongodb://localhost:27017"
	DefaultMongoDatabaseName  = "assetbook"
	DefaultMongoConnTimeout   = 10 * time.Second
	DefaultBookingsCollection = "Bookings"

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultSubmitEndpoint = "http://localhost:3000/bookings/submit"
	DefaultSubmitTimeout  = 10 * time.Second
	DefaultTimeZone       = "UTC"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultIntentTopic    = "booking-intents"
	DefaultIntentDLQTopic = "booking-intents-dlq"
)
