package config

const (
	EnvMongoURI           = "MONGO_URI"
	EnvMongoDatabaseName  = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout   = "MONGO_CONN_TIMEOUT"
	EnvBookingsCollection = "BOOKINGS_COLLECTION"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSubmitEndpoint  = "SUBMIT_ENDPOINT"
	EnvSubmitTimeout   = "SUBMIT_TIMEOUT"
	EnvDefaultTimeZone = "DEFAULT_TIME_ZONE"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvIntentTopic    = "INTENT_TOPIC"
	EnvIntentDLQTopic = "INTENT_DLQ_TOPIC"
)
