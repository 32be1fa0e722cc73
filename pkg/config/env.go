package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSessionTTL = "SESSION_TTL"

	EnvBookingPrefix    = "BOOKING_PREFIX"
	EnvBookingDelay     = "BOOKING_PROCESSING_DELAY"
	EnvServiceTaxBps    = "SERVICE_TAX_BPS"
	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvBookingTopic     = "BOOKING_EVENTS_TOPIC"
)
