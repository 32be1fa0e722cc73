package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSessionTTL = 30 * time.Minute

	DefaultBookingPrefix = "TGSRTC"
	DefaultBookingDelay  = 2 * time.Second
	DefaultServiceTaxBps = 500 // 5% service tax

	DefaultBookingTopic = "booking-confirmations"
)
