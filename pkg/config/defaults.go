package config

import "time"

const (
	DefaultPort      = "8081"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultDotEnv    = ".env"

	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultAPITimeout = 15 * time.Second

	DefaultCacheTTL             = 30 * time.Second
	DefaultCacheCleanupInterval = 1 * time.Minute

	DefaultStrictCheckInDate = false
	DefaultPageSize          = 10
	DefaultMaxPageSize       = 100

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultIdempotencyTTL = 10 * time.Minute

	DefaultLoginRateLimit  = 10
	DefaultLoginRateWindow = 1 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 35 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaInvalidationTopic   = "stayease.cache-invalidation"
	DefaultKafkaGroupIDPrefix       = "stayease-agent-"
	DefaultKafkaProducerMaxAttempts = 3
	DefaultKafkaProducerBatch       = 10 * time.Millisecond
	DefaultKafkaProducerRequireAcks = -1 // all replicas
	DefaultKafkaProducerCompression = "snappy"
	DefaultKafkaPublishTimeout      = 2 * time.Second
	DefaultKafkaConsumerStartOffset = -1 // newest
	DefaultKafkaConsumerMinBytes    = 1
	DefaultKafkaConsumerMaxBytes    = 1 * 1024 * 1024
	DefaultKafkaConsumerMaxWait     = 500 * time.Millisecond
	DefaultKafkaConsumerCommit      = 1 * time.Second
)
