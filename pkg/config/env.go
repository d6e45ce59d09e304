package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
	EnvDotEnv    = "DOTENV_FILE"

	EnvAPIBaseURL = "API_BASE_URL"
	EnvAPITimeout = "API_TIMEOUT"

	EnvCacheTTL             = "CACHE_TTL"
	EnvCacheCleanupInterval = "CACHE_CLEANUP_INTERVAL"

	EnvStrictCheckInDate = "STRICT_CHECK_IN_DATE"
	EnvDefaultPageSize   = "DEFAULT_PAGE_SIZE"
	EnvMaxPageSize       = "MAX_PAGE_SIZE"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"

	EnvLoginRateLimit  = "LOGIN_RATE_LIMIT"
	EnvLoginRateWindow = "LOGIN_RATE_WINDOW"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers                = "KAFKA_BROKERS"
	EnvKafkaInvalidationTopic      = "KAFKA_INVALIDATION_TOPIC"
	EnvKafkaGroupID                = "KAFKA_GROUP_ID"
	EnvKafkaProducerMaxAttempts    = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout   = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerRequireAcks    = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerCompression    = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaPublishTimeout         = "KAFKA_PUBLISH_TIMEOUT"
	EnvKafkaConsumerStartOffset    = "KAFKA_CONSUMER_START_OFFSET"
	EnvKafkaConsumerMinBytes       = "KAFKA_CONSUMER_MIN_BYTES"
	EnvKafkaConsumerMaxBytes       = "KAFKA_CONSUMER_MAX_BYTES"
	EnvKafkaConsumerMaxWait        = "KAFKA_CONSUMER_MAX_WAIT"
	EnvKafkaConsumerCommitInterval = "KAFKA_CONSUMER_COMMIT_INTERVAL"
)
