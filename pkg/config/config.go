package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"stayease/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	APIBaseURL string
	APITimeout time.Duration

	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	// StrictCheckInDate turns a past check-in date into a validation error
	// instead of leaving the decision to the server.
	StrictCheckInDate bool
	DefaultPageSize   int
	MaxPageSize       int

	RequestTimeout time.Duration
	MaxRequestSize int
	IdempotencyTTL time.Duration

	LoginRateLimit  int
	LoginRateWindow time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Kafka KafkaConfig

	Log *logger.Logger
}

// KafkaConfig is only consulted when Brokers is non-empty.
type KafkaConfig struct {
	Brokers           []string
	InvalidationTopic string
	GroupID           string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int
	ProducerCompression  string
	// PublishTimeout bounds how long a mutation waits on the broker.
	PublishTimeout time.Duration

	ConsumerStartOffset    int64
	ConsumerMinBytes       int
	ConsumerMaxBytes       int
	ConsumerMaxWait        time.Duration
	ConsumerCommitInterval time.Duration
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load reads the optional dotenv file, then the environment, and exits the
// process when the result does not validate.
func Load(serviceName string) *Config {
	dotenvErr := loadDotEnv(getEnvStr(EnvDotEnv, DefaultDotEnv))

	cfg := FromEnv(serviceName)
	if dotenvErr != nil {
		cfg.Log.Warn("Failed to read dotenv file", "error", dotenvErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv(serviceName string) *Config {
	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		APIBaseURL: strings.TrimRight(getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL), "/"),
		APITimeout: getEnvDuration(EnvAPITimeout, DefaultAPITimeout),

		CacheTTL:             getEnvDuration(EnvCacheTTL, DefaultCacheTTL),
		CacheCleanupInterval: getEnvDuration(EnvCacheCleanupInterval, DefaultCacheCleanupInterval),

		StrictCheckInDate: getEnvBool(EnvStrictCheckInDate, DefaultStrictCheckInDate),
		DefaultPageSize:   getEnvNum(EnvDefaultPageSize, DefaultPageSize),
		MaxPageSize:       getEnvNum(EnvMaxPageSize, DefaultMaxPageSize),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),

		LoginRateLimit:  getEnvNum(EnvLoginRateLimit, DefaultLoginRateLimit),
		LoginRateWindow: getEnvDuration(EnvLoginRateWindow, DefaultLoginRateWindow),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Kafka: KafkaConfig{
			Brokers:           splitList(getEnvStr(EnvKafkaBrokers, "")),
			InvalidationTopic: getEnvStr(EnvKafkaInvalidationTopic, DefaultKafkaInvalidationTopic),
			// Every agent instance needs its own group so that all of them
			// see every invalidation event.
			GroupID: getEnvStr(EnvKafkaGroupID, DefaultKafkaGroupIDPrefix+uuid.NewString()),

			ProducerMaxAttempts:  getEnvNum(EnvKafkaProducerMaxAttempts, DefaultKafkaProducerMaxAttempts),
			ProducerBatchTimeout: getEnvDuration(EnvKafkaProducerBatchTimeout, DefaultKafkaProducerBatch),
			ProducerRequireAcks:  getEnvNum(EnvKafkaProducerRequireAcks, DefaultKafkaProducerRequireAcks),
			ProducerCompression:  getEnvStr(EnvKafkaProducerCompression, DefaultKafkaProducerCompression),
			PublishTimeout:       getEnvDuration(EnvKafkaPublishTimeout, DefaultKafkaPublishTimeout),

			ConsumerStartOffset:    int64(getEnvNum(EnvKafkaConsumerStartOffset, DefaultKafkaConsumerStartOffset)),
			ConsumerMinBytes:       getEnvNum(EnvKafkaConsumerMinBytes, DefaultKafkaConsumerMinBytes),
			ConsumerMaxBytes:       getEnvNum(EnvKafkaConsumerMaxBytes, DefaultKafkaConsumerMaxBytes),
			ConsumerMaxWait:        getEnvDuration(EnvKafkaConsumerMaxWait, DefaultKafkaConsumerMaxWait),
			ConsumerCommitInterval: getEnvDuration(EnvKafkaConsumerCommitInterval, DefaultKafkaConsumerCommit),
		},

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if u, err := url.Parse(cfg.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, fmt.Sprintf("APIBaseURL must be an absolute http(s) URL, got: %s", cfg.APIBaseURL))
	}

	if cfg.APITimeout <= 0 {
		errors = append(errors, fmt.Sprintf("APITimeout must be positive, got: %s", cfg.APITimeout))
	}
	if cfg.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("CacheTTL must be positive, got: %s", cfg.CacheTTL))
	}
	if cfg.CacheCleanupInterval <= 0 {
		errors = append(errors, fmt.Sprintf("CacheCleanupInterval must be positive, got: %s", cfg.CacheCleanupInterval))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.LoginRateLimit <= 0 {
		errors = append(errors, fmt.Sprintf("LoginRateLimit must be positive, got: %d", cfg.LoginRateLimit))
	}
	if cfg.LoginRateWindow <= 0 {
		errors = append(errors, fmt.Sprintf("LoginRateWindow must be positive, got: %s", cfg.LoginRateWindow))
	}
	if cfg.DefaultPageSize <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultPageSize must be positive, got: %d", cfg.DefaultPageSize))
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		errors = append(errors, fmt.Sprintf("MaxPageSize (%d) must be >= DefaultPageSize (%d)", cfg.MaxPageSize, cfg.DefaultPageSize))
	}

	if cfg.Kafka.Enabled() {
		errors = append(errors, cfg.Kafka.validate()...)
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (k KafkaConfig) validate() []string {
	var errors []string

	for i, broker := range k.Brokers {
		if broker == "" {
			errors = append(errors, fmt.Sprintf("Kafka broker %d cannot be empty", i))
		}
	}
	if k.InvalidationTopic == "" {
		errors = append(errors, "KafkaInvalidationTopic cannot be empty")
	}
	if k.GroupID == "" {
		errors = append(errors, "KafkaGroupID cannot be empty")
	}
	if k.ProducerMaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("KafkaProducerMaxAttempts must be positive, got: %d", k.ProducerMaxAttempts))
	}
	if k.ProducerBatchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("KafkaProducerBatchTimeout must be positive, got: %s", k.ProducerBatchTimeout))
	}
	if k.PublishTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("KafkaPublishTimeout must be positive, got: %s", k.PublishTimeout))
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[k.ProducerCompression] {
		errors = append(errors, fmt.Sprintf("KafkaProducerCompression must be one of [none, gzip, snappy, lz4, zstd], got: %s", k.ProducerCompression))
	}

	if k.ProducerRequireAcks < -1 || k.ProducerRequireAcks > 1 {
		errors = append(errors, fmt.Sprintf("KafkaProducerRequireAcks must be -1, 0, or 1, got: %d", k.ProducerRequireAcks))
	}
	if k.ConsumerStartOffset != -1 && k.ConsumerStartOffset != -2 {
		errors = append(errors, fmt.Sprintf("KafkaConsumerStartOffset must be -1 (newest) or -2 (oldest), got: %d", k.ConsumerStartOffset))
	}
	if k.ConsumerMinBytes <= 0 || k.ConsumerMaxBytes < k.ConsumerMinBytes {
		errors = append(errors, fmt.Sprintf("KafkaConsumerMinBytes/MaxBytes must satisfy 0 < min <= max, got: %d/%d", k.ConsumerMinBytes, k.ConsumerMaxBytes))
	}
	if k.ConsumerMaxWait <= 0 {
		errors = append(errors, fmt.Sprintf("KafkaConsumerMaxWait must be positive, got: %s", k.ConsumerMaxWait))
	}
	if k.ConsumerCommitInterval <= 0 {
		errors = append(errors, fmt.Sprintf("KafkaConsumerCommitInterval must be positive, got: %s", k.ConsumerCommitInterval))
	}
	return errors
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"api_base_url", cfg.APIBaseURL,
		"api_timeout", cfg.APITimeout,
		"cache_ttl", cfg.CacheTTL,
		"cache_cleanup_interval", cfg.CacheCleanupInterval,
		"strict_check_in_date", cfg.StrictCheckInDate,
		"default_page_size", cfg.DefaultPageSize,
		"max_page_size", cfg.MaxPageSize,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"login_rate_limit", cfg.LoginRateLimit,
		"login_rate_window", cfg.LoginRateWindow,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_enabled", cfg.Kafka.Enabled(),
		"kafka_brokers", cfg.Kafka.Brokers,
		"kafka_invalidation_topic", cfg.Kafka.InvalidationTopic,
		"kafka_group_id", cfg.Kafka.GroupID,
		"kafka_publish_timeout", cfg.Kafka.PublishTimeout,
	)
}

// loadDotEnv never overrides variables already present in the environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
