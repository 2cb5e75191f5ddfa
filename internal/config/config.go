// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the process-wide HS256 signing secret for session tokens.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTIssuer is the iss claim (e.g. "learnai-auth").
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim (e.g. "learnai-api").
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTTTL is the session token lifetime (e.g. "24h"). "0" issues tokens without expiry.
	JWTTTL string `mapstructure:"JWT_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// Object storage (S3-compatible). All of endpoint/region/key/secret must be
	// set for the resource gateway to be enabled.
	S3Endpoint string `mapstructure:"S3_ENDPOINT"`
	S3Region   string `mapstructure:"S3_REGION"`
	S3KeyID    string `mapstructure:"S3_KEY_ID"`
	S3Secret   string `mapstructure:"S3_SECRET"`
	// S3Bucket is the bucket holding course and activity resources (default learnai).
	S3Bucket string `mapstructure:"S3_BUCKET"`
	// ResourceURLTTL is the lifetime of presigned resource URLs (default 60s).
	ResourceURLTTL string `mapstructure:"RESOURCE_URL_TTL"`

	// Mail (HTTP transactional-mail API). When MAIL_API_KEY is empty, welcome
	// mail is logged instead of sent.
	MailAPIKey  string `mapstructure:"MAIL_API_KEY"`
	MailBaseURL string `mapstructure:"MAIL_BASE_URL"`
	MailFrom    string `mapstructure:"MAIL_FROM"`

	// Audit events (optional). When Kafka brokers are set, the server emits
	// audit events to Kafka.
	// AuditKafkaBrokers is a comma-separated list of broker addresses (e.g. "localhost:9092").
	AuditKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// AuditKafkaTopic is the Kafka topic for audit events (default learnai-audit).
	AuditKafkaTopic string `mapstructure:"AUDIT_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the audit worker to push events (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the audit worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// OTLPEndpoint enables tracing when set (e.g. http://localhost:4317).
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "learnai-auth")
	v.SetDefault("JWT_AUDIENCE", "learnai-api")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "")
	v.SetDefault("S3_KEY_ID", "")
	v.SetDefault("S3_SECRET", "")
	v.SetDefault("S3_BUCKET", "learnai")
	v.SetDefault("RESOURCE_URL_TTL", "60s")
	v.SetDefault("MAIL_API_KEY", "")
	v.SetDefault("MAIL_BASE_URL", "")
	v.SetDefault("MAIL_FROM", "no-reply@learnai.example.com")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("AUDIT_KAFKA_TOPIC", "learnai-audit")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "learnai-audit-worker")
	v.SetDefault("OTLP_ENDPOINT", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.JWTSecret == "" && cfg.Env == "production" {
		return nil, errors.New("config: JWT_SECRET must be set when APP_ENV=production")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// IsProduction reports whether the app is running with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionTTL parses JWTTTL as a time.Duration. Returns 24h if unset or invalid;
// returns 0 (tokens without expiry) when JWTTTL is "0".
func (c *Config) SessionTTL() time.Duration {
	if strings.TrimSpace(c.JWTTTL) == "0" {
		return 0
	}
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d < 0 {
		return 24 * time.Hour
	}
	return d
}

// ResourceTTL parses ResourceURLTTL as a time.Duration. Returns 60s if unset or invalid.
func (c *Config) ResourceTTL() time.Duration {
	d, err := time.ParseDuration(c.ResourceURLTTL)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// HasS3Config reports whether all required object-storage settings are present.
func (c *Config) HasS3Config() bool {
	return c.S3Endpoint != "" && c.S3Region != "" && c.S3KeyID != "" && c.S3Secret != ""
}

// AuditKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if audit events are enabled (non-empty list) and to create the producer.
func (c *Config) AuditKafkaBrokersList() []string {
	if c == nil || c.AuditKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.AuditKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
