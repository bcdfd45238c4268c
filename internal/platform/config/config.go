package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	AdminKeyHash  string

	Postgres   PostgresConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Moderation ModerationConfig
}

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the audit event stream settings. Empty brokers disable
// the Kafka sink; audit events then go to the store only.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ModerationConfig carries the tunable scoring constants. The exact cutoffs
// are deployment policy, not code; defaults here match the documented
// decision bands.
type ModerationConfig struct {
	ApproveThreshold int
	ReviewThreshold  int
	FraudVetoCeiling int
	LargeGoalAmount  float64
	MaxTextLength    int
}

// Validate enforces that the decision bands partition [0,100] with no gaps
// and no overlap.
func (m ModerationConfig) Validate() error {
	if m.ReviewThreshold <= 0 || m.ApproveThreshold > 100 {
		return fmt.Errorf("decision thresholds must fall inside (0,100]: review=%d approve=%d", m.ReviewThreshold, m.ApproveThreshold)
	}
	if m.ReviewThreshold >= m.ApproveThreshold {
		return fmt.Errorf("review threshold %d must be below approve threshold %d", m.ReviewThreshold, m.ApproveThreshold)
	}
	if m.FraudVetoCeiling <= 0 || m.FraudVetoCeiling > 100 {
		return fmt.Errorf("fraud veto ceiling %d must fall inside (0,100]", m.FraudVetoCeiling)
	}
	if m.LargeGoalAmount <= 0 {
		return fmt.Errorf("large goal amount must be positive, got %v", m.LargeGoalAmount)
	}
	if m.MaxTextLength <= 0 {
		return fmt.Errorf("max text length must be positive, got %d", m.MaxTextLength)
	}
	return nil
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:          envString("FUNDGUARD_ADDR", ":8080"),
		JWTSigningKey: envString("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envString("JWT_ISSUER", "fundguard"),
		JWTAudience:   envString("JWT_AUDIENCE", "fundguard-api"),
		AdminKeyHash:  os.Getenv("ADMIN_KEY_HASH"),
		Postgres: PostgresConfig{
			URL:          os.Getenv("POSTGRES_URL"),
			MaxOpenConns: envInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns: envInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envString("KAFKA_AUDIT_TOPIC", "fundguard.moderation.audit"),
		},
		Moderation: ModerationConfig{
			ApproveThreshold: envInt("MODERATION_APPROVE_THRESHOLD", 70),
			ReviewThreshold:  envInt("MODERATION_REVIEW_THRESHOLD", 40),
			FraudVetoCeiling: envInt("MODERATION_FRAUD_VETO_CEILING", 70),
			LargeGoalAmount:  envFloat("MODERATION_LARGE_GOAL_AMOUNT", 5000),
			MaxTextLength:    envInt("MODERATION_MAX_TEXT_LENGTH", 50000),
		},
	}
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
