package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Postgres.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 70, cfg.Moderation.ApproveThreshold)
	assert.Equal(t, 40, cfg.Moderation.ReviewThreshold)
	assert.Equal(t, 5000.0, cfg.Moderation.LargeGoalAmount)
	require.NoError(t, cfg.Moderation.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FUNDGUARD_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("REDIS_DIAL_TIMEOUT", "10s")
	t.Setenv("MODERATION_APPROVE_THRESHOLD", "80")
	t.Setenv("MODERATION_LARGE_GOAL_AMOUNT", "2500.5")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 80, cfg.Moderation.ApproveThreshold)
	assert.Equal(t, 2500.5, cfg.Moderation.LargeGoalAmount)
	// Unparseable values fall back to the default.
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}

func TestModerationConfigValidate(t *testing.T) {
	valid := ModerationConfig{
		ApproveThreshold: 70,
		ReviewThreshold:  40,
		FraudVetoCeiling: 70,
		LargeGoalAmount:  5000,
		MaxTextLength:    50000,
	}

	tests := []struct {
		name   string
		mutate func(*ModerationConfig)
		ok     bool
	}{
		{"defaults", func(*ModerationConfig) {}, true},
		{"review above approve", func(m *ModerationConfig) { m.ReviewThreshold = 80 }, false},
		{"review equals approve", func(m *ModerationConfig) { m.ReviewThreshold = 70 }, false},
		{"approve above 100", func(m *ModerationConfig) { m.ApproveThreshold = 101 }, false},
		{"zero review", func(m *ModerationConfig) { m.ReviewThreshold = 0 }, false},
		{"zero veto ceiling", func(m *ModerationConfig) { m.FraudVetoCeiling = 0 }, false},
		{"negative goal amount", func(m *ModerationConfig) { m.LargeGoalAmount = -1 }, false},
		{"zero text length", func(m *ModerationConfig) { m.MaxTextLength = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
