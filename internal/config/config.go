// Package config provides runtime configuration for the service.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all knobs the service reads at startup. Values come from
// the environment (optionally seeded from a .env file by main).
type Config struct {
	HTTPAddr          string
	DatabaseURL       string
	RedisAddr         string
	KafkaBrokers      string
	KafkaTopic        string
	LowStockThreshold int
	AuditLogPath      string
	JWTSecret         string
	TokenTTL          time.Duration
	RefreshTokenTTL   time.Duration
	ShutdownTimeout   time.Duration
}

// Load collects configuration from the environment with defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "inventory.low-stock")
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("AUDIT_LOG_PATH", "transactions.log")
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("TOKEN_TTL_MINUTES", 15)
	v.SetDefault("REFRESH_TOKEN_TTL_HOURS", 72)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)

	cfg := Config{
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		KafkaBrokers:      v.GetString("KAFKA_BROKERS"),
		KafkaTopic:        v.GetString("KAFKA_TOPIC"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		AuditLogPath:      v.GetString("AUDIT_LOG_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          time.Duration(v.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,
		RefreshTokenTTL:   time.Duration(v.GetInt("REFRESH_TOKEN_TTL_HOURS")) * time.Hour,
		ShutdownTimeout:   time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
	}
	return cfg, nil
}
