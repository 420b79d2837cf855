// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all service configuration.
type Config struct {
	// HTTP
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Logging
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Auth
	JWTSecret string `env:"JWT_SECRET,required"`

	// Object storage (bulk uploads and failure artifacts)
	UploadBucket string `env:"UPLOAD_BUCKET"`

	// Kafka (upload notifications)
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	UploadTopic  string   `env:"UPLOAD_TOPIC" envDefault:"inventory.uploads"`
	UploadGroup  string   `env:"UPLOAD_GROUP" envDefault:"stockyard-upload"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
