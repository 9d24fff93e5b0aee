// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Port     string `mapstructure:"port" validate:"required,numeric"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	GoogleAPIKey        string `mapstructure:"google_api_key"`
	GoogleCloudProject  string `mapstructure:"google_cloud_project"`
	GoogleCloudLocation string `mapstructure:"google_cloud_location"`

	QuizModel            string  `mapstructure:"quiz_model" validate:"required"`
	DiagnosisModel       string  `mapstructure:"diagnosis_model" validate:"required"`
	QuizTemperature      float32 `mapstructure:"quiz_temperature" validate:"gte=0,lte=2"`
	DiagnosisTemperature float32 `mapstructure:"diagnosis_temperature" validate:"gte=0,lte=2"`

	MaxRetries     int           `mapstructure:"max_retries" validate:"gte=1"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gte=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	ThemeCount int      `mapstructure:"theme_count" validate:"gte=1"`
	Themes     []string `mapstructure:"themes"`

	RedisAddr  string        `mapstructure:"redis_addr"`
	RateLimit  int           `mapstructure:"rate_limit" validate:"gte=0"`
	RateWindow time.Duration `mapstructure:"rate_window" validate:"gt=0"`

	QdrantHost       string `mapstructure:"qdrant_host"`
	QdrantPort       int    `mapstructure:"qdrant_port" validate:"gte=0,lt=65536"`
	QdrantCollection string `mapstructure:"qdrant_collection" validate:"required"`
}

var defaults = map[string]any{
	"port":                  "8000",
	"log_level":             "info",
	"google_api_key":        "",
	"google_cloud_project":  "",
	"google_cloud_location": "us-central1",
	"quiz_model":            "gemini-2.0-flash",
	"diagnosis_model":       "gemini-2.5-flash",
	"quiz_temperature":      0.8,
	"diagnosis_temperature": 0.7,
	"max_retries":           3,
	"retry_base_delay":      "0s",
	"request_timeout":       "60s",
	"theme_count":           6,
	"themes":                []string{},
	"redis_addr":            "",
	"rate_limit":            0,
	"rate_window":           "1m",
	"qdrant_host":           "",
	"qdrant_port":           6334,
	"qdrant_collection":     "players",
}

// Load reads .env files (if any) and the environment. Environment variables
// use the upper-cased key, e.g. MAX_RETRIES.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.GoogleAPIKey == "" && c.GoogleCloudProject == "" {
		return errors.New("invalid config: GOOGLE_API_KEY or GOOGLE_CLOUD_PROJECT must be set")
	}
	return nil
}
