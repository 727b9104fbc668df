package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Line    LineConfig
	Server  ServerConfig
	Source  SourceConfig
	Logging LoggingConfig
}

type LineConfig struct {
	ChannelSecret      string
	ChannelAccessToken string
	APIBaseURL         string
}

type ServerConfig struct {
	Port int
}

type SourceConfig struct {
	UTCOffsetHours int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Line: LineConfig{
			ChannelSecret:      getEnv("LINE_CHANNEL_SECRET", ""),
			ChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
			APIBaseURL:         getEnv("LINE_API_BASE_URL", "https://api.line.me"),
		},
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 3000),
		},
		Source: SourceConfig{
			// Taipei time; the scraped site keys its pages to this day.
			UTCOffsetHours: getEnvInt("SOURCE_UTC_OFFSET_HOURS", 8),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Line.ChannelSecret == "" {
		return fmt.Errorf("LINE_CHANNEL_SECRET is required")
	}
	if c.Line.ChannelAccessToken == "" {
		return fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN is required")
	}
	if c.Line.APIBaseURL == "" {
		return fmt.Errorf("LINE_API_BASE_URL must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
