// ==============================================================================
// CONFIG PACKAGE - pkg/config/config.go
// ==============================================================================
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	API          APIConfig
	Notification NotificationConfig
	Paging       PagingConfig
}

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	UserAgent   string
	VerboseWire bool
}

type NotificationConfig struct {
	AutoHideAfter time.Duration
}

type PagingConfig struct {
	PageSize int
}

func Load() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     getEnv("ADMIN_API_BASE_URL", "http://localhost:3111/api"),
			Timeout:     getDurationEnv("ADMIN_API_TIMEOUT", 15*time.Second),
			MaxRetries:  getIntEnv("ADMIN_API_MAX_RETRIES", 0),
			UserAgent:   getEnv("ADMIN_API_USER_AGENT", "adminconsole"),
			VerboseWire: getBoolEnv("ADMIN_API_VERBOSE", false),
		},
		Notification: NotificationConfig{
			AutoHideAfter: getDurationEnv("NOTIFICATION_AUTO_HIDE", 5*time.Second),
		},
		Paging: PagingConfig{
			PageSize: getIntEnv("PAGE_SIZE", 10),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
