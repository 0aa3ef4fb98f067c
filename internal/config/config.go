package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	APIBaseURL      string
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
	OfflineFallback bool
	DefaultRole     string
	RestaurantID    int64
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		APIBaseURL:      getEnv("API_BASE_URL", "https://resback.sampaarsh.cloud"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
		OfflineFallback: getBool("OFFLINE_FALLBACK", true),
		DefaultRole:     getEnv("OFFLINE_DEFAULT_ROLE", "manager"),
		RestaurantID:    getInt64("RESTAURANT_ID", 1),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
