package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Analytics AnalyticsConfig
}

// AnalyticsConfig controls the admin analytics engine.
type AnalyticsConfig struct {
	// PartialDataPolicy decides what happens when one of the snapshot
	// fetches fails: "fail_fast" surfaces the error, "silent_zero"
	// degrades that record set to empty.
	PartialDataPolicy string
	// Timezone is the IANA zone used for calendar-month bucketing.
	Timezone string
	// RatesPath points at the directory holding rates.yml.
	RatesPath string

	DashboardRate  float64
	DashboardBurst int
}

const (
	PartialDataFailFast   = "fail_fast"
	PartialDataSilentZero = "silent_zero"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:      getenv("APP_SERVICE", "ascendly"),
		AppVersion:   getenv("APP_VERSION", "0.1.0"),
		Environment:  getenv("ENVIRONMENT", "development"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "ascendly"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       int(getenvInt64("REDIS_DB", 0)),

		Analytics: AnalyticsConfig{
			PartialDataPolicy: normalizePartialDataPolicy(getenv("ANALYTICS_PARTIAL_DATA_POLICY", PartialDataFailFast)),
			Timezone:          getenv("ANALYTICS_TIMEZONE", "UTC"),
			RatesPath:         getenv("ANALYTICS_RATES_PATH", "."),
			DashboardRate:     getenvFloat("ANALYTICS_DASHBOARD_RATE", 1),
			DashboardBurst:    int(getenvInt64("ANALYTICS_DASHBOARD_BURST", 5)),
		},
	}
}

func normalizePartialDataPolicy(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case PartialDataSilentZero:
		return PartialDataSilentZero
	default:
		return PartialDataFailFast
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
