package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fieldsense/location-insights/internal/domain"
)

// Config holds all service settings, populated from environment variables.
// Read-only for the lifetime of the process.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Page settings shown to the user.
	PageTitle string

	// PredictHQ events-intelligence configuration.
	PHQToken   string
	PHQTimeout time.Duration

	// Google Places configuration.
	GoogleMapsAPIKey string
	GoogleTimeout    time.Duration

	// Suggested-radius industry. Used only when a caller does not supply one.
	SuggestedRadiusIndustry string

	RadiusCacheSize   int
	InsightsCacheSize int

	// Optional lookup-audit Kafka producer.
	KafkaBrokers     []string
	KafkaLookupTopic string
	KafkaEnabled     bool
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
// A missing provider credential is a refusal to start, not a degraded mode.
func Load() (*Config, error) {
	_ = godotenv.Load() // best effort; env vars win anyway

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	phqTimeout, err := parseDuration("PHQ_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	googleTimeout, err := parseDuration("GOOGLE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	kafkaBrokers := parseList(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CORSOrigins:     parseList(envOrDefault("CORS_ORIGINS", "*")),

		PageTitle: envOrDefault("PAGE_TITLE", "Location Insights"),

		PHQToken:   os.Getenv("PHQ_TOKEN"),
		PHQTimeout: phqTimeout,

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		GoogleTimeout:    googleTimeout,

		SuggestedRadiusIndustry: envOrDefault("SUGGESTED_RADIUS_INDUSTRY", domain.DefaultIndustry),

		RadiusCacheSize:   parseSize("RADIUS_CACHE_SIZE", 1000),
		InsightsCacheSize: parseSize("INSIGHTS_CACHE_SIZE", 200),

		KafkaBrokers:     kafkaBrokers,
		KafkaLookupTopic: envOrDefault("KAFKA_LOOKUP_TOPIC", "insight-lookups"),
		KafkaEnabled:     kafkaEnabled,
	}

	if cfg.PHQToken == "" {
		return nil, errors.New("PHQ_TOKEN is required")
	}
	if cfg.GoogleMapsAPIKey == "" {
		return nil, errors.New("GOOGLE_MAPS_API_KEY is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseSize(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
