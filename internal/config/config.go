package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/forecast-etl/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaHourlyTopic string
	KafkaDailyTopic  string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Open-Meteo client.
	OpenMeteoBaseURL    string
	OpenMeteoTimeout    time.Duration
	OpenMeteoMaxRetries int
	ForecastDays        int
	RateLimitBurst      int
	RateLimitRefill     time.Duration

	// Sync job.
	SyncCron        string
	SyncOnStart     bool
	SyncConcurrency int
	Cadences        []domain.Cadence

	LocationsFile string
	Locations     []domain.Location
}

// Topic returns the sink topic for a cadence.
func (c *Config) Topic(cadence domain.Cadence) string {
	if cadence == domain.CadenceDaily {
		return c.KafkaDailyTopic
	}
	return c.KafkaHourlyTopic
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file (ENV_FILE, default ".env") is loaded first if present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(sharedcfg.EnvOrDefault("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	timeout, err := parsePositiveDuration("OPENMETEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	refill, err := parsePositiveDuration("RATE_LIMIT_REFILL", "30s")
	if err != nil {
		return nil, err
	}

	maxRetries, err := parseInt("OPENMETEO_MAX_RETRIES", 3, 0, 10)
	if err != nil {
		return nil, err
	}
	forecastDays, err := parseInt("FORECAST_DAYS", 7, 1, 16)
	if err != nil {
		return nil, err
	}
	burst, err := parseInt("RATE_LIMIT_BURST", 100, 1, 10000)
	if err != nil {
		return nil, err
	}
	concurrency, err := parseInt("SYNC_CONCURRENCY", 4, 1, 64)
	if err != nil {
		return nil, err
	}

	cadences, err := parseCadences(sharedcfg.EnvOrDefault("SYNC_CADENCES", "hourly,daily"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaHourlyTopic:   sharedcfg.EnvOrDefault("KAFKA_HOURLY_TOPIC", "forecast-hourly"),
		KafkaDailyTopic:    sharedcfg.EnvOrDefault("KAFKA_DAILY_TOPIC", "forecast-daily"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		OpenMeteoBaseURL:    sharedcfg.EnvOrDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenMeteoTimeout:    timeout,
		OpenMeteoMaxRetries: maxRetries,
		ForecastDays:        forecastDays,
		RateLimitBurst:      burst,
		RateLimitRefill:     refill,

		SyncCron:        sharedcfg.EnvOrDefault("SYNC_CRON", "0 5 * * * *"),
		SyncOnStart:     os.Getenv("SYNC_ON_START") == "true",
		SyncConcurrency: concurrency,
		Cadences:        cadences,

		LocationsFile: os.Getenv("LOCATIONS_FILE"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaHourlyTopic == "" {
		return nil, errors.New("KAFKA_HOURLY_TOPIC is required")
	}
	if cfg.KafkaDailyTopic == "" {
		return nil, errors.New("KAFKA_DAILY_TOPIC is required")
	}

	if cfg.LocationsFile != "" {
		locs, err := LoadLocations(cfg.LocationsFile)
		if err != nil {
			return nil, err
		}
		cfg.Locations = locs
	}

	return cfg, nil
}

type locationsFile struct {
	Locations []domain.Location `yaml:"locations" validate:"required,min=1,unique=ID,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadLocations reads and validates a YAML locations file.
func LoadLocations(path string) ([]domain.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var f locationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse locations file %s: %w", path, err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid locations file %s: %w", path, err)
	}
	return f.Locations, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be between %d and %d", key, lo, hi)
	}
	return n, nil
}

func parseCadences(s string) ([]domain.Cadence, error) {
	var out []domain.Cadence
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := domain.ParseCadence(part)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_CADENCES: %w", err)
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("SYNC_CADENCES is required")
	}
	return out, nil
}
