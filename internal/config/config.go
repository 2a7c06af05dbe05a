package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hoopsarchive/hoopsarchive/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for one pipeline invocation.
type Config struct {
	AppEnv      string `validate:"required,oneof=dev stage prod"`
	ServiceName string `validate:"required"`

	// DatabasePath is the embedded analytical database file; empty means an
	// in-memory database (useful for smoke runs).
	DatabasePath string
	CSVDir       string `validate:"required"`

	// NullStrings are the source sentinels normalized to NULL during CSV
	// ingestion.
	NullStrings []string `validate:"required,min=1"`

	IngestWorkers int `validate:"gte=1,lte=64"`

	ReconSampleSize    int     `validate:"gte=1"`
	ReconTolerance     float64 `validate:"gt=0"`
	ReconReferencePath string

	LogLevel logging.Level
}

var configValidator = validator.New()

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	ingestWorkers, err := getEnvAsInt("INGEST_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_WORKERS: %w", err)
	}

	sampleSize, err := getEnvAsInt("RECON_SAMPLE_SIZE", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECON_SAMPLE_SIZE: %w", err)
	}

	tolerance, err := getEnvAsFloat("RECON_TOLERANCE", 1.0)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECON_TOLERANCE: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "hoopsarchive-pipeline"),
		DatabasePath:       strings.TrimSpace(getEnv("DUCKDB_PATH", "data/hoarchive.duckdb")),
		CSVDir:             strings.TrimSpace(getEnv("CSV_DIR", "csv")),
		NullStrings:        splitNullStrings(getEnv("CSV_NULL_STRINGS", ",NA,null")),
		IngestWorkers:      ingestWorkers,
		ReconSampleSize:    sampleSize,
		ReconTolerance:     tolerance,
		ReconReferencePath: strings.TrimSpace(getEnv("RECON_REFERENCE_PATH", "")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// splitNullStrings keeps the empty string when the raw value starts or ends
// with a comma; the empty string is itself a null sentinel in the sources.
func splitNullStrings(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}

	return out
}
