package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	FactoryName     string   `validate:"required"`
	Port            int      `validate:"min=1,max=65535"`
	APIKey          string   // empty disables API key authentication
	TrustedProxies  []string `validate:"dive,ip"`
	LogLevel        string   `validate:"oneof=debug info warn warning error"`
	LogFormat       string   `validate:"oneof=json text"`
	LogDir          string   // empty logs to stdout only
	Environment     string   `validate:"required"`
	Version         string
	StoreDriver     string `validate:"oneof=sqlite pgx none"`
	StoreDSN        string `validate:"required_if=StoreDriver pgx"`
	ModPath         string
	AliasesPath     string
	AIStrategy      string `validate:"oneof=balanced aggressive conservative"`
	AIEnabled       bool
	AIIntervalHours int `validate:"min=1"`
	AISeed          int64
	AutosaveSlot    string
	StartTime       time.Time
	DeadLetterPath  string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		FactoryName:    getEnv(EnvFactoryName, DefaultFactoryName),
		APIKey:         getEnv(EnvAPIKey, ""),
		TrustedProxies: splitList(getEnv(EnvTrustedProxies, "")),
		LogLevel:       strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:      strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:         getEnv(EnvLogDir, ""),
		Environment:    getEnv(EnvEnvironment, DefaultEnvironment),
		Version:        getEnv(EnvVersion, DefaultVersion),
		StoreDriver:    getEnv(EnvStoreDriver, DefaultStoreDriver),
		StoreDSN:       getEnv(EnvStoreDSN, ""),
		ModPath:        getEnv(EnvModPath, ""),
		AliasesPath:    getEnv(EnvAliasesPath, DefaultAliasesPath),
		AIStrategy:     strings.ToLower(getEnv(EnvAIStrategy, DefaultAIStrategy)),
		AutosaveSlot:   getEnv(EnvAutosaveSlot, DefaultAutosaveSlot),
		DeadLetterPath: getEnv(EnvEventDeadLetterLog, DefaultDeadLetterPath),
	}
	if cfg.StoreDSN == "" && cfg.StoreDriver == DefaultStoreDriver {
		cfg.StoreDSN = DefaultStoreDSN
	}

	var err error
	if cfg.Port, err = getEnvInt(EnvPort, DefaultPort); err != nil {
		return nil, err
	}
	if cfg.AIIntervalHours, err = getEnvInt(EnvAIIntervalHours, DefaultAIIntervalHours); err != nil {
		return nil, err
	}
	if cfg.AIEnabled, err = getEnvBool(EnvAIEnabled, true); err != nil {
		return nil, err
	}
	if raw := getEnv(EnvAISeed, ""); raw != "" {
		if cfg.AISeed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvAISeed, err)
		}
	}
	if raw := getEnv(EnvStartTime, ""); raw != "" {
		if cfg.StartTime, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvStartTime, err)
		}
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// AIInterval is the operator cadence in simulated time
func (c *Config) AIInterval() time.Duration {
	return time.Duration(c.AIIntervalHours) * time.Hour
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
