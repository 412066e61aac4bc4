package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FINSEC_"

// WorkersKey names the variable, after EnvPrefix, that sets ValuationWorkers.
const WorkersKey = "WORKERS"

// Config holds solver parameters and the runtime settings of the CLI.
type Config struct {
	// ConvergenceTolerance is the price tolerance for Newton-Raphson convergence
	// in yield solving.
	ConvergenceTolerance float64

	// MaxYieldIterations is the maximum iterations for yield solving.
	MaxYieldIterations int

	// YieldFloor and YieldCeiling clamp Newton steps.
	YieldFloor   float64
	YieldCeiling float64

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, Newton iteration stops to avoid division by near-zero.
	DerivativeThreshold float64

	// ValuationWorkers bounds concurrent instrument valuation.
	ValuationWorkers int

	LogLevel  string
	LogFormat string
	Env       string // development, staging, production
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ConvergenceTolerance: 1e-12,
	MaxYieldIterations:   100,
	YieldFloor:           -0.05,
	YieldCeiling:         0.50,
	DerivativeThreshold:  1e-15,
	ValuationWorkers:     4,
	LogLevel:             "info",
	LogFormat:            "json",
	Env:                  "development",
}

var (
	mu  sync.RWMutex
	cfg = DefaultConfig
)

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Load reads an optional .env file and FINSEC_* variables on top of
// DefaultConfig. A missing .env file is not an error; a malformed one is.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	d := DefaultConfig
	c := &Config{
		ConvergenceTolerance: getEnvAsFloat("CONVERGENCE_TOLERANCE", d.ConvergenceTolerance),
		MaxYieldIterations:   getEnvAsInt("MAX_YIELD_ITERATIONS", d.MaxYieldIterations),
		YieldFloor:           getEnvAsFloat("YIELD_FLOOR", d.YieldFloor),
		YieldCeiling:         getEnvAsFloat("YIELD_CEILING", d.YieldCeiling),
		DerivativeThreshold:  getEnvAsFloat("DERIVATIVE_THRESHOLD", d.DerivativeThreshold),
		ValuationWorkers:     getEnvAsInt(WorkersKey, d.ValuationWorkers),
		LogLevel:             getEnv("LOG_LEVEL", d.LogLevel),
		LogFormat:            getEnv("LOG_FORMAT", d.LogFormat),
		Env:                  getEnv("ENV", d.Env),
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Validate checks the invariants Load relies on.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.ValuationWorkers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.ValuationWorkers)
	}
	if c.MaxYieldIterations < 1 {
		return fmt.Errorf("MAX_YIELD_ITERATIONS must be at least 1, got %d", c.MaxYieldIterations)
	}
	if c.ConvergenceTolerance <= 0 {
		return fmt.Errorf("CONVERGENCE_TOLERANCE must be positive")
	}
	if c.YieldFloor >= c.YieldCeiling {
		return fmt.Errorf("YIELD_FLOOR %v must be below YIELD_CEILING %v", c.YieldFloor, c.YieldCeiling)
	}
	return nil
}

func loadEnvFile() error {
	path := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}
