// Package config loads runtime configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need to start.
type Config struct {
	Exchange ExchangeConfig
	Log      LogConfig
	WebUI    WebUIConfig
}

// ExchangeConfig holds the Bybit credentials and environment toggles.
type ExchangeConfig struct {
	APIKey    string
	APISecret string
	Testnet   bool
	Demo      bool
}

// LogConfig controls the log level and optional file output.
type LogConfig struct {
	Level string // logrus level name, default "info"
	File  string // empty disables file logging
}

// WebUIConfig holds the web interface listen address.
type WebUIConfig struct {
	ListenAddr string
}

// Load reads configuration from the environment. When envFile is
// non-empty it is loaded first; a missing default .env is not an
// error, only an explicitly named file is required to exist.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BYBIT_API_KEY"),
			APISecret: os.Getenv("BYBIT_API_SECRET"),
			Testnet:   getEnvBool("BYBIT_TESTNET", false),
			Demo:      getEnvBool("BYBIT_DEMO", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		WebUI: WebUIConfig{
			ListenAddr: getEnv("WEBUI_ADDR", ":8080"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the credentials are present. Missing credentials
// are the only fatal configuration error; everything else has defaults.
func (c *Config) Validate() error {
	if c.Exchange.APIKey == "" {
		return fmt.Errorf("BYBIT_API_KEY is not set")
	}
	if c.Exchange.APISecret == "" {
		return fmt.Errorf("BYBIT_API_SECRET is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
