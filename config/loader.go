package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	oway "github.com/oway-inc/oway-go"
	owayerrors "github.com/oway-inc/oway-go/errors"
)

const envPrefix = "OWAY"

// LoaderConfig holds optional overrides for Load.
type LoaderConfig struct {
	// EnvFile is an explicit .env path. When empty, Load searches the
	// standard locations and silently skips a missing file.
	EnvFile string
}

// Option is a functional option for Load.
type Option func(*LoaderConfig)

// WithEnvFile sets an explicit .env file path. Unlike the default search, a
// file set here must exist.
func WithEnvFile(path string) Option {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads client configuration from OWAY_* environment variables into an
// oway.Config. Credential presence is checked by oway.New, not here, so a
// partially configured environment still loads.
func Load(opts ...Option) (oway.Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if err := loadEnvFile(lc.EnvFile); err != nil {
		return oway.Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfg := oway.Config{
		ClientID:     v.GetString("client_id"),
		ClientSecret: v.GetString("client_secret"),
		APIKey:       v.GetString("api_key"),
		BaseURL:      v.GetString("base_url"),
		TokenURL:     v.GetString("token_url"),
		Debug:        v.GetBool("debug"),
	}

	if s := v.GetString("max_retries"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return oway.Config{}, owayerrors.Configuration(
				fmt.Sprintf("%s_MAX_RETRIES must be an integer (got: %q)", envPrefix, s))
		}
		cfg.MaxRetries = n
	}

	if s := v.GetString("timeout"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms <= 0 {
			return oway.Config{}, owayerrors.Configuration(
				fmt.Sprintf("%s_TIMEOUT must be a positive integer of milliseconds (got: %q)", envPrefix, s))
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

// loadEnvFile loads a .env file into the process environment. Existing
// variables are never overwritten.
func loadEnvFile(explicit string) error {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return owayerrors.Configuration(
				fmt.Sprintf("load env file %s: %v", explicit, err))
		}
		return nil
	}

	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
	}
	return nil
}
