package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/chrishsmith/sourcify-sub003/internal/oracle"
)

// LoadOracleConfig assembles the oracle client configuration. Precedence
// is Viper (config file or SOURCIFY_ env vars) first, then provider
// specific environment variables, then defaults. An empty provider or
// API key is returned as-is; the caller decides whether the oracle is
// required.
func LoadOracleConfig() oracle.Config {
	cfg := oracle.Config{
		Provider:    viper.GetString("oracle.provider"),
		APIKey:      viper.GetString("oracle.api_key"),
		Model:       viper.GetString("oracle.model"),
		MaxRetries:  viper.GetInt("oracle.max_retries"),
		RateLimit:   viper.GetInt("oracle.rate_limit"),
		Temperature: viper.GetFloat64("oracle.temperature"),
		MaxTokens:   viper.GetInt("oracle.max_tokens"),
	}

	if d := viper.GetDuration("oracle.retry_delay"); d > 0 {
		cfg.RetryDelay = d
	}
	if d := viper.GetDuration("oracle.cache_ttl"); d > 0 {
		cfg.CacheTTL = d
	} else {
		cfg.CacheTTL = 15 * time.Minute
	}

	if cfg.Provider == "" {
		cfg.Provider = "anthropic"
	}
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg
}
