package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	cacheDrivers   = map[string]bool{"memory": true, "redis": true, "none": true}
	storageDrivers = map[string]bool{"memory": true, "sqlite": true, "postgres": true, "mongo": true}
)

// Load reads configuration. An explicit path must exist; without one,
// config.yaml is looked up in ./configs and the working directory and
// defaults are used when it is missing. Environment variables such as
// SERVER_ADDRESS or CACHE_REDIS_ADDRESS override file values.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15000)
	v.SetDefault("server.write_timeout", 15000)
	v.SetDefault("server.idle_timeout", 60000)
	v.SetDefault("server.shutdown_timeout", 10000)

	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window_seconds", 60)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.redis_address", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl_seconds", 3600)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.database", "debt_tracker")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("explanation.api_key", "")
	v.SetDefault("explanation.api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("explanation.model", "gpt-4o-mini")
	v.SetDefault("explanation.timeout", 30000)
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Explanation.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Explanation.APIKey = val
		}
	}
	if cfg.Storage.DSN == "" {
		if val := os.Getenv("DATABASE_URL"); val != "" {
			cfg.Storage.DSN = val
		}
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate_limit.requests and rate_limit.window_seconds must be positive")
	}
	if !cacheDrivers[cfg.Cache.Driver] {
		return fmt.Errorf("unknown cache.driver %q", cfg.Cache.Driver)
	}
	if cfg.Cache.Driver == "redis" && cfg.Cache.RedisAddress == "" {
		return fmt.Errorf("cache.redis_address is required for the redis driver")
	}
	if !storageDrivers[cfg.Storage.Driver] {
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver != "memory" && cfg.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for the %s driver", cfg.Storage.Driver)
	}
	return nil
}
