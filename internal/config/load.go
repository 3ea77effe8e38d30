package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads,
// e.g. PIZZA_DATABASE_URL or PIZZA_AUTH_JWT_SECRET.
const EnvPrefix = "PIZZA"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvironment(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags and the cross-field rules that tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Auth.SessionBackend == SessionBackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("config validation failed: redis.addr is required for the redis session backend")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.token_lifetime_minutes", 24*60)
	v.SetDefault("auth.session_backend", SessionBackendPostgres)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("admin.name", "pizza admin")
	v.SetDefault("factory.timeout_seconds", 10)

	v.SetDefault("rate_limit.auth_requests_per_second", 5)
	v.SetDefault("rate_limit.auth_burst", 20)

	v.SetDefault("maintenance.session_purge_schedule", "@hourly")
}

// bindEnvironment registers every key without a default so that AutomaticEnv
// picks it up during Unmarshal.
func bindEnvironment(v *viper.Viper) {
	keys := []string{
		"database.url",
		"auth.jwt_secret",
		"redis.addr",
		"redis.password",
		"redis.db",
		"admin.email",
		"admin.password",
		"factory.url",
		"factory.api_key",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
