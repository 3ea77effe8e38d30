package config

// Config holds all application configuration.
// Settings are grouped by the component that consumes them.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"    validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth"        validate:"required"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Factory     FactoryConfig     `mapstructure:"factory"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	// AutoMigrate applies pending migrations during startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// Session backends accepted by AuthConfig.SessionBackend.
const (
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	SessionBackend       string `mapstructure:"session_backend"        validate:"required,oneof=postgres redis"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// RedisConfig is only required when sessions are kept in Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"gte=0"`
}

// AdminConfig describes the account bootstrapped with the admin role on startup.
// Bootstrap is skipped when Email is empty.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"    validate:"omitempty,email"`
	Password string `mapstructure:"password" validate:"required_with=Email"`
}

// FactoryConfig points at the pizza factory that fulfils orders.
// Orders are stored without fulfilment when URL is empty.
type FactoryConfig struct {
	URL            string `mapstructure:"url"             validate:"omitempty,url"`
	APIKey         string `mapstructure:"api_key"         validate:"required_with=URL"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// RateLimitConfig bounds the request rate of the unauthenticated auth endpoints per client.
type RateLimitConfig struct {
	AuthRequestsPerSecond float64 `mapstructure:"auth_requests_per_second" validate:"gte=0"`
	AuthBurst             int     `mapstructure:"auth_burst"               validate:"gte=0"`
}

// MaintenanceConfig controls periodic housekeeping.
type MaintenanceConfig struct {
	SessionPurgeSchedule string `mapstructure:"session_purge_schedule"`
}
