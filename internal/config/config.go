package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSOrigins lists the origins allowed to call the API from a browser.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs login tokens. When empty the server generates a random
	// secret at startup, so issued tokens stop validating after a restart.
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	// TokenLifetimeMinutes is how long a login token stays valid.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gte=1,lte=10080"`
	// BcryptCost is the work factor used when hashing new passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	// ProtectTasks requires a bearer token on every task route.
	ProtectTasks bool `mapstructure:"protect_tasks"`
}

// CacheConfig configures the optional redis cache for task reads.
// The cache is disabled when RedisAddr is empty.
type CacheConfig struct {
	RedisAddr     string `mapstructure:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	TTLSeconds    int    `mapstructure:"ttl_seconds" validate:"gte=1"`
}

// Enabled reports whether a redis address has been configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
