package config

import (
	"time"

	dErrors "notarium/pkg/domain-errors"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Directory DirectoryConfig `yaml:"directory"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	Environment     string        `yaml:"environment"      env:"SERVER_ENVIRONMENT"      env-default:"development"`
	// TrustedProxies lists CIDR prefixes allowed to set X-Forwarded-For.
	TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN selects the in-memory stores (demo mode).
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"               env:"DATABASE_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DATABASE_MAX_OPEN_CONNS"    env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DATABASE_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" env-default:"5m"`
}

// AuthConfig holds authentication and authorization settings.
type AuthConfig struct {
	JWTSigningKey string        `yaml:"jwt_signing_key"  env:"AUTH_JWT_SIGNING_KEY" env-default:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"      env-default:"notarium"`
	TokenTTL      time.Duration `yaml:"token_ttl"        env:"AUTH_TOKEN_TTL"       env-default:"15m"`
	// AdminTokenHash is the bcrypt hash of the operator admin token
	// (generate with cmd/admintoken). Empty disables the operator token path.
	AdminTokenHash string `yaml:"admin_token_hash" env:"AUTH_ADMIN_TOKEN_HASH"`
	// AdminEmails is a comma-separated static allowlist of admin emails.
	AdminEmails string `yaml:"admin_emails" env:"AUTH_ADMIN_EMAILS"`
}

// DirectoryConfig tunes the directory listing pipeline.
type DirectoryConfig struct {
	FetchLimit      int  `yaml:"fetch_limit"       env:"DIRECTORY_FETCH_LIMIT"       env-default:"200"`
	DefaultPageSize int  `yaml:"default_page_size" env:"DIRECTORY_DEFAULT_PAGE_SIZE" env-default:"9"`
	MaxPageSize     int  `yaml:"max_page_size"     env:"DIRECTORY_MAX_PAGE_SIZE"     env-default:"50"`
	FeaturedCount   int  `yaml:"featured_count"    env:"DIRECTORY_FEATURED_COUNT"    env-default:"6"`
	SeedDemo        bool `yaml:"seed_demo"         env:"DIRECTORY_SEED_DEMO"         env-default:"false"`
	SeedCount       int  `yaml:"seed_count"        env:"DIRECTORY_SEED_COUNT"        env-default:"24"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Validate checks cross-field constraints that cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Directory.FetchLimit < 1 {
		return dErrors.New(dErrors.CodeValidation, "directory fetch_limit must be at least 1")
	}
	if c.Directory.DefaultPageSize < 1 {
		return dErrors.New(dErrors.CodeValidation, "directory default_page_size must be at least 1")
	}
	if c.Directory.MaxPageSize < c.Directory.DefaultPageSize {
		return dErrors.New(dErrors.CodeValidation, "directory max_page_size must not be smaller than default_page_size")
	}
	if c.Directory.FeaturedCount < 1 {
		return dErrors.New(dErrors.CodeValidation, "directory featured_count must be at least 1")
	}
	if c.Auth.JWTSigningKey == "" {
		return dErrors.New(dErrors.CodeValidation, "auth jwt_signing_key is required")
	}
	return nil
}
