package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Mail    MailConfig
	Upload  UploadConfig
	Seed    SeedConfig
}

type SessionConfig struct {
	Secret     string        `env:"JWT_SECRET, required"`
	TTL        time.Duration `env:"SESSION_TTL,      default=24h"`
	CookieName string        `env:"SESSION_COOKIE,   default=token"`
	Denylist   bool          `env:"SESSION_DENYLIST, default=false"`
}

type AuthConfig struct {
	BcryptCost      int    `env:"BCRYPT_COST,       default=10"`
	AdminSignupCode string `env:"ADMIN_SIGNUP_CODE"`
	HelpAdminOnly   bool   `env:"HELP_ADMIN_ONLY,   default=false"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=recruitment_portal"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig is optional; an empty Addr leaves Redis unused.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type MailConfig struct {
	Host       string        `env:"SMTP_HOST"`
	Port       int           `env:"SMTP_PORT,     default=587"`
	Username   string        `env:"SMTP_USERNAME"`
	Password   string        `env:"SMTP_PASSWORD"`
	From       string        `env:"MAIL_FROM"`
	To         string        `env:"MAIL_TO"`
	HelpDeskTo string        `env:"HELP_DESK_TO"`
	Timeout    time.Duration `env:"MAIL_TIMEOUT,  default=15s"`
}

type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR,        default=./public/uploads"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX, default=/uploads"`
	MaxBytes  int64  `env:"UPLOAD_MAX_BYTES,  default=5242880"`
}

type SeedConfig struct {
	OnStart       bool   `env:"SEED_ON_START,       default=false"`
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// IsProduction reports whether ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.Session.Denylist && c.Redis.Addr == "" {
		return errors.New("SESSION_DENYLIST requires REDIS_ADDR")
	}
	if c.Seed.OnStart && c.Seed.AdminEmail != "" && c.Seed.AdminPassword == "" {
		return errors.New("SEED_ADMIN_EMAIL requires SEED_ADMIN_PASSWORD")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// LoadWith resolves configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(log zerolog.Logger) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env file")
	}

	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}
