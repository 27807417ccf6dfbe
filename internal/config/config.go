package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var (
	ErrUnknownDriver   = errors.New("unknown store driver")
	ErrMissingPostgres = errors.New("postgres driver needs DATABASE_URL or DB_HOST/DB_NAME")
	ErrMissingMongo    = errors.New("mongo driver needs MONGO_URI")
)

// Config holds all application configuration.
type Config struct {
	Port     string `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`

	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"inventory"`

	// Optional. When set, item events are fanned out through redis pub/sub.
	RedisURL string `env:"REDIS_URL"`

	JWTSecret     string `env:"JWT_SECRET,required,notEmpty"`
	SessionCookie string `env:"SESSION_COOKIE" envDefault:"session-token"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables, after an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected store driver has what it needs to connect.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
			return ErrMissingPostgres
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return ErrMissingMongo
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StoreDriver)
	}
	return nil
}

// PostgresDSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
