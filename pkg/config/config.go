package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

const developmentSecretKey = "development-secret-key"

type Config struct {
	Port          string
	Env           string
	DBDriver      string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	SecretKey     string
	FormTokenTTL  time.Duration

	formTokenTTLErr error
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "5003"),
		Env:           getEnv("ENV", "development"),
		DBDriver:      getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL:   getEnv("DATABASE_URL", "posts.db"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "blog"),
		SecretKey:     getEnv("SECRET_KEY", ""),
	}
	cfg.FormTokenTTL, cfg.formTokenTTLErr = time.ParseDuration(getEnv("FORM_TOKEN_TTL", "1h"))

	if cfg.SecretKey == "" && cfg.IsDevelopment() {
		log.Println("SECRET_KEY not set, using the development key.")
		cfg.SecretKey = developmentSecretKey
	}
	return cfg
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the settings needed to start the server
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable not set")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY environment variable not set")
	}
	if c.formTokenTTLErr != nil {
		return fmt.Errorf("invalid FORM_TOKEN_TTL: %w", c.formTokenTTLErr)
	}
	if c.FormTokenTTL <= 0 {
		return fmt.Errorf("invalid FORM_TOKEN_TTL %s: must be positive", c.FormTokenTTL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
