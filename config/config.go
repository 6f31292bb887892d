// Package config loads the process-wide settings once at startup.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config is built once in main and handed to the components that need it.
// Nothing reads the environment after Load returns.
type Config struct {
	Port              string
	MongoURI          string
	DatabaseName      string
	DatabaseDriver    string
	JWTSecret         []byte
	BcryptCost        int
	PasswordMinLength int
	AllowedOrigins    []string
	LogFile           string
	GinMode           string
	SeedEmail         string
	SeedPassword      string
}

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// LoadDefaults fills in development defaults. JWTSecret has no default.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.MongoURI = "mongodb://localhost:27017"
	c.DatabaseName = "TodoApp"
	c.DatabaseDriver = DriverMongo
	c.BcryptCost = bcrypt.DefaultCost
	c.PasswordMinLength = 6
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function over the defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		cfg.Port = v
	}
	if v := strings.TrimSpace(getenv("MONGODB_URI")); v != "" {
		cfg.MongoURI = v
	}
	if v := strings.TrimSpace(getenv("DATABASE_NAME")); v != "" {
		cfg.DatabaseName = v
	}
	if v := strings.ToLower(strings.TrimSpace(getenv("DATABASE_DRIVER"))); v != "" {
		if v != DriverMongo && v != DriverMemory {
			return nil, errors.New("DATABASE_DRIVER must be \"mongo\" or \"memory\"")
		}
		cfg.DatabaseDriver = v
	}

	secret := getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	cfg.JWTSecret = []byte(secret)

	cfg.BcryptCost = parseIntDefault(getenv("BCRYPT_COST"), cfg.BcryptCost)
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	cfg.PasswordMinLength = parseIntDefault(getenv("PASSWORD_MIN_LENGTH"), cfg.PasswordMinLength)
	if cfg.PasswordMinLength < 1 {
		cfg.PasswordMinLength = 6
	}

	for _, origin := range strings.Split(getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cfg.LogFile = strings.TrimSpace(getenv("LOG_FILE"))
	cfg.GinMode = strings.TrimSpace(getenv("GIN_MODE"))
	cfg.SeedEmail = strings.TrimSpace(getenv("SEED_EMAIL"))
	cfg.SeedPassword = getenv("SEED_PASSWORD")

	return cfg, nil
}

func parseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
