package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// Config holds everything the service reads from the environment.
type Config struct {
	Host     string
	Port     string
	DB       DB
	Location *time.Location

	JWTSecret string
	SeedFile  string
	LogLevel  string

	// settlement switches
	RateFallbackNeutral bool
	FullSangamLegs      bool
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	zone := getEnvWithDefault("APP_TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", zone, err)
	}

	cfg := &Config{
		Host: getEnvWithDefault("HOST", "127.0.0.1"),
		Port: getEnvWithDefault("PORT", "3000"),
		DB: DB{
			Host:        os.Getenv("DB_HOST"),
			Port:        getEnvWithDefault("DB_PORT", "5432"),
			User:        os.Getenv("DB_USER"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        os.Getenv("DB_NAME"),
			SSLMode:     getEnvWithDefault("DB_SSLMODE", "disable"),
			AutoMigrate: getBool("DB_AUTO_MIGRATE"),
		},
		Location:            loc,
		JWTSecret:           os.Getenv("JWT_SECRET"),
		SeedFile:            os.Getenv("SEED_FILE"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
		RateFallbackNeutral: getBool("RATE_FALLBACK_NEUTRAL"),
	}

	switch mode := strings.ToLower(getEnvWithDefault("FULL_SANGAM_MATCH", "single")); mode {
	case "single":
	case "legs":
		cfg.FullSangamLegs = true
	default:
		return nil, fmt.Errorf("invalid FULL_SANGAM_MATCH %q", mode)
	}

	if cfg.DB.Host == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
