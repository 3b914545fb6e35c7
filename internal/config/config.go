// Package config loads runtime settings from the environment,
// applying development defaults for everything except secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the moviedesk server.
//
// Fields:
//   - DBHost/DBPort/DBUser/DBPass/DBName: PostgreSQL connection settings.
//   - ListenAddr: bind address for the HTTP endpoint.
//   - JWTSecret: HMAC secret for signing bearer tokens (HS256). Required.
//   - JWTTTL: bearer token lifetime.
//   - SessionCookie: name of the session cookie.
//   - SessionSecret: HMAC secret for signing session cookie values. Required.
//   - SessionTTL: server-side session lifetime.
//   - BcryptCost: cost factor for password hashing.
type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	ListenAddr    string
	JWTSecret     string
	JWTTTL        time.Duration
	SessionCookie string
	SessionSecret string
	SessionTTL    time.Duration
	BcryptCost    int
}

// loadDefaults populates Config with development defaults.
// Secrets have no default and must come from the environment.
func (c *Config) loadDefaults() {
	c.DBHost = "localhost"
	c.DBPort = "5432"
	c.DBUser = "postgres"
	c.DBPass = "postgres"
	c.DBName = "moviedesk"
	c.ListenAddr = ":8080"
	c.JWTTTL = 365 * 24 * time.Hour
	c.SessionCookie = "sid"
	c.SessionTTL = 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
}

// Load builds a Config from defaults overlaid by environment variables.
// It fails if JWT_SECRET or SESSION_SECRET is unset: signing keys must be
// provisioned externally, never shipped as literals.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.loadDefaults()

	overlay(&cfg.DBHost, "DB_HOST")
	overlay(&cfg.DBPort, "DB_PORT")
	overlay(&cfg.DBUser, "DB_USER")
	overlay(&cfg.DBPass, "DB_PASS")
	overlay(&cfg.DBName, "DB_NAME")
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}
	overlay(&cfg.JWTSecret, "JWT_SECRET")
	overlay(&cfg.SessionSecret, "SESSION_SECRET")
	overlay(&cfg.SessionCookie, "SESSION_COOKIE_NAME")
	if err := overlayDuration(&cfg.JWTTTL, "JWT_TTL"); err != nil {
		return nil, err
	}
	if err := overlayDuration(&cfg.SessionTTL, "SESSION_TTL"); err != nil {
		return nil, err
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	return cfg, nil
}

// DSN assembles a pgx-compatible PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
