package config

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret and JWTSecret are optional. When empty a random key is
	// generated at startup, which invalidates all sessions and tokens from
	// previous runs.
	SessionSecret string `env:"SESSION_SECRET"`
	JWTSecret     string `env:"JWT_SECRET"`

	SQLite SQLiteConfig
	Seed   SeedConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=portal.sqlite"`
	// Reset deletes any pre-existing database file on startup. The schema
	// is recreated and reseeded from scratch; there is no migration story.
	Reset bool `env:"SQLITE_RESET, default=true"`
}

type SeedConfig struct {
	Username string `env:"SEED_USERNAME, default=example"`
	Password string `env:"SEED_PASSWORD, default=example"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// SessionKey returns the configured session secret, or a fresh random key
// when none is set.
func (c *Config) SessionKey() []byte {
	return secretOrRandom(c.SessionSecret)
}

// JWTKey returns the configured JWT secret, or a fresh random key when none
// is set.
func (c *Config) JWTKey() []byte {
	return secretOrRandom(c.JWTSecret)
}

func secretOrRandom(s string) []byte {
	if s != "" {
		return []byte(s)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("config: failed to generate secret: %v", err))
	}
	return key
}
