package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds the app configuration. Values come from .config.json when
// present, then get overridden by environment variables.
type Config struct {
	Port     int            `json:"port" env:"PORT"`
	Env      string         `json:"env" env:"ENV"`
	Pepper   string         `json:"pepper" env:"PEPPER"`
	HMACKey  string         `json:"hmac_key" env:"HMAC_KEY"`
	CSRFKey  string         `json:"csrf_key" env:"CSRF_KEY"`
	Database PostgresConfig `json:"database"`
}

// IsProd reports whether we're running in production.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// PostgresConfig holds the database connection configuration.
type PostgresConfig struct {
	Host     string `json:"host" env:"DB_HOST"`
	Port     int    `json:"port" env:"DB_PORT"`
	User     string `json:"user" env:"DB_USER"`
	Password string `json:"password" env:"DB_PASSWORD"`
	Name     string `json:"name" env:"DB_NAME"`
}

// ConnectionInfo builds the postgres connection string.
func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable",
			pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

// DefaultConfig returns the configuration of the default dev setup.
func DefaultConfig() Config {
	return Config{
		Port:     3000,
		Env:      "dev",
		Pepper:   "secret-random-string",
		HMACKey:  "secret-hmac-key",
		Database: DefaultPostgresConfig(),
	}
}

// DefaultPostgresConfig returns the database configuration of the default dev setup.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host: "localhost",
		Port: 5432,
		User: "postgres",
		Name: "socialnet",
	}
}

// LoadConfig loads configuration from a .config.json file if present,
// otherwise it uses the default dev setup. In production the file is
// required and the app refuses to start without it. Environment variables
// override either source.
func LoadConfig(prod bool) Config {
	c := DefaultConfig()
	f, err := os.Open(".config.json")
	if err != nil {
		if prod {
			panic("a .config.json file is required in production")
		}
		slog.Info("no .config.json found, using default dev config")
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&c); err != nil {
			panic(err)
		}
		slog.Info("loaded .config.json")
	}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}
	return c
}
