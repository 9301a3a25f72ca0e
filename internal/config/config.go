// Package config loads reattach settings from a YAML (or JSON) file, an
// optional .env file and REATTACH_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the resolved application configuration.
type Config struct {
	LogLevel    string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	Mode        string        `yaml:"mode" validate:"omitempty,oneof=reattach reattach-overrides reattachInstance copyOverrides"`
	FontTimeout time.Duration `yaml:"font_timeout" validate:"gte=0"`
	Store       StoreConfig   `yaml:"store"`
	HTTP        HTTPConfig    `yaml:"http"`
	Lock        LockConfig    `yaml:"lock"`
}

// StoreConfig selects where run reports are kept.
type StoreConfig struct {
	Driver        string        `yaml:"driver" validate:"oneof=none memory file redis sqlite"`
	Path          string        `yaml:"path" validate:"required_if=Driver sqlite"`
	RedisAddr     string        `yaml:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db" validate:"gte=0"`
	TTL           time.Duration `yaml:"ttl" validate:"gte=0"`

	// EncryptionKey is a base64 AES-256 key. When set, reports are sealed at rest.
	EncryptionKey string `yaml:"encryption_key" validate:"omitempty,base64"`
	// FallbackKeys decrypt reports sealed before a key rotation.
	FallbackKeys []string `yaml:"fallback_keys" validate:"dive,base64"`
	// Redact lists regular expressions masked out of reports before they are stored.
	Redact []string `yaml:"redact"`
}

// HTTPConfig configures `reattach serve`.
type HTTPConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// LockConfig configures distributed locking.
type LockConfig struct {
	TTL time.Duration `yaml:"ttl" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Mode:     "reattach",
		Store:    StoreConfig{Driver: "none"},
		HTTP:     HTTPConfig{Port: 8080},
		Lock:     LockConfig{TTL: 30 * time.Second},
	}
}

var validate = validator.New()

// Load resolves the configuration. path may be empty. When no env files are
// given, ./.env is read if it exists; variables already set in the process
// environment are never overwritten by it.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// YAML is a superset of JSON, so one decoder serves both.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("config %s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.Join(msgs...)
		}
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("REATTACH_LOG_LEVEL", &cfg.LogLevel)
	str("REATTACH_MODE", &cfg.Mode)
	str("REATTACH_STORE_DRIVER", &cfg.Store.Driver)
	str("REATTACH_STORE_PATH", &cfg.Store.Path)
	str("REATTACH_REDIS_ADDR", &cfg.Store.RedisAddr)
	str("REATTACH_REDIS_PASSWORD", &cfg.Store.RedisPassword)
	str("REATTACH_STORE_KEY", &cfg.Store.EncryptionKey)

	return errors.Join(
		num("REATTACH_REDIS_DB", &cfg.Store.RedisDB),
		num("REATTACH_HTTP_PORT", &cfg.HTTP.Port),
		dur("REATTACH_FONT_TIMEOUT", &cfg.FontTimeout),
		dur("REATTACH_STORE_TTL", &cfg.Store.TTL),
		dur("REATTACH_LOCK_TTL", &cfg.Lock.TTL),
	)
}
