// Package config reads the service configuration from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Joshua-Precious/Nutrical/internal/logger"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// ValidationError reports one broken configuration constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OIDC holds single sign-on settings. SSO is enabled when Issuer and
// ClientID are both set.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != ""
}

// Config is the full service configuration.
type Config struct {
	Addr        string
	WebDir      string
	Storage     string
	DatabaseURL string
	SQLitePath  string
	LogLevel    logger.Level
	DisableAuth bool
	OIDC        OIDC

	InitialUser     string
	InitialPassword string
}

// Load reads the given .env files (default ".env"; missing files are
// skipped), overlays the process environment and validates the result.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	fileVars := map[string]string{}
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	cfg, err := FromLookup(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVars[key]
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromLookup builds a Config from a key lookup, applying defaults. It only
// fails on values that cannot be parsed; use Validate for cross-field checks.
func FromLookup(get func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(get(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Addr:            env("ADDR", ":8080"),
		WebDir:          env("WEB_DIR", "web"),
		Storage:         strings.ToLower(env("STORAGE", StorageMemory)),
		DatabaseURL:     env("DATABASE_URL", ""),
		SQLitePath:      env("SQLITE_PATH", "nutrical.db"),
		InitialUser:     env("INITIAL_USER", ""),
		InitialPassword: get("INITIAL_PASSWORD"),
		OIDC: OIDC{
			Issuer:       env("OIDC_ISSUER", ""),
			ClientID:     env("OIDC_CLIENT_ID", ""),
			ClientSecret: env("OIDC_CLIENT_SECRET", ""),
			RedirectURL:  env("OIDC_REDIRECT_URL", ""),
		},
	}

	level, err := logger.ParseLevel(env("LOG_LEVEL", "normal"))
	if err != nil {
		return nil, ValidationError{Field: "LOG_LEVEL", Message: err.Error()}
	}
	cfg.LogLevel = level

	if v := env("DISABLE_AUTH", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, ValidationError{Field: "DISABLE_AUTH", Message: fmt.Sprintf("not a boolean: %q", v)}
		}
		cfg.DisableAuth = b
	}
	return cfg, nil
}

// Validate checks cross-field constraints and returns every violation joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if c.Addr == "" {
		add("ADDR", "must not be empty")
	}
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			add("DATABASE_URL", "required when STORAGE=postgres")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			add("SQLITE_PATH", "required when STORAGE=sqlite")
		}
	default:
		add("STORAGE", fmt.Sprintf("unknown backend %q (want memory, postgres or sqlite)", c.Storage))
	}
	if c.OIDC.Enabled() {
		if c.OIDC.ClientSecret == "" {
			add("OIDC_CLIENT_SECRET", "required when SSO is enabled")
		}
		if c.OIDC.RedirectURL == "" {
			add("OIDC_REDIRECT_URL", "required when SSO is enabled")
		}
	}
	if (c.InitialUser == "") != (c.InitialPassword == "") {
		add("INITIAL_USER", "INITIAL_USER and INITIAL_PASSWORD must be set together")
	}
	return errors.Join(errs...)
}
