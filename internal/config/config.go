package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"time"
)

// DefaultBackendURL is used when no backend URL is configured.
// Matches the local development default of the reTeach backend.
const DefaultBackendURL = "http://localhost:8000"

// Config holds all client configuration.
type Config struct {
	// BackendURL is the base URL of the reTeach backend API.
	BackendURL string

	// TeacherEmail attributes created forms and scopes overview/delete
	// calls. Required for dashboard and publish operations.
	TeacherEmail string

	// TeacherName is sent with publish requests when set.
	TeacherName string

	// Timeout is the per-request HTTP timeout. Default: 30s.
	Timeout time.Duration

	// DBPath overrides the session recovery database location.
	// Empty means the XDG default path.
	DBPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BackendURL: DefaultBackendURL,
		Timeout:    30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("RETEACH_BACKEND_URL"); u != "" {
		cfg.BackendURL = u
	}
	if e := os.Getenv("RETEACH_TEACHER_EMAIL"); e != "" {
		cfg.TeacherEmail = e
	}
	if n := os.Getenv("RETEACH_TEACHER_NAME"); n != "" {
		cfg.TeacherName = n
	}
	if t := os.Getenv("RETEACH_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if p := os.Getenv("RETEACH_DB"); p != "" {
		cfg.DBPath = p
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend URL: %q", c.BackendURL)
	}
	if c.TeacherEmail != "" {
		if _, err := mail.ParseAddress(c.TeacherEmail); err != nil {
			return fmt.Errorf("invalid teacher email %q: %w", c.TeacherEmail, err)
		}
	}
	return nil
}

// RequireTeacher returns an error when no teacher email is configured.
// Operations that attribute or scope data by teacher call this first.
func (c Config) RequireTeacher() error {
	if c.TeacherEmail == "" {
		return fmt.Errorf("RETEACH_TEACHER_EMAIL is required for this operation")
	}
	return nil
}
