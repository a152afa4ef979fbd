package file

import (
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
)

// Ensure EnvStore implements the interface.
var _ driven.ConfigStore = (*EnvStore)(nil)

// EnvBindings maps config keys to the environment variables that override them.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
var EnvBindings = map[string]string{
	"api.key":                   "GOOGLE_API_KEY",
	"api.base_url":              "API_BASE_URL",
	"api.timeout":               "API_TIMEOUT",
	"api.max_retries":           "API_MAX_RETRIES",
	"api.retry_delay":           "API_RETRY_DELAY",
	"api.max_retry_delay":       "API_MAX_RETRY_DELAY",
	"upload.max_size":           "MAX_UPLOAD_SIZE",
	"upload.allowed_extensions": "ALLOWED_EXTENSIONS",
	"server.host":               "APP_HOST",
	"server.port":               "APP_PORT",
	"server.mcp_addr":           "MCP_ADDR",
	"server.rate_limit":         "RATE_LIMIT",
	"server.rate_burst":         "RATE_BURST",
	"log.level":                 "LOG_LEVEL",
}

// LookupFunc reports the value of an environment variable.
type LookupFunc func(name string) (string, bool)

// EnvStore overlays environment variables on a base ConfigStore.
// Reads prefer a set, non-empty variable; writes go to the base store only,
// so the environment is never persisted.
type EnvStore struct {
	base   driven.ConfigStore
	lookup LookupFunc
}

// WithEnv wraps base with the process environment.
func WithEnv(base driven.ConfigStore) *EnvStore {
	return WithLookup(base, os.LookupEnv)
}

// WithLookup wraps base with a custom variable source.
func WithLookup(base driven.ConfigStore, lookup LookupFunc) *EnvStore {
	return &EnvStore{base: base, lookup: lookup}
}

// FromEnv returns the environment override for key, if any.
func (s *EnvStore) FromEnv(key string) (string, bool) {
	name, ok := EnvBindings[key]
	if !ok {
		return "", false
	}
	val, ok := s.lookup(name)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}

// Get retrieves a value, preferring the environment.
func (s *EnvStore) Get(key string) (any, bool) {
	if val, ok := s.FromEnv(key); ok {
		return val, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string value, preferring the environment.
func (s *EnvStore) GetString(key string) string {
	if val, ok := s.FromEnv(key); ok {
		return val
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer value, preferring a valid environment value.
func (s *EnvStore) GetInt(key string) int {
	if val, ok := s.FromEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return s.base.GetInt(key)
}

// GetBool retrieves a boolean value, preferring a valid environment value.
func (s *EnvStore) GetBool(key string) bool {
	if val, ok := s.FromEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a list, reading environment values as comma-separated.
func (s *EnvStore) GetStringSlice(key string) []string {
	if val, ok := s.FromEnv(key); ok {
		return toStringSlice(val)
	}
	return s.base.GetStringSlice(key)
}

// Set stores a value in the base store.
func (s *EnvStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the base store.
func (s *EnvStore) Save() error {
	return s.base.Save()
}

// Load reloads the base store.
func (s *EnvStore) Load() error {
	return s.base.Load()
}

// Path returns the base store's path.
func (s *EnvStore) Path() string {
	return s.base.Path()
}
