package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyAPIKey            = "api.key"
	KeyBaseURL           = "api.base_url"
	KeyTimeout           = "api.timeout"
	KeyMaxRetries        = "api.max_retries"
	KeyRetryDelay        = "api.retry_delay"
	KeyMaxRetryDelay     = "api.max_retry_delay"
	KeyMaxUploadSize     = "upload.max_size"
	KeyAllowedExtensions = "upload.allowed_extensions"
	KeyHost              = "server.host"
	KeyPort              = "server.port"
	KeyMCPAddr           = "server.mcp_addr"
	KeyRateLimit         = "server.rate_limit"
	KeyRateBurst         = "server.rate_burst"
	KeyLogLevel          = "log.level"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindDuration
	kindList
)

var settingKinds = map[string]valueKind{
	KeyAPIKey:            kindString,
	KeyBaseURL:           kindString,
	KeyTimeout:           kindDuration,
	KeyMaxRetries:        kindInt,
	KeyRetryDelay:        kindDuration,
	KeyMaxRetryDelay:     kindDuration,
	KeyMaxUploadSize:     kindInt,
	KeyAllowedExtensions: kindList,
	KeyHost:              kindString,
	KeyPort:              kindInt,
	KeyMCPAddr:           kindString,
	KeyRateLimit:         kindFloat,
	KeyRateBurst:         kindInt,
	KeyLogLevel:          kindString,
}

// SettingsService builds application settings from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get builds the current settings. Unset or unparsable keys take their default.
func (s *SettingsService) Get() (domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := domain.Settings{
		APIKey:            strings.TrimSpace(s.getString(KeyAPIKey, "")),
		BaseURL:           strings.TrimRight(s.getString(KeyBaseURL, d.BaseURL), "/"),
		Timeout:           s.getDuration(KeyTimeout, d.Timeout),
		MaxRetries:        s.getInt(KeyMaxRetries, d.MaxRetries),
		RetryDelay:        s.getDuration(KeyRetryDelay, d.RetryDelay),
		MaxRetryDelay:     s.getDuration(KeyMaxRetryDelay, d.MaxRetryDelay),
		MaxUploadSize:     int64(s.getInt(KeyMaxUploadSize, int(d.MaxUploadSize))),
		AllowedExtensions: s.getExtensions(d.AllowedExtensions),
		Host:              s.getString(KeyHost, d.Host),
		Port:              s.getInt(KeyPort, d.Port),
		MCPAddr:           s.getString(KeyMCPAddr, ""),
		LogLevel:          strings.ToLower(s.getString(KeyLogLevel, d.LogLevel)),
		RateLimit:         s.getFloat(KeyRateLimit, d.RateLimit),
		RateBurst:         s.getInt(KeyRateBurst, d.RateBurst),
	}

	if settings.Port <= 0 || settings.Port > 65535 {
		return settings, fmt.Errorf("%w: port %d out of range", domain.ErrInvalidInput, settings.Port)
	}
	if settings.MaxRetries < 1 {
		return settings, fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, KeyMaxRetries)
	}
	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Set validates value against the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		stored = int64(n)
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		stored = f
	case kindDuration:
		if _, ok := parseDuration(value); !ok {
			return fmt.Errorf("%w: %s must be a duration or seconds", domain.ErrInvalidInput, key)
		}
		stored = strings.TrimSpace(value)
	case kindList:
		stored = domain.ParseExtensions(value)
	default:
		stored = value
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns where settings are persisted.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, def string) string {
	val, ok := s.configStore.Get(key)
	if !ok {
		return def
	}
	str, ok := val.(string)
	if !ok || strings.TrimSpace(str) == "" {
		return def
	}
	return str
}

func (s *SettingsService) getInt(key string, def int) int {
	val, ok := s.configStore.Get(key)
	if !ok {
		return def
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return def
	}
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// getDuration accepts Go durations ("1.5s") and plain seconds (60, 1.5, "60").
func (s *SettingsService) getDuration(key string, def time.Duration) time.Duration {
	val, ok := s.configStore.Get(key)
	if !ok {
		return def
	}
	var d time.Duration
	switch v := val.(type) {
	case int:
		d = time.Duration(v) * time.Second
	case int64:
		d = time.Duration(v) * time.Second
	case float64:
		d = time.Duration(v * float64(time.Second))
	case string:
		d, ok = parseDuration(v)
		if !ok {
			return def
		}
	default:
		return def
	}
	if d <= 0 {
		return def
	}
	return d
}

func (s *SettingsService) getExtensions(def []string) []string {
	val, ok := s.configStore.Get(KeyAllowedExtensions)
	if !ok {
		return def
	}
	var exts []string
	switch v := val.(type) {
	case string:
		exts = domain.ParseExtensions(v)
	default:
		exts = domain.ParseExtensions(strings.Join(s.configStore.GetStringSlice(KeyAllowedExtensions), ","))
	}
	if len(exts) == 0 {
		return def
	}
	return exts
}

func parseDuration(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, d > 0
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
		return time.Duration(f * float64(time.Second)), true
	}
	return 0, false
}
