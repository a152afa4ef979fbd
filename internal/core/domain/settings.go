package domain

import (
	"net"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Settings is the immutable runtime configuration, built once at start-up.
type Settings struct {
	// APIKey authenticates upstream requests.
	APIKey string

	// BaseURL is the upstream API root.
	BaseURL string

	// Timeout bounds a single CRUD request. Upload and search get twice this.
	Timeout time.Duration

	// MaxRetries is the total number of attempts per upstream call.
	MaxRetries int

	// RetryDelay is the base backoff delay.
	RetryDelay time.Duration

	// MaxRetryDelay caps the backoff delay.
	MaxRetryDelay time.Duration

	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize int64

	// AllowedExtensions lists accepted upload extensions, lower-case with leading dot.
	AllowedExtensions []string

	// Host and Port are the REST listen address.
	Host string
	Port int

	// MCPAddr is the MCP streamable HTTP listen address. Empty disables it under serve.
	MCPAddr string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// RateLimit is the per-client request rate (requests/second). Zero disables limiting.
	RateLimit float64

	// RateBurst is the per-client token bucket size.
	RateBurst int
}

// Defaults.
const (
	DefaultBaseURL       = "https://generativelanguage.googleapis.com"
	DefaultTimeout       = 60 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = time.Second
	DefaultMaxRetryDelay = 10 * time.Second
	DefaultMaxUploadSize = 100 * 1024 * 1024
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8000
	DefaultLogLevel      = "info"
	DefaultRateLimit     = 10.0
	DefaultRateBurst     = 20
)

// DefaultAllowedExtensions returns the upload extensions accepted by default.
func DefaultAllowedExtensions() []string {
	return []string{".txt", ".pdf", ".md", ".doc", ".docx", ".html", ".csv", ".json"}
}

// DefaultSettings returns settings with every default applied and no API key.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		MaxRetries:        DefaultMaxRetries,
		RetryDelay:        DefaultRetryDelay,
		MaxRetryDelay:     DefaultMaxRetryDelay,
		MaxUploadSize:     DefaultMaxUploadSize,
		AllowedExtensions: DefaultAllowedExtensions(),
		Host:              DefaultHost,
		Port:              DefaultPort,
		LogLevel:          DefaultLogLevel,
		RateLimit:         DefaultRateLimit,
		RateBurst:         DefaultRateBurst,
	}
}

// HasAPIKey returns true if an API key is configured.
func (s Settings) HasAPIKey() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// IsExtensionAllowed reports whether ext (with or without leading dot) may be uploaded.
func (s Settings) IsExtensionAllowed(ext string) bool {
	ext = NormaliseExtension(ext)
	return ext != "." && slices.Contains(s.AllowedExtensions, ext)
}

// Addr returns the REST listen address.
func (s Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// NormaliseExtension lower-cases ext and ensures a leading dot.
func NormaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ParseExtensions splits a comma-separated extension list.
func ParseExtensions(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, NormaliseExtension(part))
	}
	return out
}
