package transport

import (
	"net/http"
	"time"

	owayerrors "github.com/oway-inc/oway-go/errors"
	"github.com/oway-inc/oway-go/logger"
	"github.com/oway-inc/oway-go/resilience"
	"github.com/oway-inc/oway-go/version"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultBackoff    = time.Second
)

// Config configures the request executor. Immutable after New.
type Config struct {
	// BaseURL is prepended to all request paths.
	BaseURL string
	// Timeout bounds each individual attempt. Defaults to 30s.
	Timeout time.Duration
	// MaxRetries is the number of retries after the initial attempt.
	// Defaults to 3; set to -1 to disable retries.
	MaxRetries int
	// Backoff is the delay before the first retry, doubling per retry.
	// Defaults to 1s.
	Backoff time.Duration
	// MaxBackoff caps the per-retry delay. Zero means no cap.
	MaxBackoff time.Duration
	// TenantKey is the default company API key attached as x-oway-api-key.
	// Individual requests can override it.
	TenantKey string
	// Headers are default headers applied to all requests.
	Headers map[string]string
	// UserAgent overrides the default SDK user agent.
	UserAgent string
	// Throttle enables a client-side request throttle. Nil disables it.
	Throttle *resilience.ThrottleConfig
	// HTTPClient is the underlying HTTP client. The executor manages
	// per-attempt timeouts itself, so the client should not set its own.
	HTTPClient *http.Client
	// Logger receives request lifecycle events.
	Logger *logger.Logger
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.Backoff <= 0 {
		c.Backoff = defaultBackoff
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return owayerrors.Configuration("transport: baseUrl is required")
	}
	return nil
}
