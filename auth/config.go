package auth

import (
	"net/http"
	"time"

	"github.com/oway-inc/oway-go/logger"
)

const (
	// DefaultSafetyMargin is subtracted from the token's lifetime so a
	// refresh happens before the token actually expires mid-request.
	DefaultSafetyMargin = 5 * time.Minute

	defaultTimeout = 30 * time.Second
)

// Credentials are the M2M client credentials issued by Oway Sales
// Engineering. Immutable after construction and never logged in cleartext.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Config configures a TokenSource.
type Config struct {
	// TokenURL is the M2M token endpoint.
	TokenURL string
	// Credentials are the client credentials exchanged for bearer tokens.
	Credentials Credentials
	// SafetyMargin is the buffer before expiry that triggers a proactive
	// refresh. Defaults to 5 minutes.
	SafetyMargin time.Duration
	// HTTPClient is the client used to reach the token endpoint.
	HTTPClient *http.Client
	// Logger receives refresh lifecycle events.
	Logger *logger.Logger
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SafetyMargin <= 0 {
		c.SafetyMargin = DefaultSafetyMargin
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
}
