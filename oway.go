package oway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/oway-inc/oway-go/auth"
	owayerrors "github.com/oway-inc/oway-go/errors"
	"github.com/oway-inc/oway-go/logger"
	"github.com/oway-inc/oway-go/resilience"
	"github.com/oway-inc/oway-go/transport"
)

const (
	// DefaultBaseURL is the sandbox environment. Production callers set
	// Config.BaseURL explicitly.
	DefaultBaseURL = "https://rest-api.sandbox.oway.io"

	// DefaultTimeout bounds each request attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of retries after the initial attempt.
	DefaultMaxRetries = 3

	tokenPath = "/v1/auth/token"
)

// Config configures a Client. ClientID and ClientSecret are required;
// everything else has a sensible default.
type Config struct {
	// ClientID and ClientSecret are the M2M credentials issued by Oway.
	ClientID     string
	ClientSecret string

	// APIKey is the default company API key. Optional; direct shippers set
	// it once, brokers usually leave it empty and use ForCompany calls.
	APIKey string

	// BaseURL is the API root. Defaults to the sandbox environment.
	BaseURL string

	// TokenURL is the M2M token endpoint. Defaults to BaseURL + /v1/auth/token.
	TokenURL string

	// MaxRetries is the number of retries after the initial attempt.
	// Defaults to 3; set to -1 to disable retries.
	MaxRetries int

	// Timeout bounds each individual attempt. Defaults to 30s.
	Timeout time.Duration

	// Debug enables debug-level logging when no Logger is supplied.
	Debug bool

	// Logger receives client lifecycle events. Defaults to a no-op logger,
	// or a console debug logger when Debug is set.
	Logger *logger.Logger

	// Headers are extra headers applied to every request.
	Headers map[string]string

	// Throttle enables a client-side request rate limit. Nil disables it.
	Throttle *resilience.ThrottleConfig

	// HTTPClient is the underlying HTTP client, shared by API and token
	// requests. Defaults to a fresh http.Client.
	HTTPClient *http.Client
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TokenURL == "" {
		c.TokenURL = strings.TrimRight(c.BaseURL, "/") + tokenPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Logger == nil {
		if c.Debug {
			c.Logger = logger.New(&logger.Config{Level: "debug"}, "oway")
		} else {
			c.Logger = logger.Nop()
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return owayerrors.Configuration("clientId and clientSecret are required")
	}
	return nil
}

// Client is the Oway API client. Safe for concurrent use; construct one per
// set of credentials and share it.
type Client struct {
	cfg    Config
	tokens *auth.TokenSource
	http   *transport.Client
	log    *logger.Logger
}

// New creates a Client. Configuration problems are reported here, before any
// network traffic.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tokens := auth.NewTokenSource(auth.Config{
		TokenURL: cfg.TokenURL,
		Credentials: auth.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		},
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
	})

	httpClient, err := transport.New(transport.Config{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		TenantKey:  cfg.APIKey,
		Headers:    cfg.Headers,
		Throttle:   cfg.Throttle,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
	}, tokens)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:    cfg,
		tokens: tokens,
		http:   httpClient,
		log:    cfg.Logger.WithComponent("oway"),
	}, nil
}

// Do executes an arbitrary API request. The facade methods cover the common
// operations; Do is the escape hatch for endpoints they don't.
func (c *Client) Do(ctx context.Context, req transport.Request) (*transport.Response, error) {
	return c.http.Do(ctx, req)
}

// Transport returns the underlying request executor, for callers building
// their own typed helpers on top of it.
func (c *Client) Transport() *transport.Client {
	return c.http
}

// InvalidateToken drops the cached bearer token. The next request fetches a
// fresh one.
func (c *Client) InvalidateToken() {
	c.tokens.Invalidate()
}
