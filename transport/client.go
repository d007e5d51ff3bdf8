package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	owayerrors "github.com/oway-inc/oway-go/errors"
	"github.com/oway-inc/oway-go/logger"
	"github.com/oway-inc/oway-go/resilience"
)

// RequestIDHeader carries the correlation id on requests and responses.
const RequestIDHeader = "x-request-id"

// TenantKeyHeader carries the company API key.
const TenantKeyHeader = "x-oway-api-key"

// TokenProvider supplies the bearer token for outbound requests.
// auth.TokenSource is the canonical implementation.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client executes authenticated API requests with retry and backoff.
// Safe for concurrent use.
type Client struct {
	cfg      Config
	tokens   TokenProvider
	throttle *resilience.Throttle
	log      *logger.Logger
}

// New creates a request executor from config and a token provider.
func New(cfg Config, tokens TokenProvider) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, owayerrors.Configuration("transport: token provider is required")
	}

	c := &Client{
		cfg:    cfg,
		tokens: tokens,
		log:    cfg.Logger.WithComponent("transport"),
	}
	if cfg.Throttle != nil {
		c.throttle = resilience.NewThrottle(*cfg.Throttle)
	}
	return c, nil
}

// Do executes one logical request, retrying transient failures with
// exponential backoff. At most MaxRetries+1 attempts are made; the token and
// tenant key are re-resolved on every attempt.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	ctx, span := startSpan(ctx, req.Method, req.Path)
	attempts := 0

	policy := resilience.Policy{
		MaxRetries: c.cfg.MaxRetries,
		Backoff:    c.cfg.Backoff,
		MaxBackoff: c.cfg.MaxBackoff,
		Retryable:  owayerrors.IsRetryable,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			c.log.Warn("request attempt failed, retrying", logger.Fields(
				logger.FieldMethod, req.Method,
				logger.FieldPath, req.Path,
				logger.FieldRequestID, req.RequestID,
				logger.FieldAttempt, attempt+1,
				"retry_in", delay.String(),
				logger.FieldError, err.Error(),
			))
		},
	}

	start := time.Now()
	resp, err := resilience.Do(ctx, policy, func(attempt int) (*Response, error) {
		attempts = attempt + 1
		return c.attempt(ctx, req, attempt)
	})
	if err != nil {
		c.log.Error("request failed", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldPath, req.Path,
			logger.FieldRequestID, req.RequestID,
			logger.FieldAttempt, attempts,
			logger.FieldError, err.Error(),
		))
		endSpan(span, 0, attempts, err)
		return nil, err
	}

	c.log.Debug("request completed", logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldPath, req.Path,
		logger.FieldRequestID, resp.RequestID,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	endSpan(span, resp.StatusCode, attempts, nil)
	return resp, nil
}

// attempt performs a single HTTP exchange under its own timeout.
func (c *Client) attempt(ctx context.Context, req Request, attempt int) (*Response, error) {
	if c.throttle != nil {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := c.buildRequest(attemptCtx, req, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, owayerrors.Transient("request timed out", err)
		}
		return nil, owayerrors.Transient("connection failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, owayerrors.Transient("read response body", err)
	}

	requestID := resp.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = req.RequestID
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, owayerrors.FromResponse(resp.StatusCode, body, requestID)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		RequestID:  requestID,
	}
	if resp.StatusCode != http.StatusNoContent && len(body) > 0 {
		result.Body = body
	}
	return result, nil
}

// buildRequest constructs the *http.Request for one attempt. Header
// precedence, lowest to highest: standard headers, client defaults, caller
// overrides.
func (c *Client) buildRequest(ctx context.Context, req Request, token string) (*http.Request, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &owayerrors.Error{
				Kind:    owayerrors.KindClient,
				Message: "encode request body: " + err.Error(),
				Code:    "INVALID_INPUT",
				Err:     err,
			}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, &owayerrors.Error{
			Kind:    owayerrors.KindClient,
			Message: "create request: " + err.Error(),
			Code:    "INVALID_INPUT",
			Err:     err,
		}
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set(RequestIDHeader, req.RequestID)

	// Tenant key precedence: per-call override, then client default.
	tenantKey := req.TenantKey
	if tenantKey == "" {
		tenantKey = c.cfg.TenantKey
	}
	if tenantKey != "" {
		httpReq.Header.Set(TenantKeyHeader, tenantKey)
	}

	for k, v := range c.cfg.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
