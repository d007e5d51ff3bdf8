package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	owayerrors "github.com/oway-inc/oway-go/errors"
	"github.com/oway-inc/oway-go/logger"
)

// TokenSource caches a bearer token for a single client instance and
// refreshes it on demand. Safe for concurrent use.
type TokenSource struct {
	cfg Config

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

// NewTokenSource creates a token source from config.
func NewTokenSource(cfg Config) *TokenSource {
	cfg.ApplyDefaults()
	return &TokenSource{cfg: cfg}
}

// Token returns a valid bearer token, refreshing it first when the cached
// one is missing or within the safety margin of expiry. Concurrent callers
// on a cold cache share a single refresh and its result.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.validLocked(time.Now()) {
		token := s.token
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("refresh", func() (any, error) {
		// A caller queued behind a completed refresh sees the fresh token here.
		s.mu.RLock()
		if s.validLocked(time.Now()) {
			token := s.token
			s.mu.RUnlock()
			return token, nil
		}
		s.mu.RUnlock()

		token, expiresAt, err := s.refresh(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.token = token
		s.expiresAt = expiresAt
		s.mu.Unlock()

		s.cfg.Logger.Debug("token refreshed", logger.Fields(
			"expires_at", expiresAt.Format(time.RFC3339),
		))
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next Token call refreshes.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

// validLocked reports whether the cached token is usable. Callers must hold
// at least a read lock.
func (s *TokenSource) validLocked(now time.Time) bool {
	return s.token != "" && now.Add(s.cfg.SafetyMargin).Before(s.expiresAt)
}

// tokenResponse accepts both field casings the token endpoint has been seen
// to emit.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	AccessTokenCamel string `json:"accessToken"`
	ExpiresIn        int64  `json:"expires_in"`
	ExpiresInCamel   int64  `json:"expiresIn"`
}

func (r tokenResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.AccessTokenCamel
}

func (r tokenResponse) expiresIn() int64 {
	if r.ExpiresIn > 0 {
		return r.ExpiresIn
	}
	return r.ExpiresInCamel
}

// refresh exchanges the client credentials for a fresh bearer token.
func (s *TokenSource) refresh(ctx context.Context) (string, time.Time, error) {
	body, err := json.Marshal(map[string]string{
		"clientId":     s.cfg.Credentials.ClientID,
		"clientSecret": s.cfg.Credentials.ClientSecret,
	})
	if err != nil {
		return "", time.Time{}, owayerrors.Authentication("encode token request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, owayerrors.Authentication("build token request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", time.Time{}, owayerrors.Authentication("token request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, owayerrors.Authentication("read token response", err)
	}

	if resp.StatusCode != http.StatusOK {
		authErr := owayerrors.Authentication(
			fmt.Sprintf("token request failed: HTTP %d", resp.StatusCode), nil)
		authErr.StatusCode = resp.StatusCode
		return "", time.Time{}, authErr
	}

	var tr tokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", time.Time{}, owayerrors.Authentication("token response malformed", err)
	}

	token := tr.token()
	if token == "" {
		return "", time.Time{}, owayerrors.Authentication("token response missing access token", nil)
	}

	now := time.Now()
	if seconds := tr.expiresIn(); seconds > 0 {
		return token, now.Add(time.Duration(seconds) * time.Second), nil
	}

	// Some issuers omit expires_in; fall back to the JWT exp claim.
	if exp, ok := jwtExpiry(token); ok {
		return token, exp, nil
	}
	return "", time.Time{}, owayerrors.Authentication("token response missing expiry", nil)
}

// jwtExpiry extracts the exp claim from a JWT access token without verifying
// its signature. Verification is the API's job; the client only needs the
// expiry for cache bookkeeping.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
