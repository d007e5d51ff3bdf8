package oway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/oway-inc/oway-go/api"
	owayerrors "github.com/oway-inc/oway-go/errors"
)

// fakeAPI serves the token endpoint plus the freight endpoints the facades
// hit, recording what it saw.
type fakeAPI struct {
	srv        *httptest.Server
	tokenCalls atomic.Int64
	lastAuth   atomic.Value
	lastTenant atomic.Value
	lastPath   atomic.Value
	lastURI    atomic.Value
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/auth/token" {
			f.tokenCalls.Add(1)
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["clientId"] == "" || creds["clientSecret"] == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-1",
				"expires_in":   3600,
			})
			return
		}

		f.lastAuth.Store(r.Header.Get("Authorization"))
		f.lastTenant.Store(r.Header.Get("x-oway-api-key"))
		f.lastPath.Store(r.Method + " " + r.URL.Path)
		f.lastURI.Store(r.RequestURI)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/quotes":
			_ = json.NewEncoder(w).Encode(api.Quote{ID: "quote-1", Carrier: "XPO", TotalCents: 48500})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/shipments":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(api.Shipment{OrderNumber: "ORD-100", Status: "booked"})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/confirm"):
			_ = json.NewEncoder(w).Encode(api.Shipment{OrderNumber: "ORD-100", Status: "confirmed"})
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/tracking"):
			_ = json.NewEncoder(w).Encode(api.Tracking{OrderNumber: "ORD-100", Status: "in_transit"})
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/invoice"):
			_ = json.NewEncoder(w).Encode(api.Invoice{OrderNumber: "ORD-100", InvoiceID: "INV-7", TotalCents: 48500})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) client(t *testing.T, cfg Config) *Client {
	t.Helper()
	cfg.ClientID = "id-1"
	cfg.ClientSecret = "secret-1"
	cfg.BaseURL = f.srv.URL
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func validQuoteRequest() *api.QuoteRequest {
	return &api.QuoteRequest{
		Origin:      api.Address{Line1: "1 Dock St", City: "Newark", State: "NJ", PostalCode: "07102"},
		Destination: api.Address{Line1: "9 Pier Rd", City: "Oakland", State: "CA", PostalCode: "94607"},
		Packages:    []api.Package{{WeightLbs: 250}},
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(Config{ClientID: "only-id"})
	oe, ok := owayerrors.As(err)
	if !ok || oe.Kind != owayerrors.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if oe.Message != "clientId and clientSecret are required" {
		t.Errorf("message = %q", oe.Message)
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := Config{ClientID: "a", ClientSecret: "b"}
	cfg.ApplyDefaults()
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TokenURL != DefaultBaseURL+"/v1/auth/token" {
		t.Errorf("TokenURL = %q", cfg.TokenURL)
	}
	if cfg.Timeout != DefaultTimeout || cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("Timeout = %v, MaxRetries = %d", cfg.Timeout, cfg.MaxRetries)
	}
}

func TestRequestQuote(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{APIKey: "oway_sk_default"})

	quote, err := c.RequestQuote(context.Background(), validQuoteRequest())
	if err != nil {
		t.Fatalf("RequestQuote: %v", err)
	}
	if quote.ID != "quote-1" || quote.Carrier != "XPO" {
		t.Errorf("quote = %+v", quote)
	}
	if got := f.lastAuth.Load(); got != "Bearer tok-1" {
		t.Errorf("Authorization = %v", got)
	}
	if got := f.lastTenant.Load(); got != "oway_sk_default" {
		t.Errorf("tenant key = %v", got)
	}
}

func TestRequestQuote_ValidationFailsBeforeNetwork(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{})

	_, err := c.RequestQuote(context.Background(), &api.QuoteRequest{})
	oe, ok := owayerrors.As(err)
	if !ok || oe.Kind != owayerrors.KindClient {
		t.Fatalf("expected client error, got %v", err)
	}
	if !strings.Contains(oe.Message, "origin") {
		t.Errorf("message should name the invalid field, got %q", oe.Message)
	}
	if f.tokenCalls.Load() != 0 {
		t.Errorf("validation failure must not touch the network, token calls = %d", f.tokenCalls.Load())
	}
}

func TestRequestQuoteForCompany_OverridesDefaultKey(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{APIKey: "oway_sk_default"})

	_, err := c.RequestQuoteForCompany(context.Background(), validQuoteRequest(), "oway_sk_acme")
	if err != nil {
		t.Fatalf("RequestQuoteForCompany: %v", err)
	}
	if got := f.lastTenant.Load(); got != "oway_sk_acme" {
		t.Errorf("tenant key = %v, want oway_sk_acme", got)
	}
}

func TestForCompany_EmptyKey(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{})

	_, err := c.RequestQuoteForCompany(context.Background(), validQuoteRequest(), "")
	oe, ok := owayerrors.As(err)
	if !ok || oe.Kind != owayerrors.KindClient {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestShipmentLifecycle(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{})
	ctx := context.Background()

	shipment, err := c.CreateShipment(ctx, &api.ShipmentRequest{QuoteID: "quote-1"})
	if err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}
	if shipment.OrderNumber != "ORD-100" {
		t.Fatalf("shipment = %+v", shipment)
	}

	confirmed, err := c.ConfirmShipment(ctx, shipment.OrderNumber)
	if err != nil {
		t.Fatalf("ConfirmShipment: %v", err)
	}
	if confirmed.Status != "confirmed" {
		t.Errorf("status = %q", confirmed.Status)
	}
	if got := f.lastPath.Load(); got != "POST /v1/shipments/ORD-100/confirm" {
		t.Errorf("path = %v", got)
	}

	tracking, err := c.TrackShipment(ctx, shipment.OrderNumber)
	if err != nil {
		t.Fatalf("TrackShipment: %v", err)
	}
	if tracking.Status != "in_transit" {
		t.Errorf("tracking = %+v", tracking)
	}
	if got := f.lastPath.Load(); got != "GET /v1/shipments/ORD-100/tracking" {
		t.Errorf("path = %v", got)
	}

	invoice, err := c.GetInvoice(ctx, shipment.OrderNumber)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if invoice.InvoiceID != "INV-7" {
		t.Errorf("invoice = %+v", invoice)
	}
	if got := f.lastPath.Load(); got != "GET /v1/shipments/ORD-100/invoice" {
		t.Errorf("path = %v", got)
	}
}

func TestShipmentOps_EmptyOrderNumber(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{})
	ctx := context.Background()

	for name, call := range map[string]func() error{
		"confirm": func() error { _, err := c.ConfirmShipment(ctx, ""); return err },
		"track":   func() error { _, err := c.TrackShipment(ctx, ""); return err },
		"invoice": func() error { _, err := c.GetInvoice(ctx, ""); return err },
	} {
		oe, ok := owayerrors.As(call())
		if !ok || oe.Kind != owayerrors.KindClient {
			t.Errorf("%s: expected client error, got %v", name, oe)
		}
	}
	if f.tokenCalls.Load() != 0 {
		t.Errorf("empty order number must not touch the network")
	}
}

func TestTokenReusedAcrossCalls(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.RequestQuote(ctx, validQuoteRequest()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := f.tokenCalls.Load(); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1", got)
	}

	c.InvalidateToken()
	if _, err := c.RequestQuote(ctx, validQuoteRequest()); err != nil {
		t.Fatalf("after invalidate: %v", err)
	}
	if got := f.tokenCalls.Load(); got != 2 {
		t.Errorf("token endpoint hit %d times after invalidate, want 2", got)
	}
}

func TestPathEscapesOrderNumber(t *testing.T) {
	f := newFakeAPI(t)
	c := f.client(t, Config{})

	_, err := c.TrackShipment(context.Background(), "ORD/2024")
	if err != nil {
		t.Fatalf("TrackShipment: %v", err)
	}
	uri, _ := f.lastURI.Load().(string)
	if !strings.Contains(uri, "ORD%2F2024") {
		t.Errorf("order number not escaped in request URI: %q", uri)
	}
}
