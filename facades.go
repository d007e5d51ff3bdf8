package oway

import (
	"context"
	"net/url"

	"github.com/oway-inc/oway-go/api"
	owayerrors "github.com/oway-inc/oway-go/errors"
	"github.com/oway-inc/oway-go/transport"
	"github.com/oway-inc/oway-go/validation"
)

// RequestQuote asks for shipping rates. The payload is validated locally
// before any network traffic.
func (c *Client) RequestQuote(ctx context.Context, req *api.QuoteRequest) (*api.Quote, error) {
	return c.requestQuote(ctx, req)
}

// RequestQuoteForCompany is RequestQuote on behalf of a specific company,
// identified by its API key. The key overrides the client-level default for
// this call only.
func (c *Client) RequestQuoteForCompany(ctx context.Context, req *api.QuoteRequest, apiKey string) (*api.Quote, error) {
	if err := requireAPIKey(apiKey); err != nil {
		return nil, err
	}
	return c.requestQuote(ctx, req, transport.WithTenantKey(apiKey))
}

func (c *Client) requestQuote(ctx context.Context, req *api.QuoteRequest, opts ...transport.RequestOption) (*api.Quote, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	return transport.Post[api.Quote](ctx, c.http, "/v1/quotes", req, opts...)
}

// CreateShipment books a shipment from an accepted quote.
func (c *Client) CreateShipment(ctx context.Context, req *api.ShipmentRequest) (*api.Shipment, error) {
	return c.createShipment(ctx, req)
}

// CreateShipmentForCompany is CreateShipment on behalf of a specific company.
func (c *Client) CreateShipmentForCompany(ctx context.Context, req *api.ShipmentRequest, apiKey string) (*api.Shipment, error) {
	if err := requireAPIKey(apiKey); err != nil {
		return nil, err
	}
	return c.createShipment(ctx, req, transport.WithTenantKey(apiKey))
}

func (c *Client) createShipment(ctx context.Context, req *api.ShipmentRequest, opts ...transport.RequestOption) (*api.Shipment, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	return transport.Post[api.Shipment](ctx, c.http, "/v1/shipments", req, opts...)
}

// ConfirmShipment confirms a booked shipment for pickup.
func (c *Client) ConfirmShipment(ctx context.Context, orderNumber string) (*api.Shipment, error) {
	return c.confirmShipment(ctx, orderNumber)
}

// ConfirmShipmentForCompany is ConfirmShipment on behalf of a specific company.
func (c *Client) ConfirmShipmentForCompany(ctx context.Context, orderNumber, apiKey string) (*api.Shipment, error) {
	if err := requireAPIKey(apiKey); err != nil {
		return nil, err
	}
	return c.confirmShipment(ctx, orderNumber, transport.WithTenantKey(apiKey))
}

func (c *Client) confirmShipment(ctx context.Context, orderNumber string, opts ...transport.RequestOption) (*api.Shipment, error) {
	path, err := shipmentPath(orderNumber, "confirm")
	if err != nil {
		return nil, err
	}
	return transport.Post[api.Shipment](ctx, c.http, path, nil, opts...)
}

// TrackShipment returns the current status and scan history of a shipment.
func (c *Client) TrackShipment(ctx context.Context, orderNumber string) (*api.Tracking, error) {
	return c.trackShipment(ctx, orderNumber)
}

// TrackShipmentForCompany is TrackShipment on behalf of a specific company.
func (c *Client) TrackShipmentForCompany(ctx context.Context, orderNumber, apiKey string) (*api.Tracking, error) {
	if err := requireAPIKey(apiKey); err != nil {
		return nil, err
	}
	return c.trackShipment(ctx, orderNumber, transport.WithTenantKey(apiKey))
}

func (c *Client) trackShipment(ctx context.Context, orderNumber string, opts ...transport.RequestOption) (*api.Tracking, error) {
	path, err := shipmentPath(orderNumber, "tracking")
	if err != nil {
		return nil, err
	}
	return transport.Get[api.Tracking](ctx, c.http, path, opts...)
}

// GetInvoice returns the invoice for a delivered shipment.
func (c *Client) GetInvoice(ctx context.Context, orderNumber string) (*api.Invoice, error) {
	return c.getInvoice(ctx, orderNumber)
}

// GetInvoiceForCompany is GetInvoice on behalf of a specific company.
func (c *Client) GetInvoiceForCompany(ctx context.Context, orderNumber, apiKey string) (*api.Invoice, error) {
	if err := requireAPIKey(apiKey); err != nil {
		return nil, err
	}
	return c.getInvoice(ctx, orderNumber, transport.WithTenantKey(apiKey))
}

func (c *Client) getInvoice(ctx context.Context, orderNumber string, opts ...transport.RequestOption) (*api.Invoice, error) {
	path, err := shipmentPath(orderNumber, "invoice")
	if err != nil {
		return nil, err
	}
	return transport.Get[api.Invoice](ctx, c.http, path, opts...)
}

func shipmentPath(orderNumber, suffix string) (string, error) {
	if orderNumber == "" {
		return "", invalidInput("orderNumber is required")
	}
	return "/v1/shipments/" + url.PathEscape(orderNumber) + "/" + suffix, nil
}

func requireAPIKey(apiKey string) error {
	if apiKey == "" {
		return invalidInput("company API key is required")
	}
	return nil
}

func invalidInput(message string) error {
	return &owayerrors.Error{
		Kind:    owayerrors.KindClient,
		Message: message,
		Code:    "INVALID_INPUT",
	}
}
