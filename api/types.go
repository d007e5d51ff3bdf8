package api

import "time"

// Address identifies a pickup or delivery location.
type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required,len=2"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Package describes one handling unit in a shipment.
type Package struct {
	WeightLbs    float64 `json:"weight_lbs" validate:"gt=0"`
	LengthInches float64 `json:"length_inches,omitempty" validate:"omitempty,gt=0"`
	WidthInches  float64 `json:"width_inches,omitempty" validate:"omitempty,gt=0"`
	HeightInches float64 `json:"height_inches,omitempty" validate:"omitempty,gt=0"`
	Description  string  `json:"description,omitempty"`
	FreightClass string  `json:"freight_class,omitempty"`
}

// QuoteRequest asks for shipping rates between two addresses.
type QuoteRequest struct {
	Origin       Address   `json:"origin" validate:"required"`
	Destination  Address   `json:"destination" validate:"required"`
	Packages     []Package `json:"packages" validate:"required,min=1,dive"`
	PickupDate   string    `json:"pickup_date,omitempty"`
	Accessorials []string  `json:"accessorials,omitempty"`
}

// Quote is a priced shipping offer.
type Quote struct {
	ID           string    `json:"id"`
	Carrier      string    `json:"carrier"`
	ServiceLevel string    `json:"service_level"`
	TotalCents   int64     `json:"total_cents"`
	Currency     string    `json:"currency"`
	TransitDays  int       `json:"transit_days"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ShipmentRequest books a shipment from an accepted quote.
type ShipmentRequest struct {
	QuoteID         string `json:"quote_id" validate:"required"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	PickupNotes     string `json:"pickup_notes,omitempty"`
	DeliveryNotes   string `json:"delivery_notes,omitempty"`
}

// Shipment is a booked freight order.
type Shipment struct {
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	QuoteID         string    `json:"quote_id"`
	Carrier         string    `json:"carrier"`
	ProNumber       string    `json:"pro_number,omitempty"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Origin          Address   `json:"origin"`
	Destination     Address   `json:"destination"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrackingEvent is one scan in a shipment's history.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Tracking is the current state and history of a shipment.
type Tracking struct {
	OrderNumber       string          `json:"order_number"`
	Status            string          `json:"status"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	Events            []TrackingEvent `json:"events"`
}

// Invoice is the final bill for a delivered shipment.
type Invoice struct {
	OrderNumber string    `json:"order_number"`
	InvoiceID   string    `json:"invoice_id"`
	TotalCents  int64     `json:"total_cents"`
	Currency    string    `json:"currency"`
	IssuedAt    time.Time `json:"issued_at"`
	DocumentURL string    `json:"document_url,omitempty"`
}
