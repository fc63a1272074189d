package ports

import (
	"context"
	"time"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

// Requester is the verified caller identity passed from the transport layer
// into every shipment use case. It is a projection of the token claims, not
// a live user record.
type Requester struct {
	ID    string
	Role  string
	Scope string
}

// CreateShipmentInput carries all data needed to create a new shipment.
type CreateShipmentInput struct {
	Origin      string
	Destination string
	CarrierID   string
}

// ListShipmentsInput carries all parameters for the list endpoint.
type ListShipmentsInput struct {
	ShipmentID string
	Status     string
	CarrierID  string
	DateFrom   time.Time
	DateTo     time.Time
	Page       int
	Limit      int
}

// ListShipmentsResult is returned by ListShipments.
type ListShipmentsResult struct {
	Items      []*domain.Shipment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService defines use-case operations for shipments.
type ShipmentService interface {
	CreateShipment(ctx context.Context, requester Requester, input CreateShipmentInput) (*domain.Shipment, error)
	MarkInTransit(ctx context.Context, requester Requester, shipmentID string) (*domain.Shipment, error)
	MarkDelivered(ctx context.Context, requester Requester, shipmentID string) (*domain.Shipment, error)
	UpdateLocation(ctx context.Context, requester Requester, shipmentID, location string) (*domain.Shipment, error)
	GetShipment(ctx context.Context, requester Requester, shipmentID string) (*domain.Shipment, error)
	ListShipments(ctx context.Context, requester Requester, input ListShipmentsInput) (*ListShipmentsResult, error)
}
