package handler

import (
	"time"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createShipmentRequest struct {
	Origin      string `json:"origin"      validate:"required"`
	Destination string `json:"destination" validate:"required,nefield=Origin"`
	CarrierID   string `json:"carrier_id"  validate:"required"`
}

type updateLocationRequest struct {
	Location string `json:"location" validate:"required"`
}

// --- Response types ---
//
// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// service changes.

type shipmentResponse struct {
	ID              string     `json:"id"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	AssignedCarrier string     `json:"assigned_carrier"`
	Status          string     `json:"status"`
	Location        string     `json:"location,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CreatedBy       string     `json:"created_by"`
	InTransitAt     *time.Time `json:"in_transit_at,omitempty"`
	InTransitBy     string     `json:"in_transit_by,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	DeliveredBy     string     `json:"delivered_by,omitempty"`
}

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	return shipmentResponse{
		ID:              s.ID,
		Origin:          s.Origin,
		Destination:     s.Destination,
		AssignedCarrier: s.AssignedCarrier,
		Status:          string(s.Status),
		Location:        s.Location,
		CreatedAt:       s.CreatedAt,
		CreatedBy:       s.CreatedBy,
		InTransitAt:     s.InTransitAt,
		InTransitBy:     s.InTransitBy,
		DeliveredAt:     s.DeliveredAt,
		DeliveredBy:     s.DeliveredBy,
	}
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []shipmentResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
