package domain

import (
	"errors"
	"time"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusCreated   ShipmentStatus = "created"
	StatusInTransit ShipmentStatus = "in_transit"
	StatusDelivered ShipmentStatus = "delivered"
)

// validTransitions defines the allowed state machine transitions. The chain
// is strictly forward: created → in_transit → delivered, no skips, no
// re-entry.
var validTransitions = map[ShipmentStatus][]ShipmentStatus{
	StatusCreated:   {StatusInTransit},
	StatusInTransit: {StatusDelivered},
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrInvalidShipment   = errors.New("invalid shipment")
	ErrInvalidCarrier    = errors.New("invalid carrier")
	ErrScopeMismatch     = errors.New("requester scope does not cover origin")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("shipment status changed concurrently")
)

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s ShipmentStatus) bool {
	switch s {
	case StatusCreated, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Shipment is the core aggregate root.
//
// Per-stage timestamp and actor pairs are written exactly once, when the
// shipment enters the stage, and never touched again.
type Shipment struct {
	ID              string         `json:"id" bson:"_id"`
	Origin          string         `json:"origin" bson:"origin"`
	Destination     string         `json:"destination" bson:"destination"`
	AssignedCarrier string         `json:"assigned_carrier" bson:"assigned_carrier"`
	Status          ShipmentStatus `json:"status" bson:"status"`
	Location        string         `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	CreatedBy       string         `json:"created_by" bson:"created_by"`
	InTransitAt     *time.Time     `json:"in_transit_at,omitempty" bson:"in_transit_at,omitempty"`
	InTransitBy     string         `json:"in_transit_by,omitempty" bson:"in_transit_by,omitempty"`
	DeliveredAt     *time.Time     `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	DeliveredBy     string         `json:"delivered_by,omitempty" bson:"delivered_by,omitempty"`
}
