package ports

import (
	"context"
	"time"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

// ShipmentScope is the role-derived visibility predicate compiled into every
// read query. Exactly one of the three shapes applies:
//   - All: unrestricted (global managers).
//   - Location: origin or destination must equal Location (warehouse/store staff).
//   - CarrierID: assigned_carrier must equal CarrierID (carriers).
//
// The repository must enforce the scope inside the storage query itself, not
// by trimming an unscoped result set, so out-of-scope rows can never leak
// through totals or pagination.
type ShipmentScope struct {
	All       bool
	Location  string
	CarrierID string
}

// ListShipmentsFilter carries caller-supplied query parameters. All fields
// are optional and compose conjunctively with the scope.
type ListShipmentsFilter struct {
	ShipmentID string    // exact id match
	Status     string    // shipment status equality
	CarrierID  string    // assigned carrier equality
	DateFrom   time.Time // created_at >= DateFrom
	DateTo     time.Time // created_at <= DateTo
	Page       int       // 1-based
	Limit      int       // max rows per page (capped at 100 by service)
}

// StatusChange carries the fields written by a single lifecycle transition.
type StatusChange struct {
	Status domain.ShipmentStatus
	At     time.Time
	Actor  string
}

// ShipmentRepository defines persistence operations for shipments.
type ShipmentRepository interface {
	Insert(ctx context.Context, s *domain.Shipment) error
	// GetByID retrieves a shipment by id, restricted by scope. Out-of-scope
	// ids are indistinguishable from absent ones.
	GetByID(ctx context.Context, id string, scope ShipmentScope) (*domain.Shipment, error)
	// CompareAndSwapStatus applies change only if the shipment's current
	// status still equals expected. Returns domain.ErrStatusConflict when the
	// guard does not match and domain.ErrShipmentNotFound when the shipment
	// does not exist.
	CompareAndSwapStatus(ctx context.Context, id string, expected domain.ShipmentStatus, change StatusChange) error
	// UpdateLocation sets the free-form location iff the shipment is
	// in_transit and assigned to carrierID. Returns domain.ErrStatusConflict
	// when the guard does not match.
	UpdateLocation(ctx context.Context, id string, carrierID, location string) error
	// List returns a page of shipments matching scope and filter plus the
	// total count of the scoped match set.
	List(ctx context.Context, scope ShipmentScope, filter ListShipmentsFilter) ([]*domain.Shipment, int64, error)
}
