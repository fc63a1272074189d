package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

// AuditEnqueuer hands a transition event to the async audit pipeline.
type AuditEnqueuer interface {
	Enqueue(event domain.TransitionEvent)
}

// ShipmentService is the lifecycle engine. Every status change goes through
// a compare-and-swap on the previously observed status, so two concurrent
// transitions from the same state cannot both succeed.
type ShipmentService struct {
	shipments ports.ShipmentRepository
	users     ports.UserRepository
	audit     AuditEnqueuer
	logger    zerolog.Logger
	now       func() time.Time
}

func NewShipmentService(
	shipments ports.ShipmentRepository,
	users ports.UserRepository,
	audit AuditEnqueuer,
	logger zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		users:     users,
		audit:     audit,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateShipment validates and persists a new shipment in the created state.
func (s *ShipmentService) CreateShipment(ctx context.Context, requester ports.Requester, input ports.CreateShipmentInput) (*domain.Shipment, error) {
	if requester.Role != domain.RoleWarehouseStaff && requester.Role != domain.RoleStoreManager {
		return nil, domain.ErrForbidden
	}
	if input.Origin == "" || input.Destination == "" || input.Origin == input.Destination {
		return nil, domain.ErrInvalidShipment
	}
	if input.Origin != requester.Scope {
		return nil, domain.ErrScopeMismatch
	}

	carrier, err := s.users.FindByID(ctx, input.CarrierID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCarrier
		}
		return nil, err
	}
	if carrier.Role != domain.RoleCarrier {
		return nil, domain.ErrInvalidCarrier
	}

	shipment := &domain.Shipment{
		ID:              uuid.NewString(),
		Origin:          input.Origin,
		Destination:     input.Destination,
		AssignedCarrier: carrier.ID,
		Status:          domain.StatusCreated,
		CreatedAt:       s.now().UTC(),
		CreatedBy:       requester.ID,
	}

	if err := s.shipments.Insert(ctx, shipment); err != nil {
		s.logger.Error().Err(err).Msg("failed to create shipment")
		return nil, err
	}

	s.recordTransition(shipment.ID, domain.StatusCreated, requester.ID, shipment.CreatedAt)
	s.logger.Info().
		Str("shipment_id", shipment.ID).
		Str("origin", shipment.Origin).
		Str("carrier", shipment.AssignedCarrier).
		Msg("shipment created")

	return shipment, nil
}

// MarkInTransit moves a created shipment to in_transit. Eligible actors are
// staff scoped to the shipment's origin and the assigned carrier.
func (s *ShipmentService) MarkInTransit(ctx context.Context, requester ports.Requester, shipmentID string) (*domain.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, shipmentID, ScopeFor(requester))
	if err != nil {
		return nil, err
	}
	if !shipment.Status.CanTransitionTo(domain.StatusInTransit) {
		return nil, fmt.Errorf("%w: shipment is %s", domain.ErrInvalidTransition, shipment.Status)
	}

	staffAtOrigin := (requester.Role == domain.RoleWarehouseStaff || requester.Role == domain.RoleStoreManager) &&
		requester.Scope == shipment.Origin
	if !staffAtOrigin && requester.ID != shipment.AssignedCarrier {
		return nil, domain.ErrForbidden
	}

	now := s.now().UTC()
	if err := s.applyTransition(ctx, shipment, domain.StatusCreated, ports.StatusChange{
		Status: domain.StatusInTransit,
		At:     now,
		Actor:  requester.ID,
	}); err != nil {
		return nil, err
	}

	shipment.Status = domain.StatusInTransit
	shipment.InTransitAt = &now
	shipment.InTransitBy = requester.ID
	return shipment, nil
}

// MarkDelivered moves an in_transit shipment to delivered. Only the assigned
// carrier may deliver.
func (s *ShipmentService) MarkDelivered(ctx context.Context, requester ports.Requester, shipmentID string) (*domain.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, shipmentID, ScopeFor(requester))
	if err != nil {
		return nil, err
	}
	if !shipment.Status.CanTransitionTo(domain.StatusDelivered) {
		return nil, fmt.Errorf("%w: shipment is %s", domain.ErrInvalidTransition, shipment.Status)
	}
	if requester.ID != shipment.AssignedCarrier {
		return nil, domain.ErrForbidden
	}

	now := s.now().UTC()
	if err := s.applyTransition(ctx, shipment, domain.StatusInTransit, ports.StatusChange{
		Status: domain.StatusDelivered,
		At:     now,
		Actor:  requester.ID,
	}); err != nil {
		return nil, err
	}

	shipment.Status = domain.StatusDelivered
	shipment.DeliveredAt = &now
	shipment.DeliveredBy = requester.ID
	return shipment, nil
}

// UpdateLocation sets the free-form location of an in_transit shipment. It
// changes no status, timestamp, or actor field.
func (s *ShipmentService) UpdateLocation(ctx context.Context, requester ports.Requester, shipmentID, location string) (*domain.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, shipmentID, ScopeFor(requester))
	if err != nil {
		return nil, err
	}
	if shipment.Status != domain.StatusInTransit {
		return nil, fmt.Errorf("%w: shipment is %s", domain.ErrInvalidTransition, shipment.Status)
	}
	if requester.ID != shipment.AssignedCarrier {
		return nil, domain.ErrForbidden
	}

	if err := s.shipments.UpdateLocation(ctx, shipment.ID, requester.ID, location); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			// The shipment left in_transit between our read and the write.
			return nil, fmt.Errorf("%w: shipment is no longer %s", domain.ErrInvalidTransition, domain.StatusInTransit)
		}
		return nil, err
	}

	shipment.Location = location
	return shipment, nil
}

// GetShipment returns a single shipment within the requester's visibility.
// Out-of-scope ids are reported as not found.
func (s *ShipmentService) GetShipment(ctx context.Context, requester ports.Requester, shipmentID string) (*domain.Shipment, error) {
	return s.shipments.GetByID(ctx, shipmentID, ScopeFor(requester))
}

// ListShipments returns a page of shipments within the requester's
// visibility, further narrowed by the caller's filters.
func (s *ShipmentService) ListShipments(ctx context.Context, requester ports.Requester, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.shipments.List(ctx, ScopeFor(requester), ports.ListShipmentsFilter{
		ShipmentID: input.ShipmentID,
		Status:     input.Status,
		CarrierID:  input.CarrierID,
		DateFrom:   input.DateFrom,
		DateTo:     input.DateTo,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list shipments")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// applyTransition performs the guarded write. A compare-and-swap miss means
// another request moved the shipment first; the loser observes the
// post-transition state as an invalid transition.
func (s *ShipmentService) applyTransition(ctx context.Context, shipment *domain.Shipment, expected domain.ShipmentStatus, change ports.StatusChange) error {
	if err := s.shipments.CompareAndSwapStatus(ctx, shipment.ID, expected, change); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			s.logger.Info().
				Str("shipment_id", shipment.ID).
				Str("expected", string(expected)).
				Msg("lost transition race")
			return fmt.Errorf("%w: shipment already left %s", domain.ErrInvalidTransition, expected)
		}
		return err
	}

	s.recordTransition(shipment.ID, change.Status, change.Actor, change.At)
	s.logger.Info().
		Str("shipment_id", shipment.ID).
		Str("status", string(change.Status)).
		Str("actor", change.Actor).
		Msg("shipment transitioned")
	return nil
}

func (s *ShipmentService) recordTransition(shipmentID string, status domain.ShipmentStatus, actor string, at time.Time) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.TransitionEvent{
		ShipmentID: shipmentID,
		Status:     status,
		Actor:      actor,
		OccurredAt: at,
	})
}
