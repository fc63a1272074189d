package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditRecorder that persists transition events
// to the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditRecorder {
	return &auditService{repo: repo, log: log}
}

// Record persists a single transition event. Audit failures never propagate
// to the request that produced the event; the dispatcher logs and drops.
func (s *auditService) Record(ctx context.Context, event domain.TransitionEvent) error {
	if event.ShipmentID == "" || !domain.ValidStatus(event.Status) {
		return fmt.Errorf("record transition: malformed event for %q", event.ShipmentID)
	}

	if err := s.repo.InsertTransition(ctx, &event); err != nil {
		return fmt.Errorf("record transition: %w", err)
	}

	s.log.Debug().
		Str("shipment_id", event.ShipmentID).
		Str("status", string(event.Status)).
		Str("actor", event.Actor).
		Msg("transition audited")
	return nil
}
