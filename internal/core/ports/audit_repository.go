package ports

import (
	"context"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

// AuditRepository persists transition events to the audit trail.
type AuditRepository interface {
	InsertTransition(ctx context.Context, event *domain.TransitionEvent) error
}

// AuditRecorder processes a single transition event. Implementations must be
// safe for concurrent use by multiple dispatcher workers.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.TransitionEvent) error
}
