package ports

import (
	"context"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
