package ports

import (
	"context"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role, scope string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
