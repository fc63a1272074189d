package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
	"github.com/CapDevCostaRica/shipment-core/internal/pkg/token"
)

// AuthService implements provisioning and login.
type AuthService struct {
	repo  ports.UserRepository
	codec *token.Codec
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec) *AuthService {
	return &AuthService{repo: repo, codec: codec}
}

// Register provisions a new user. A carrier's scope is always their own id;
// any caller-supplied scope is ignored for that role.
func (s *AuthService) Register(ctx context.Context, username, password, role, scope string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	switch role {
	case domain.RoleCarrier:
		scope = id
	case domain.RoleGlobalManager:
		scope = ""
	}

	user := &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Scope:        scope,
		CreatedAt:    time.Now().UTC(),
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and issues a signed token projecting the
// user's role and scope at this moment. A token never tracks later changes
// to the user record.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// An unknown username and a wrong password look the same to the caller.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}
