package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/pkg/token"
)

func newAuthService(users ...*domain.User) (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo(users...)
	codec := token.NewCodec("test-secret", "shipment-core", "shipment-api", time.Hour)
	return NewAuthService(repo, codec), repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role, scope string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{
		ID:           "id-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Scope:        scope,
	}
	repo.byID[u.ID] = u
	return u
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newAuthService()

	user, err := svc.Register(context.Background(), "alice", "pw", domain.RoleWarehouseStaff, "W1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Error("id must be assigned")
	}
	if user.Scope != "W1" {
		t.Errorf("scope: want W1, got %q", user.Scope)
	}
	if user.PasswordHash == "pw" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if _, ok := repo.byID[user.ID]; !ok {
		t.Error("user not persisted")
	}
}

func TestRegister_CarrierScopeIsOwnID(t *testing.T) {
	svc, _ := newAuthService()

	user, err := svc.Register(context.Background(), "carl", "pw", domain.RoleCarrier, "W9")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Scope != user.ID {
		t.Errorf("carrier scope must equal own id: scope=%q id=%q", user.Scope, user.ID)
	}
}

func TestRegister_GlobalManagerHasNoScope(t *testing.T) {
	svc, _ := newAuthService()

	user, err := svc.Register(context.Background(), "greta", "pw", domain.RoleGlobalManager, "W9")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Scope != "" {
		t.Errorf("global manager must carry no scope, got %q", user.Scope)
	}
}

func TestRegister_Invalid(t *testing.T) {
	svc, _ := newAuthService()

	cases := []struct {
		name                           string
		username, password, role, scop string
	}{
		{"empty username", "", "pw", domain.RoleCarrier, ""},
		{"empty password", "alice", "", domain.RoleCarrier, ""},
		{"unknown role", "alice", "pw", "superuser", ""},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.username, tc.password, tc.role, tc.scop)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newAuthService()
	seedUser(t, repo, "GlobalManager", "pw", domain.RoleGlobalManager, "")

	signed, user, err := svc.Login(context.Background(), "GlobalManager", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != domain.RoleGlobalManager {
		t.Errorf("role: want %q, got %q", domain.RoleGlobalManager, user.Role)
	}

	codec := token.NewCodec("test-secret", "shipment-core", "shipment-api", time.Hour)
	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("sub: want %q, got %q", user.ID, claims.Subject)
	}
	if claims.Role != domain.RoleGlobalManager {
		t.Errorf("token role: want %q, got %q", domain.RoleGlobalManager, claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newAuthService()
	seedUser(t, repo, "alice", "pw", domain.RoleWarehouseStaff, "W1")

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), "", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
