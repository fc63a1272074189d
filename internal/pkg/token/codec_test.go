package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

func testCodec() *Codec {
	return NewCodec("secret", "shipment-core", "shipment-api", time.Hour)
}

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Role:     domain.RoleStoreManager,
		Scope:    "W1",
	}
}

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	codec := testCodec()

	raw, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("sub: want %q, got %q", "user-1", claims.Subject)
	}
	if claims.Role != domain.RoleStoreManager {
		t.Errorf("role: want %q, got %q", domain.RoleStoreManager, claims.Role)
	}
	if claims.Scope != "W1" {
		t.Errorf("scope: want %q, got %q", "W1", claims.Scope)
	}
	if claims.Issuer != "shipment-core" {
		t.Errorf("iss: want %q, got %q", "shipment-core", claims.Issuer)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("iat and exp must be set")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("exp must be after iat")
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	raw, err := testCodec().Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewCodec("different-secret", "shipment-core", "shipment-api", time.Hour)
	if _, err := other.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	if _, err := testCodec().Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := testCodec()
	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	// Signed with the right key, but issued two hours in the past with a
	// one-hour TTL. Expiry must fail verification on its own.
	raw, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec.now = time.Now
	if _, err := codec.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_Verify_RejectsUnsignedAlg(t *testing.T) {
	claims := Claims{
		Role: domain.RoleGlobalManager,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "shipment-core",
			Audience:  jwt.ClaimStrings{"shipment-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := testCodec().Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestCodec_Verify_WrongIssuer(t *testing.T) {
	other := NewCodec("secret", "someone-else", "shipment-api", time.Hour)
	raw, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := testCodec().Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}
