// Package token implements the signed bearer credential used by the API.
// Issuing and verification are pure cryptographic transforms plus a clock
// read; no store is consulted, so a token reflects the user's role and scope
// as of login, not current state.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the full claim set carried by an access token.
type Claims struct {
	Role  string `json:"role"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256-signed access tokens.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewCodec(secret, issuer, audience string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue produces a signed token projecting the user's identity, role and
// scope at this instant.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		Role:  user.Role,
		Scope: user.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a raw token string. It fails with
// ErrInvalidToken on a bad signature, malformed input, wrong algorithm, or
// an expiry at or before now. Expiry is checked regardless of signature
// validity.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
