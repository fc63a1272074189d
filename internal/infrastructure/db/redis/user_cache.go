package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

const userCacheTTL = 5 * time.Minute

// UserCache is a read-through cache in front of a ports.UserRepository.
// Carrier validation hits FindByID on every shipment creation, so positive
// lookups are cached by id with a short TTL. Cache failures degrade to the
// inner repository; they never fail the request.
//
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
	inner  ports.UserRepository
	log    zerolog.Logger
}

// NewUserCache wraps inner with a Redis-backed id cache.
func NewUserCache(client *redis.Client, inner ports.UserRepository, log zerolog.Logger) *UserCache {
	return &UserCache{client: client, inner: inner, log: log}
}

type cachedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	Scope        string    `json:"scope,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	key := c.key(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cu cachedUser
		if err := json.Unmarshal(raw, &cu); err == nil {
			return &domain.User{
				ID:           cu.ID,
				Username:     cu.Username,
				PasswordHash: cu.PasswordHash,
				Role:         cu.Role,
				Scope:        cu.Scope,
				CreatedAt:    cu.CreatedAt,
			}, nil
		}
		c.log.Warn().Str("key", key).Msg("corrupt user cache entry, falling through")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("user cache read failed, falling through")
	}

	user, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, user)
	return user, nil
}

// FindByUsername is not cached: it runs once per login and usernames are
// mutable lookup keys, ids are not.
func (c *UserCache) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return c.inner.FindByUsername(ctx, username)
}

func (c *UserCache) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := c.inner.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	c.store(ctx, c.key(created.ID), created)
	return created, nil
}

func (c *UserCache) store(ctx context.Context, key string, user *domain.User) {
	raw, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Scope:        user.Scope,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, userCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("user cache write failed")
	}
}

func (c *UserCache) key(id string) string {
	return fmt.Sprintf("user:%s", id)
}
