package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// invite tokens live under their own prefix so they can't collide with
// anything else sharing the redis instance.
const inviteKeyPrefix = "friend_invite:"

// InviteRedis stores friend-invite tokens in redis, leaning on its native
// TTL for expiry. No in-process timers or cleanup needed.
type InviteRedis struct {
	client *redis.Client
}

func NewInviteRedis(client *redis.Client) *InviteRedis {
	return &InviteRedis{client: client}
}

var _ Invites = (*InviteRedis)(nil)

// Put maps token -> owner for ttl.
func (r *InviteRedis) Put(ctx context.Context, token, owner string, ttl time.Duration) error {
	if err := r.client.Set(ctx, inviteKeyPrefix+token, owner, ttl).Err(); err != nil {
		return fmt.Errorf("store invite token: %w", err)
	}
	return nil
}

// Get resolves a token to its owner. A missing or expired entry surfaces as
// ErrInviteNotFound.
func (r *InviteRedis) Get(ctx context.Context, token string) (string, error) {
	owner, err := r.client.Get(ctx, inviteKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInviteNotFound
		}
		return "", fmt.Errorf("load invite token: %w", err)
	}
	return owner, nil
}

// Delete removes a token ahead of its TTL. Deleting an absent key is fine.
func (r *InviteRedis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, inviteKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete invite token: %w", err)
	}
	return nil
}
