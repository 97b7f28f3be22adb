package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"wishlink/internal/config"
	"wishlink/internal/models"
	"wishlink/internal/repository"
)

// inviteTokenBytes is the entropy of a friend-invite token. 32 random bytes
// make collisions a non-issue within any realistic TTL.
const inviteTokenBytes = 32

// FriendService mints short-lived invite tokens and redeems them into
// friendship edges.
type FriendService struct {
	friends repository.Friends
	invites repository.Invites
	cfg     config.FriendsConfig
}

func NewFriendService(friends repository.Friends, invites repository.Invites, cfg config.FriendsConfig) *FriendService {
	return &FriendService{friends: friends, invites: invites, cfg: cfg}
}

var _ Friends = (*FriendService)(nil)

// CreateInvite generates an opaque token and stores token -> owner with the
// configured TTL.
func (s *FriendService) CreateInvite(ctx context.Context, owner string) (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.invites.Put(ctx, token, owner, s.cfg.InviteTTL()); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem resolves the token's owner and records requester -> owner.
// Tokens are single use: a successful redeem consumes the entry.
func (s *FriendService) Redeem(ctx context.Context, token, requester string) (models.Friendship, error) {
	owner, err := s.invites.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrInviteNotFound) {
			return models.Friendship{}, ErrNoSuchCode
		}
		return models.Friendship{}, err
	}

	if owner == requester {
		return models.Friendship{}, ErrSelfFriend
	}

	f := models.Friendship{Username: requester, Friend: owner}
	if err := s.friends.Insert(ctx, f); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Friendship{}, ErrAlreadyFriends
		}
		return models.Friendship{}, err
	}

	// Best-effort: the entry expires on its own if the delete fails.
	_ = s.invites.Delete(ctx, token)

	return f, nil
}
