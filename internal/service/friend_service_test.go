package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wishlink/internal/config"
	"wishlink/internal/models"
	"wishlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInviteStore is an in-memory stand-in for the redis token store.
// TTL is recorded but not enforced; expiry cases set getErr instead.
type fakeInviteStore struct {
	entries map[string]string
	lastTTL time.Duration

	putErr error
	getErr error
	delErr error

	deleteCalls []string
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{entries: map[string]string{}}
}

func (f *fakeInviteStore) Put(_ context.Context, token, owner string, ttl time.Duration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[token] = owner
	f.lastTTL = ttl
	return nil
}

func (f *fakeInviteStore) Get(_ context.Context, token string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	owner, ok := f.entries[token]
	if !ok {
		return "", repository.ErrInviteNotFound
	}
	return owner, nil
}

func (f *fakeInviteStore) Delete(_ context.Context, token string) error {
	f.deleteCalls = append(f.deleteCalls, token)
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.entries, token)
	return nil
}

type fakeFriendsRepo struct {
	insertErr error
	inserted  []models.Friendship
}

func (f *fakeFriendsRepo) Insert(_ context.Context, fr models.Friendship) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, fr)
	return nil
}

func testFriendsConfig() config.FriendsConfig {
	return config.FriendsConfig{InviteTTLS: 600}
}

func TestFriendService_CreateInvite(t *testing.T) {
	invites := newFakeInviteStore()
	svc := NewFriendService(&fakeFriendsRepo{}, invites, testFriendsConfig())

	token, err := svc.CreateInvite(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "alice", invites.entries[token])
	assert.Equal(t, 10*time.Minute, invites.lastTTL)

	// Tokens are random: a second invite never repeats the first.
	token2, err := svc.CreateInvite(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestFriendService_Redeem_Success(t *testing.T) {
	invites := newFakeInviteStore()
	friends := &fakeFriendsRepo{}
	svc := NewFriendService(friends, invites, testFriendsConfig())

	token, err := svc.CreateInvite(context.Background(), "alice")
	require.NoError(t, err)

	f, err := svc.Redeem(context.Background(), token, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.Friendship{Username: "bob", Friend: "alice"}, f)
	require.Len(t, friends.inserted, 1)

	// Single use: the entry is consumed on success.
	assert.NotContains(t, invites.entries, token)
	_, err = svc.Redeem(context.Background(), token, "carol")
	require.ErrorIs(t, err, ErrNoSuchCode)
}

func TestFriendService_Redeem_UnknownToken(t *testing.T) {
	svc := NewFriendService(&fakeFriendsRepo{}, newFakeInviteStore(), testFriendsConfig())

	_, err := svc.Redeem(context.Background(), "no-such-token", "bob")
	require.ErrorIs(t, err, ErrNoSuchCode)
}

func TestFriendService_Redeem_Self(t *testing.T) {
	invites := newFakeInviteStore()
	friends := &fakeFriendsRepo{}
	svc := NewFriendService(friends, invites, testFriendsConfig())

	token, err := svc.CreateInvite(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), token, "alice")
	require.ErrorIs(t, err, ErrSelfFriend)

	// A failed redeem must not consume the token or create an edge.
	assert.Contains(t, invites.entries, token)
	assert.Empty(t, friends.inserted)
}

func TestFriendService_Redeem_AlreadyFriends(t *testing.T) {
	invites := newFakeInviteStore()
	svc := NewFriendService(&fakeFriendsRepo{insertErr: repository.ErrDuplicate}, invites, testFriendsConfig())

	token, err := svc.CreateInvite(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Redeem(context.Background(), token, "bob")
	require.ErrorIs(t, err, ErrAlreadyFriends)
	assert.Contains(t, invites.entries, token, "duplicate redeem must not consume the token")
}

func TestFriendService_Redeem_DeleteFailureIsIgnored(t *testing.T) {
	invites := newFakeInviteStore()
	invites.delErr = errors.New("redis hiccup")
	svc := NewFriendService(&fakeFriendsRepo{}, invites, testFriendsConfig())

	token, err := svc.CreateInvite(context.Background(), "alice")
	require.NoError(t, err)

	// The friendship still lands even if the consume fails; TTL cleans up.
	f, err := svc.Redeem(context.Background(), token, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", f.Friend)
	assert.Equal(t, []string{token}, invites.deleteCalls)
}

func TestFriendService_StoreErrorsSurface(t *testing.T) {
	boom := errors.New("redis down")

	invites := newFakeInviteStore()
	invites.putErr = boom
	svc := NewFriendService(&fakeFriendsRepo{}, invites, testFriendsConfig())
	_, err := svc.CreateInvite(context.Background(), "alice")
	require.ErrorIs(t, err, boom)

	invites = newFakeInviteStore()
	invites.getErr = boom
	svc = NewFriendService(&fakeFriendsRepo{}, invites, testFriendsConfig())
	_, err = svc.Redeem(context.Background(), "tok", "bob")
	require.ErrorIs(t, err, boom)
}
