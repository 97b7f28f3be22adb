package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"wishlink/internal/models"

	"github.com/go-redis/redis/v8"
)

// Sentinel errors surfaced by the stores. Services match these to decide
// between "conflict" and "store is broken".
var (
	// ErrDuplicate reports a uniqueness-constraint violation.
	ErrDuplicate = errors.New("duplicate row")
	// ErrInviteNotFound reports a friend-invite token that is absent or expired.
	ErrInviteNotFound = errors.New("invite token not found")
)

type Users interface {
	Create(ctx context.Context, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Wishlist interface {
	Insert(ctx context.Context, item models.WishlistItem) (int, error)
	ListByOwner(ctx context.Context, username string) ([]models.WishlistItem, error)
	Update(ctx context.Context, username, itemName string, upd models.WishlistUpdate) (int64, error)
	Delete(ctx context.Context, username, itemName string) error
}

type Friends interface {
	Insert(ctx context.Context, f models.Friendship) error
}

// Invites is the ephemeral token -> owner mapping with a native TTL.
type Invites interface {
	Put(ctx context.Context, token, owner string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type Repository struct {
	Users    Users
	Wishlist Wishlist
	Friends  Friends
	Invites  Invites
}

func NewRepository(db *sql.DB, rdb *redis.Client) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Wishlist: NewWishlistRepository(db),
		Friends:  NewFriendRepository(db),
		Invites:  NewInviteRedis(rdb),
	}
}

// isUniqueViolation detects sqlite uniqueness-constraint failures. The
// modernc driver exposes them only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
