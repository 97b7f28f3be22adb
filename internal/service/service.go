package service

import (
	"context"

	"wishlink/internal/config"
	"wishlink/internal/models"
	"wishlink/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	ParseToken(ctx context.Context, accessToken string) (*models.User, error)
}

// Wishlist exposes CRUD over a user's items.
type Wishlist interface {
	Add(ctx context.Context, owner string, item models.WishlistItem) (models.WishlistItem, error)
	List(ctx context.Context, owner string) ([]models.WishlistItem, error)
	Update(ctx context.Context, owner, itemName string, upd models.WishlistUpdate) error
	Delete(ctx context.Context, owner, itemName string) error
}

// Friends exposes the invite-token exchange that links two accounts.
type Friends interface {
	CreateInvite(ctx context.Context, owner string) (string, error)
	Redeem(ctx context.Context, token, requester string) (models.Friendship, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Wishlist
	Friends
}

// NewService wires the repository layer into concrete services. Config is
// read-only from here on.
func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.Auth),
		Wishlist:      NewWishlistService(repos.Wishlist),
		Friends:       NewFriendService(repos.Friends, repos.Invites, cfg.Friends),
	}
}
