package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"wishlink/internal/models"
	"wishlink/internal/repository"
)

// Item field limits, mirrored by the schema.
const (
	itemNameMinLength = 3
	itemNameMaxLength = 50
	itemLinkMaxLength = 512
	wantRatingMin     = 1
	wantRatingMax     = 10
)

// WishlistService validates items and routes CRUD to the store.
type WishlistService struct {
	items repository.Wishlist
}

func NewWishlistService(items repository.Wishlist) *WishlistService {
	return &WishlistService{items: items}
}

var _ Wishlist = (*WishlistService)(nil)

// Add validates and persists a new item for owner, always with bought=false.
// A duplicate (owner, item_name) surfaces as ErrDuplicateItem.
func (s *WishlistService) Add(ctx context.Context, owner string, item models.WishlistItem) (models.WishlistItem, error) {
	item.Username = owner
	item.ItemName = normalizeItemName(item.ItemName)
	item.Bought = false

	if err := validateItemName(item.ItemName); err != nil {
		return models.WishlistItem{}, err
	}
	if item.ItemLink != nil {
		if err := validateItemLink(*item.ItemLink); err != nil {
			return models.WishlistItem{}, err
		}
	}
	if item.ItemPrice != nil {
		if err := validateItemPrice(*item.ItemPrice); err != nil {
			return models.WishlistItem{}, err
		}
	}
	if item.WantRating != nil {
		if err := validateWantRating(*item.WantRating); err != nil {
			return models.WishlistItem{}, err
		}
	}

	id, err := s.items.Insert(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.WishlistItem{}, ErrDuplicateItem
		}
		return models.WishlistItem{}, err
	}
	item.ID = id
	return item, nil
}

// List returns owner's items in storage order.
func (s *WishlistService) List(ctx context.Context, owner string) ([]models.WishlistItem, error) {
	return s.items.ListByOwner(ctx, owner)
}

// Update applies only the supplied fields to the named item. A missing item
// surfaces as ErrItemNotFound.
func (s *WishlistService) Update(ctx context.Context, owner, itemName string, upd models.WishlistUpdate) error {
	if upd.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if upd.ItemLink != nil {
		if err := validateItemLink(*upd.ItemLink); err != nil {
			return err
		}
	}
	if upd.ItemPrice != nil {
		if err := validateItemPrice(*upd.ItemPrice); err != nil {
			return err
		}
	}
	if upd.WantRating != nil {
		if err := validateWantRating(*upd.WantRating); err != nil {
			return err
		}
	}

	affected, err := s.items.Update(ctx, owner, normalizeItemName(itemName), upd)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete removes the named item; deleting an absent item is a no-op.
func (s *WishlistService) Delete(ctx context.Context, owner, itemName string) error {
	return s.items.Delete(ctx, owner, normalizeItemName(itemName))
}

func normalizeItemName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Limits count characters, not bytes, so multibyte names are measured the way
// users see them.
func validateItemName(name string) error {
	if n := utf8.RuneCountInString(name); n < itemNameMinLength || n > itemNameMaxLength {
		return fmt.Errorf("%w: item_name must be %d-%d characters", ErrValidation, itemNameMinLength, itemNameMaxLength)
	}
	return nil
}

// validateItemLink accepts absolute http(s) URLs only.
func validateItemLink(link string) error {
	if utf8.RuneCountInString(link) > itemLinkMaxLength {
		return fmt.Errorf("%w: item_link longer than %d characters", ErrValidation, itemLinkMaxLength)
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: item_link is not a valid URL", ErrValidation)
	}
	return nil
}

// validateItemPrice requires a non-negative amount with at most two
// fractional digits (cents).
func validateItemPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: item_price must not be negative", ErrValidation)
	}
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-9 {
		return fmt.Errorf("%w: item_price must have at most 2 decimal places", ErrValidation)
	}
	return nil
}

func validateWantRating(rating int) error {
	if rating < wantRatingMin || rating > wantRatingMax {
		return fmt.Errorf("%w: want_rating must be between %d and %d", ErrValidation, wantRatingMin, wantRatingMax)
	}
	return nil
}
