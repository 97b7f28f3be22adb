package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"wishlink/internal/models"
)

type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

var _ Wishlist = (*WishlistRepository)(nil)

const (
	insertItemSQL = `INSERT INTO wishlist (username, item_name, item_link, item_price, want_rating, bought)
VALUES (?, ?, ?, ?, ?, ?)`
	selectItemsByOwnerSQL = `SELECT id, username, item_name, item_link, item_price, want_rating, bought
FROM wishlist WHERE username = ? ORDER BY id`
	deleteItemSQL = `DELETE FROM wishlist WHERE username = ? AND item_name = ?`
)

// Insert persists a new item and returns its ID.
// A (username, item_name) collision surfaces as ErrDuplicate.
func (r *WishlistRepository) Insert(ctx context.Context, item models.WishlistItem) (int, error) {
	res, err := r.db.ExecContext(ctx, insertItemSQL,
		item.Username, item.ItemName, item.ItemLink, item.ItemPrice, item.WantRating, item.Bought)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert wishlist item %q for %q: %w", item.ItemName, item.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for item %q: %w", item.ItemName, err)
	}
	return int(lastID), nil
}

// ListByOwner returns all items owned by username in insertion order.
func (r *WishlistRepository) ListByOwner(ctx context.Context, username string) ([]models.WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, selectItemsByOwnerSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select wishlist for %q: %w", username, err)
	}
	defer func() { _ = rows.Close() }()

	var items []models.WishlistItem
	for rows.Next() {
		var it models.WishlistItem
		if err := rows.Scan(&it.ID, &it.Username, &it.ItemName, &it.ItemLink, &it.ItemPrice, &it.WantRating, &it.Bought); err != nil {
			return nil, fmt.Errorf("scan wishlist row for %q: %w", username, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows for %q: %w", username, err)
	}
	return items, nil
}

// Update applies only the non-nil fields of upd to the matching row and
// returns the number of rows affected (0 when no such item exists).
func (r *WishlistRepository) Update(ctx context.Context, username, itemName string, upd models.WishlistUpdate) (int64, error) {
	var (
		sets []string
		args []any
	)
	if upd.ItemLink != nil {
		sets = append(sets, "item_link = ?")
		args = append(args, *upd.ItemLink)
	}
	if upd.ItemPrice != nil {
		sets = append(sets, "item_price = ?")
		args = append(args, *upd.ItemPrice)
	}
	if upd.WantRating != nil {
		sets = append(sets, "want_rating = ?")
		args = append(args, *upd.WantRating)
	}
	if upd.Bought != nil {
		sets = append(sets, "bought = ?")
		args = append(args, *upd.Bought)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	query := "UPDATE wishlist SET " + strings.Join(sets, ", ") + " WHERE username = ? AND item_name = ?"
	args = append(args, username, itemName)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update wishlist item %q for %q: %w", itemName, username, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for item %q: %w", itemName, err)
	}
	return affected, nil
}

// Delete removes the matching row; deleting an absent item is not an error.
func (r *WishlistRepository) Delete(ctx context.Context, username, itemName string) error {
	if _, err := r.db.ExecContext(ctx, deleteItemSQL, username, itemName); err != nil {
		return fmt.Errorf("delete wishlist item %q for %q: %w", itemName, username, err)
	}
	return nil
}
