package repository

import (
	"context"
	"database/sql"
	"fmt"

	"wishlink/internal/models"
)

type FriendRepository struct {
	db *sql.DB
}

func NewFriendRepository(db *sql.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

var _ Friends = (*FriendRepository)(nil)

const insertFriendshipSQL = `INSERT INTO friends (username, friend) VALUES (?, ?)`

// Insert records the directed edge f.Username -> f.Friend. The UNIQUE
// constraint on (username, friend) makes concurrent duplicate attempts safe:
// the loser surfaces ErrDuplicate.
func (r *FriendRepository) Insert(ctx context.Context, f models.Friendship) error {
	if _, err := r.db.ExecContext(ctx, insertFriendshipSQL, f.Username, f.Friend); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert friendship %q -> %q: %w", f.Username, f.Friend, err)
	}
	return nil
}
