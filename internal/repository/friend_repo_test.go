package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"wishlink/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockFriendRepo(t *testing.T) (*FriendRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewFriendRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestFriendRepository_Insert(t *testing.T) {
	tests := []struct {
		name          string
		friendship    models.Friendship
		mockExpect    func(sqlmock.Sqlmock)
		wantErr       bool
		wantDuplicate bool
	}{
		{
			name:       "success",
			friendship: models.Friendship{Username: "bob", Friend: "alice"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertFriendshipSQL)).
					WithArgs("bob", "alice").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:       "already friends",
			friendship: models.Friendship{Username: "bob", Friend: "alice"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertFriendshipSQL)).
					WithArgs("bob", "alice").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: friends.username, friends.friend"))
			},
			wantErr:       true,
			wantDuplicate: true,
		},
		{
			name:       "exec error",
			friendship: models.Friendship{Username: "bob", Friend: "alice"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertFriendshipSQL)).
					WithArgs("bob", "alice").
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockFriendRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			err := repo.Insert(context.Background(), tt.friendship)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantDuplicate {
					if !errors.Is(err, ErrDuplicate) {
						t.Fatalf("expected ErrDuplicate, got %v", err)
					}
				} else if !strings.Contains(err.Error(), "insert friendship") {
					t.Fatalf("expected wrapped insert error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
