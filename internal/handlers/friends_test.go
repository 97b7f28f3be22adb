package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wishlink/internal/models"
	"wishlink/internal/service"

	"github.com/gin-gonic/gin"
)

func friendsRouter(fr *mockFriends) (*gin.Engine, *mockAuth) {
	auth := &mockAuth{parseUser: &models.User{ID: 2, Username: "bob"}}
	s := &service.Service{Authorization: auth, Friends: fr}
	return newTestRouter(s), auth
}

func TestMakeFriendToken(t *testing.T) {
	fr := &mockFriends{token: "opaque-token"}
	r, _ := friendsRouter(fr)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/friends/make_token", nil)
	req.Header = authHeader("tok")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "opaque-token" {
		t.Fatalf("expected token in response, got %v", m)
	}
	if fr.lastInviteOwner != "bob" {
		t.Fatalf("expected invite minted for bob, got %q", fr.lastInviteOwner)
	}
}

func TestMakeFriend(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		redeemErr error
		wantCode  int
		wantErr   string
	}{
		{
			name:     "success",
			body:     `{"token":"opaque-token"}`,
			wantCode: http.StatusOK,
		},
		{
			name:      "unknown token",
			body:      `{"token":"stale"}`,
			redeemErr: service.ErrNoSuchCode,
			wantCode:  http.StatusBadRequest,
			wantErr:   "no such code",
		},
		{
			name:      "self friend",
			body:      `{"token":"own-token"}`,
			redeemErr: service.ErrSelfFriend,
			wantCode:  http.StatusBadRequest,
			wantErr:   "cannot friend yourself",
		},
		{
			name:      "already friends",
			body:      `{"token":"opaque-token"}`,
			redeemErr: service.ErrAlreadyFriends,
			wantCode:  http.StatusBadRequest,
			wantErr:   "already friends",
		},
		{
			name:     "missing token field",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "store failure",
			body:      `{"token":"opaque-token"}`,
			redeemErr: errSomeDB,
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &mockFriends{
				friendship: models.Friendship{Username: "bob", Friend: "alice"},
				redeemErr:  tt.redeemErr,
			}
			r, _ := friendsRouter(fr)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/friends/make_friend", bytes.NewBufferString(tt.body))
			req.Header = authHeader("tok")
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantCode, w.Body.String())
			}

			if tt.wantCode == http.StatusOK {
				var f models.Friendship
				if err := json.Unmarshal(w.Body.Bytes(), &f); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if f.Username != "bob" || f.Friend != "alice" {
					t.Fatalf("unexpected friendship: %+v", f)
				}
				if fr.lastRedeemToken != "opaque-token" || fr.lastRedeemUser != "bob" {
					t.Fatalf("redeem args not passed through: %q/%q", fr.lastRedeemToken, fr.lastRedeemUser)
				}
				return
			}

			if tt.wantErr != "" {
				var out struct {
					Error string `json:"error"`
				}
				_ = json.Unmarshal(w.Body.Bytes(), &out)
				if out.Error != tt.wantErr {
					t.Fatalf("error message: got %q, want %q", out.Error, tt.wantErr)
				}
			}
		})
	}
}

func TestFriends_RequireAuth(t *testing.T) {
	r, _ := friendsRouter(&mockFriends{})

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/friends/make_token"},
		{http.MethodPost, "/friends/make_friend"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", tc.method, tc.path, w.Code)
		}
	}
}
