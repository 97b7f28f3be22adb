package handlers

import (
	"context"
	"errors"
	"net/http"

	"wishlink/internal/models"
	"wishlink/internal/service"

	"github.com/gin-gonic/gin"
)

// errSomeDB stands in for an unexpected persistence failure.
var errSomeDB = errors.New("db down")

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser *models.User
	signUpErr  error
	authToken  string
	authErr    error
	parseUser  *models.User
	parseErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastAuthUsername   string
	lastAuthPassword   string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (*models.User, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) Authenticate(_ context.Context, username, password string) (string, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.authToken, m.authErr
}

func (m *mockAuth) ParseToken(_ context.Context, token string) (*models.User, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

type mockWishlist struct {
	addItem      models.WishlistItem
	addErr       error
	lastAddOwner string
	lastAddItem  models.WishlistItem

	listItems []models.WishlistItem
	listErr   error

	updateErr      error
	lastUpdateName string
	lastUpdate     models.WishlistUpdate

	deleteErr      error
	lastDeleteName string
}

func (m *mockWishlist) Add(_ context.Context, owner string, item models.WishlistItem) (models.WishlistItem, error) {
	m.lastAddOwner = owner
	m.lastAddItem = item
	return m.addItem, m.addErr
}

func (m *mockWishlist) List(_ context.Context, owner string) ([]models.WishlistItem, error) {
	return m.listItems, m.listErr
}

func (m *mockWishlist) Update(_ context.Context, owner, itemName string, upd models.WishlistUpdate) error {
	m.lastUpdateName = itemName
	m.lastUpdate = upd
	return m.updateErr
}

func (m *mockWishlist) Delete(_ context.Context, owner, itemName string) error {
	m.lastDeleteName = itemName
	return m.deleteErr
}

type mockFriends struct {
	token    string
	tokenErr error

	friendship models.Friendship
	redeemErr  error

	lastInviteOwner string
	lastRedeemToken string
	lastRedeemUser  string
}

func (m *mockFriends) CreateInvite(_ context.Context, owner string) (string, error) {
	m.lastInviteOwner = owner
	return m.token, m.tokenErr
}

func (m *mockFriends) Redeem(_ context.Context, token, requester string) (models.Friendship, error) {
	m.lastRedeemToken = token
	m.lastRedeemUser = requester
	return m.friendship, m.redeemErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
