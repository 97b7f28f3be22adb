package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"wishlink/internal/config"
	"wishlink/internal/models"
	"wishlink/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const passwordMaxLength = 128

// AuthService handles registration, credential checks and session tokens.
type AuthService struct {
	users repository.Users
	cfg   config.AuthConfig
}

func NewAuthService(users repository.Users, cfg config.AuthConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

var _ Authorization = (*AuthService)(nil)

// sessionClaims is the signed token payload. There is deliberately no exp
// claim: expiry is computed by the verifier from the issue timestamp, so the
// envelope stays the same shape the clients already know.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID            int    `json:"id"`
	Username          string `json:"username"`
	AuthenticatedTime string `json:"authenticated_time"`
	TimeoutSeconds    int    `json:"authentication_timeout_seconds"`
}

// SignUp normalizes the username, hashes the password and creates the user.
// A taken username surfaces as ErrUsernameTaken.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", ErrValidation)
	}
	// Character counts, not byte counts: a Cyrillic username is measured the
	// same way its owner counts it.
	if utf8.RuneCountInString(username) > models.UsernameMaxLength {
		return nil, fmt.Errorf("%w: username longer than %d characters", ErrValidation, models.UsernameMaxLength)
	}
	if utf8.RuneCountInString(password) > passwordMaxLength {
		return nil, fmt.Errorf("%w: password longer than %d characters", ErrValidation, passwordMaxLength)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &models.User{ID: id, Username: username}, nil
}

// Authenticate validates credentials and returns a signed session token.
// Unknown username and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(u)
}

// ParseToken verifies the signature, resolves the user and enforces the
// timeout window computed from the embedded issue timestamp.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(accessToken, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	issuedAt, err := time.Parse(time.RFC3339, claims.AuthenticatedTime)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if issuedAt.Add(s.cfg.TokenTimeout()).Before(time.Now()) {
		return nil, ErrTokenTimedOut
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// helper: issue a signed session token for a user
func (s *AuthService) issueToken(u *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		UserID:            u.ID,
		Username:          u.Username,
		AuthenticatedTime: time.Now().UTC().Format(time.RFC3339),
		TimeoutSeconds:    s.cfg.TokenTimeoutS,
	})
	return token.SignedString([]byte(s.cfg.Secret))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
