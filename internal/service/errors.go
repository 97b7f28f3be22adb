package service

import "errors"

// Domain errors. Handlers match these with errors.Is to pick an HTTP status;
// anything else is an internal store failure and maps to 500.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// deliberately indistinguishable to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenTimedOut      = errors.New("token has timed out")

	ErrUsernameTaken = errors.New("username is not available")

	ErrDuplicateItem = errors.New("item already listed in your wishlist")
	ErrItemNotFound  = errors.New("no such item in your wishlist")

	ErrNoSuchCode     = errors.New("no such code")
	ErrSelfFriend     = errors.New("cannot friend yourself")
	ErrAlreadyFriends = errors.New("already friends")

	// ErrValidation wraps the first request-shape violation found.
	ErrValidation = errors.New("validation failed")
)
