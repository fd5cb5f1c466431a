package domain

import "errors"

var (
	ErrUserExists         = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// User models an account able to obtain access tokens.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
