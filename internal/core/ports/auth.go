package ports

import (
	"context"

	"github.com/99minutos/booking-system/internal/core/domain"
)

// UserRepository defines the interface for user authentication persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// Token is the bearer credential handed out on login.
type Token struct {
	AccessToken string
	TokenType   string
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Token, error)
	// Authenticate resolves a bearer token to the user it was issued for.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
