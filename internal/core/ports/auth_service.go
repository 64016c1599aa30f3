package ports

import (
	"context"

	"github.com/stickpark/game-portal/internal/core/domain"
)

// RegisterInput carries the fields required to open a new account.
type RegisterInput struct {
	Username    string
	Password    string
	PhoneNumber string
}

// AuthService implements registration and login.
type AuthService interface {
	// Register creates the account and returns it with a signed token.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
