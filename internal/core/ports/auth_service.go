package ports

import (
	"context"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/domain"
)

// TokenPair is issued on login: a short-lived access token and a longer-lived
// refresh token, both HS256-signed JWTs.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements sign-up, login and refresh-token exchange.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a fresh access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
