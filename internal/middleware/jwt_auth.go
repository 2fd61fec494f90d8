package middleware

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-link/backend/internal/repositories"
	"github.com/anonto42/nano-link/backend/internal/services"
)

// JWTResolver resolves sessions from locally issued HS256 tokens. The user
// must still exist.
type JWTResolver struct {
	tokens *services.TokenManager
	users  repositories.UserRepository
}

func NewJWTResolver(tokens *services.TokenManager, users repositories.UserRepository) *JWTResolver {
	return &JWTResolver{tokens: tokens, users: users}
}

func (r *JWTResolver) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := r.tokens.Parse(token)
	if err != nil {
		return nil, ErrNoSession
	}
	user, err := r.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}
	return &Session{UserID: user.ID, Email: user.Email, Name: user.Name}, nil
}
