package middleware

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-link/backend/internal/repositories"
	"github.com/anonto42/nano-link/backend/internal/services"
)

// FirebaseResolver resolves sessions from Firebase ID tokens. The Firebase
// account must have been linked through the firebase-login endpoint.
type FirebaseResolver struct {
	verifier services.FirebaseVerifier
	users    repositories.UserRepository
}

func NewFirebaseResolver(verifier services.FirebaseVerifier, users repositories.UserRepository) *FirebaseResolver {
	return &FirebaseResolver{verifier: verifier, users: users}
}

func (r *FirebaseResolver) Resolve(ctx context.Context, idToken string) (*Session, error) {
	token, err := r.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrNoSession
	}
	user, err := r.users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}
	return &Session{UserID: user.ID, Email: user.Email, Name: user.Name}, nil
}
