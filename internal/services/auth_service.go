package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// FirebaseVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type FirebaseVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService registers users and exchanges credentials for session tokens.
type AuthService struct {
	store    *repositories.Store
	tokens   *TokenManager
	firebase FirebaseVerifier
	cost     int
}

// NewAuthService creates an AuthService. firebase may be nil, in which case
// FirebaseLogin is unavailable.
func NewAuthService(store *repositories.Store, tokens *TokenManager, firebase FirebaseVerifier) *AuthService {
	return &AuthService{store: store, tokens: tokens, firebase: firebase, cost: bcrypt.DefaultCost}
}

// FirebaseEnabled reports whether Firebase ID tokens can be exchanged.
func (s *AuthService) FirebaseEnabled() bool {
	return s.firebase != nil
}

// Signup creates a password account and returns a session token for it.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (string, *models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
	}
	if err := s.store.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return "", nil, conflict("User with this email already registered")
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// User returns the account behind a session.
func (s *AuthService) User(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "get user")
	}
	return user, nil
}

// Signin checks email and password and returns a session token.
func (s *AuthService) Signin(ctx context.Context, req models.SigninRequest) (string, *models.User, error) {
	user, err := s.store.Users.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return "", nil, unauthenticated("Invalid email or password")
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, unauthenticated("Invalid email or password")
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// FirebaseLogin verifies a Firebase ID token, links or creates the matching
// user and returns a local session token.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (string, *models.User, error) {
	if s.firebase == nil {
		return "", nil, notFound("Firebase login is not enabled")
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", nil, unauthenticated("Invalid Firebase ID token")
	}

	user, err := s.upsertFirebaseUser(ctx, token)
	if err != nil {
		return "", nil, err
	}
	local, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return local, user, nil
}

// upsertFirebaseUser finds the user by firebase uid, then by email, and
// creates one when neither matches.
func (s *AuthService) upsertFirebaseUser(ctx context.Context, token *auth.Token) (*models.User, error) {
	uid := token.UID
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(email)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	user, err := s.store.Users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		if email != "" {
			user.Email = email
		}
		if name != "" {
			user.Name = name
		}
		if err := s.store.Users.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return user, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("get user by firebase uid: %w", err)
	}

	if email == "" {
		return nil, validationError("Firebase account has no email")
	}
	user, err = s.store.Users.GetUserByEmail(ctx, email)
	if err == nil {
		user.FirebaseUID = &uid
		if err := s.store.Users.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("link firebase uid: %w", err)
		}
		return user, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user = &models.User{Name: name, Email: email, Image: picture, FirebaseUID: &uid}
	if err := s.store.Users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
