package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterAuthRoutes registers the public authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// RegisterSessionRoutes registers routes that need an authenticated session
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.GET("/auth/me", h.Me)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Signup(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "Failed to sign up")
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.Signin(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "Failed to sign in")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// FirebaseLogin exchanges a Firebase ID token for a local session token
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.auth.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return serviceError(c, err, "Failed to sign in")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// Me returns the user behind the current session
func (h *AuthHandler) Me(c echo.Context) error {
	session := middleware.CurrentSession(c)
	user, err := h.auth.User(c.Request().Context(), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
