package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests related to user profiles
type ProfileHandler struct {
	profiles *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles", h.GetOwnProfile)
	g.GET("/profiles/:userId", h.GetProfile)
	g.PATCH("/profiles/:userId", h.UpdateProfile)
}

// GetOwnProfile retrieves the authenticated user's profile
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	session := middleware.CurrentSession(c)
	return h.profile(c, session.UserID)
}

// GetProfile retrieves any user's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	return h.profile(c, c.Param("userId"))
}

func (h *ProfileHandler) profile(c echo.Context, userID string) error {
	profile, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

// UpdateProfile creates or updates the caller's own profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.Upsert(c.Request().Context(), session.UserID, c.Param("userId"), req)
	if err != nil {
		return serviceError(c, err, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}
