package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SearchHandler handles user and post search
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search matches ?q= against users and posts; ?type= narrows the kinds
func (h *SearchHandler) Search(c echo.Context) error {
	results, err := h.search.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("type"))
	if err != nil {
		return serviceError(c, err, "Failed to search")
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}
