package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ConnectionHandler handles HTTP requests related to connections
type ConnectionHandler struct {
	connections *services.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(connections *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.GET("/connections", h.ListConnections)
	g.POST("/connections", h.CreateConnection)
	g.GET("/connections/suggestions", h.GetSuggestions)
	g.PATCH("/connections/:id", h.UpdateConnection)
	g.DELETE("/connections/:id", h.DeleteConnection)
}

// ListConnections lists the caller's connections filtered by ?status=
func (h *ConnectionHandler) ListConnections(c echo.Context) error {
	session := middleware.CurrentSession(c)

	connections, err := h.connections.List(c.Request().Context(), session.UserID, c.QueryParam("status"))
	if err != nil {
		return serviceError(c, err, "Failed to fetch connections")
	}
	return c.JSON(http.StatusOK, echo.Map{"connections": connections})
}

// CreateConnection sends a connection request
func (h *ConnectionHandler) CreateConnection(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.CreateConnectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	conn, err := h.connections.Request(c.Request().Context(), session.UserID, req.AddresseeID)
	if err != nil {
		return serviceError(c, err, "Failed to create connection")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "connectionId": conn.ID})
}

// UpdateConnection accepts or rejects a pending request addressed to the caller
func (h *ConnectionHandler) UpdateConnection(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.UpdateConnectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.connections.Respond(c.Request().Context(), c.Param("id"), session.UserID, req.Status); err != nil {
		return serviceError(c, err, "Failed to update connection")
	}
	return success(c, http.StatusOK)
}

// DeleteConnection removes a connection the caller is a party to
func (h *ConnectionHandler) DeleteConnection(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.connections.Delete(c.Request().Context(), c.Param("id"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to delete connection")
	}
	return success(c, http.StatusOK)
}

// GetSuggestions returns users the caller could connect with
func (h *ConnectionHandler) GetSuggestions(c echo.Context) error {
	session := middleware.CurrentSession(c)

	suggestions, err := h.connections.Suggestions(c.Request().Context(), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch suggestions")
	}
	return c.JSON(http.StatusOK, echo.Map{"suggestions": suggestions})
}
