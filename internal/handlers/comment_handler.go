package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and comment likes
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment)
	g.PATCH("/posts/:id/comments/:commentId", h.UpdateComment)
	g.DELETE("/posts/:id/comments/:commentId", h.DeleteComment)
	g.POST("/posts/:id/comments/:commentId/like", h.LikeComment)
	g.DELETE("/posts/:id/comments/:commentId/like", h.UnlikeComment)
}

// GetComments lists the comments of a post, newest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.comments.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err, "Failed to fetch comments")
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Create(c.Request().Context(), c.Param("id"), session.UserID, req.Content)
	if err != nil {
		return serviceError(c, err, "Failed to create comment")
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// UpdateComment edits a comment owned by the caller
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Update(c.Request().Context(), c.Param("id"), c.Param("commentId"), session.UserID, req.Content)
	if err != nil {
		return serviceError(c, err, "Failed to update comment")
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": comment})
}

// DeleteComment deletes a comment owned by the caller
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.comments.Delete(c.Request().Context(), c.Param("id"), c.Param("commentId"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to delete comment")
	}
	return success(c, http.StatusOK)
}

// LikeComment likes a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.comments.Like(c.Request().Context(), c.Param("id"), c.Param("commentId"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to like comment")
	}
	return success(c, http.StatusCreated)
}

// UnlikeComment removes the caller's like from a comment, if any
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.comments.Unlike(c.Request().Context(), c.Param("commentId"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to unlike comment")
	}
	return success(c, http.StatusOK)
}
