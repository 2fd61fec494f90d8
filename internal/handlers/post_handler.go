package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts, the feed and post likes
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
}

// GetFeed returns a page of posts, newest first. Invalid page or limit
// values fall back to the defaults.
func (h *PostHandler) GetFeed(c echo.Context) error {
	session := middleware.CurrentSession(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	posts, err := h.posts.Feed(c.Request().Context(), session.UserID, page, limit)
	if err != nil {
		return serviceError(c, err, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	session := middleware.CurrentSession(c)

	post, err := h.posts.Get(c.Request().Context(), c.Param("id"), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), session.UserID, req.Content)
	if err != nil {
		return serviceError(c, err, "Failed to create post")
	}
	return c.JSON(http.StatusCreated, echo.Map{"post": post})
}

// UpdatePost edits the content of a post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Update(c.Request().Context(), c.Param("id"), session.UserID, req.Content)
	if err != nil {
		return serviceError(c, err, "Failed to update post")
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to delete post")
	}
	return success(c, http.StatusOK)
}

// LikePost likes a post. A second like is rejected.
func (h *PostHandler) LikePost(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.posts.Like(c.Request().Context(), c.Param("id"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to like post")
	}
	return success(c, http.StatusCreated)
}

// UnlikePost removes the caller's like, if any
func (h *PostHandler) UnlikePost(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if err := h.posts.Unlike(c.Request().Context(), c.Param("id"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to unlike post")
	}
	return success(c, http.StatusOK)
}
