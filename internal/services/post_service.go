package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/nano-link/backend/internal/metrics"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
)

const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 100
)

// PostService manages posts and post likes.
type PostService struct {
	store *repositories.Store
	now   func() int64
}

func NewPostService(store *repositories.Store) *PostService {
	return &PostService{store: store, now: nowMillis}
}

// Feed returns one page of posts, newest first, annotated for viewerID.
// page starts at 1; limit defaults to 10 and is capped at 100.
func (s *PostService) Feed(ctx context.Context, viewerID string, page, limit int) ([]models.FeedPost, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	posts, err := s.store.Posts.GetFeed(ctx, viewerID, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return posts, nil
}

// Get returns a single post annotated for viewerID.
func (s *PostService) Get(ctx context.Context, postID, viewerID string) (*models.FeedPost, error) {
	post, err := s.store.Posts.GetFeedPost(ctx, postID, viewerID)
	if err != nil {
		return nil, lookupError(err, "Post not found", "get post")
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, userID, content string) (*models.FeedPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	now := s.now()
	post := &models.Post{UserID: userID, Content: content, CreatedAt: now, UpdatedAt: now}
	if err := s.store.Posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.Get(ctx, post.ID, userID)
}

// Update rewrites the content of a post owned by userID.
func (s *PostService) Update(ctx context.Context, postID, userID, content string) (*models.FeedPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	if _, err := s.ownedPost(ctx, postID, userID); err != nil {
		return nil, err
	}
	if err := s.store.Posts.UpdatePostContent(ctx, postID, content, s.now()); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.Get(ctx, postID, userID)
}

// Delete removes a post owned by userID together with its likes and comments.
func (s *PostService) Delete(ctx context.Context, postID, userID string) error {
	if _, err := s.ownedPost(ctx, postID, userID); err != nil {
		return err
	}
	if err := s.store.Posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Like records userID's like and notifies the author. A second like is a
// Conflict.
func (s *PostService) Like(ctx context.Context, postID, userID string) error {
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return lookupError(err, "Post not found", "get post")
	}

	now := s.now()
	var sent bool
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Likes.CreateLike(ctx, &models.PostLike{PostID: post.ID, UserID: userID, CreatedAt: now}); err != nil {
			return err
		}
		n := models.NewNotification(post.UserID, userID, models.NotificationPostLike, post.ID, models.EntityTypePost)
		n.CreatedAt = now
		var err error
		sent, err = notify(ctx, tx, n)
		return err
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return conflict("Post already liked")
	}
	if err != nil {
		return fmt.Errorf("like post: %w", err)
	}

	metrics.LikesTotal.WithLabelValues(models.EntityTypePost).Inc()
	recordNotification(sent, models.NotificationPostLike)
	return nil
}

// Unlike removes userID's like. Removing a like that does not exist is not
// an error.
func (s *PostService) Unlike(ctx context.Context, postID, userID string) error {
	if _, err := s.store.Likes.DeleteLike(ctx, postID, userID); err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	return nil
}

func (s *PostService) ownedPost(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err, "Post not found", "get post")
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}
	return post, nil
}
