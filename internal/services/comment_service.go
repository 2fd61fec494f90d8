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

// CommentService manages comments and comment likes.
type CommentService struct {
	store *repositories.Store
	now   func() int64
}

func NewCommentService(store *repositories.Store) *CommentService {
	return &CommentService{store: store, now: nowMillis}
}

// List returns the comments of a post, newest first.
func (s *CommentService) List(ctx context.Context, postID string) ([]models.CommentView, error) {
	if _, err := s.store.Posts.GetPostByID(ctx, postID); err != nil {
		return nil, lookupError(err, "Post not found", "get post")
	}
	comments, err := s.store.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create adds a comment by userID and notifies the post author.
func (s *CommentService) Create(ctx context.Context, postID, userID, content string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupError(err, "Post not found", "get post")
	}

	now := s.now()
	comment := &models.Comment{PostID: post.ID, UserID: userID, Content: content, CreatedAt: now, UpdatedAt: now}
	var sent bool
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Comments.CreateComment(ctx, comment); err != nil {
			return err
		}
		n := models.NewNotification(post.UserID, userID, models.NotificationPostComment, comment.ID, models.EntityTypeComment)
		n.CreatedAt = now
		var err error
		sent, err = notify(ctx, tx, n)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	recordNotification(sent, models.NotificationPostComment)

	return s.view(ctx, comment.ID)
}

// Update rewrites a comment owned by userID.
func (s *CommentService) Update(ctx context.Context, postID, commentID, userID, content string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	if _, err := s.ownedComment(ctx, postID, commentID, userID); err != nil {
		return nil, err
	}
	if err := s.store.Comments.UpdateCommentContent(ctx, commentID, content, s.now()); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.view(ctx, commentID)
}

// Delete removes a comment owned by userID.
func (s *CommentService) Delete(ctx context.Context, postID, commentID, userID string) error {
	if _, err := s.ownedComment(ctx, postID, commentID, userID); err != nil {
		return err
	}
	if err := s.store.Comments.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// Like records userID's like on a comment and notifies its author.
func (s *CommentService) Like(ctx context.Context, postID, commentID, userID string) error {
	comment, err := s.comment(ctx, postID, commentID)
	if err != nil {
		return err
	}

	now := s.now()
	var sent bool
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		like := &models.CommentLike{CommentID: comment.ID, UserID: userID, CreatedAt: now}
		if err := tx.CommentLikes.CreateCommentLike(ctx, like); err != nil {
			return err
		}
		n := models.NewNotification(comment.UserID, userID, models.NotificationCommentLike, comment.ID, models.EntityTypeComment)
		n.CreatedAt = now
		var err error
		sent, err = notify(ctx, tx, n)
		return err
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return conflict("Comment already liked")
	}
	if err != nil {
		return fmt.Errorf("like comment: %w", err)
	}

	metrics.LikesTotal.WithLabelValues(models.EntityTypeComment).Inc()
	recordNotification(sent, models.NotificationCommentLike)
	return nil
}

// Unlike removes userID's like on a comment, if any.
func (s *CommentService) Unlike(ctx context.Context, commentID, userID string) error {
	if _, err := s.store.CommentLikes.DeleteCommentLike(ctx, commentID, userID); err != nil {
		return fmt.Errorf("unlike comment: %w", err)
	}
	return nil
}

// comment loads a comment and checks that it belongs to postID.
func (s *CommentService) comment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	comment, err := s.store.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, lookupError(err, "Comment not found", "get comment")
	}
	if comment.PostID != postID {
		return nil, notFound("Comment not found")
	}
	return comment, nil
}

func (s *CommentService) ownedComment(ctx context.Context, postID, commentID, userID string) (*models.Comment, error) {
	comment, err := s.comment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) view(ctx context.Context, commentID string) (*models.CommentView, error) {
	view, err := s.store.Comments.GetCommentView(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	return view, nil
}
