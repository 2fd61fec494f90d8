package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentView(ctx context.Context, id string) (*models.CommentView, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.CommentView, error)
	UpdateCommentContent(ctx context.Context, id, content string, updatedAt int64) error
	DeleteComment(ctx context.Context, id string) error
}

// PostgresCommentRepository implements CommentRepository on gorm
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// NewCommentRepository returns the default CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return NewPostgresCommentRepository(db)
}

func (r *PostgresCommentRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("comments").
		Select(`comments.id AS id, comments.post_id AS post_id, comments.content AS content,
			comments.created_at AS created_at, comments.updated_at AS updated_at,
			comments.user_id AS user_id, users.name AS user_name, users.email AS user_email, users.image AS user_image,
			(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS like_count`).
		Joins("JOIN users ON users.id = comments.user_id")
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentView retrieves a comment with its author fields and like count
func (r *PostgresCommentRepository) GetCommentView(ctx context.Context, id string) (*models.CommentView, error) {
	var views []models.CommentView
	if err := r.views(ctx).Where("comments.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

// GetCommentsByPostID retrieves all comments of a post, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.CommentView, error) {
	comments := []models.CommentView{}
	err := r.views(ctx).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateCommentContent rewrites the content and bumps updated_at
func (r *PostgresCommentRepository) UpdateCommentContent(ctx context.Context, id, content string, updatedAt int64) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{"content": content, "updated_at": updatedAt}).Error
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{}).Error
}
