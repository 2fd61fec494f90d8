package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	CreateCommentLike(ctx context.Context, like *models.CommentLike) error
	DeleteCommentLike(ctx context.Context, commentID, userID string) (bool, error)
}

// PostgresCommentLikeRepository implements CommentLikeRepository on gorm
type PostgresCommentLikeRepository struct {
	db *gorm.DB
}

// NewPostgresCommentLikeRepository creates a new PostgresCommentLikeRepository
func NewPostgresCommentLikeRepository(db *gorm.DB) *PostgresCommentLikeRepository {
	return &PostgresCommentLikeRepository{db: db}
}

// NewCommentLikeRepository returns the default CommentLikeRepository
func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return NewPostgresCommentLikeRepository(db)
}

func (r *PostgresCommentLikeRepository) CreateCommentLike(ctx context.Context, like *models.CommentLike) error {
	return translateError(r.db.WithContext(ctx).Create(like).Error)
}

func (r *PostgresCommentLikeRepository) DeleteCommentLike(ctx context.Context, commentID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}


