package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for post like operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.PostLike) error
	DeleteLike(ctx context.Context, postID, userID string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository on gorm
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// NewLikeRepository returns the default LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return NewPostgresLikeRepository(db)
}

// CreateLike inserts a like. A second like by the same user is ErrDuplicate.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.PostLike) error {
	return translateError(r.db.WithContext(ctx).Create(like).Error)
}

// DeleteLike removes the like and reports whether one existed
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}


