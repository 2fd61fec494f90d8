package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetFeedPost(ctx context.Context, id, viewerID string) (*models.FeedPost, error)
	GetFeed(ctx context.Context, viewerID string, offset, limit int) ([]models.FeedPost, error)
	UpdatePostContent(ctx context.Context, id, content string, updatedAt int64) error
	DeletePost(ctx context.Context, id string) error
	SearchPosts(ctx context.Context, query string, limit int) ([]models.PostView, error)
}

// PostgresPostRepository implements PostRepository on gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// NewPostRepository returns the default PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return NewPostgresPostRepository(db)
}

const postViewColumns = `posts.id AS id, posts.content AS content, posts.created_at AS created_at,
	posts.updated_at AS updated_at, posts.user_id AS user_id, users.name AS user_name,
	users.email AS user_email, users.image AS user_image`

// feedColumns adds the per-post aggregates. The single placeholder is the viewer id.
const feedColumns = postViewColumns + `,
	(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS like_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count,
	CASE WHEN EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = posts.id AND pl.user_id = ?) THEN 1 ELSE 0 END AS is_liked_by_current_user`

func (r *PostgresPostRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("posts").
		Select(postViewColumns).
		Joins("JOIN users ON users.id = posts.user_id")
}

func (r *PostgresPostRepository) feed(ctx context.Context, viewerID string) *gorm.DB {
	return r.db.WithContext(ctx).Table("posts").
		Select(feedColumns, viewerID).
		Joins("JOIN users ON users.id = posts.user_id")
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}


// GetFeedPost retrieves one post with aggregates as seen by viewerID
func (r *PostgresPostRepository) GetFeedPost(ctx context.Context, id, viewerID string) (*models.FeedPost, error) {
	var posts []models.FeedPost
	if err := r.feed(ctx, viewerID).Where("posts.id = ?", id).Limit(1).Scan(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &posts[0], nil
}

// GetFeed returns one page of all posts, newest first
func (r *PostgresPostRepository) GetFeed(ctx context.Context, viewerID string, offset, limit int) ([]models.FeedPost, error) {
	posts := []models.FeedPost{}
	err := r.feed(ctx, viewerID).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePostContent rewrites the content and bumps updated_at
func (r *PostgresPostRepository) UpdatePostContent(ctx context.Context, id, content string, updatedAt int64) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{"content": content, "updated_at": updatedAt}).Error
}

// DeletePost deletes a post. Likes and comments cascade.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{}).Error
}

// SearchPosts matches post content (case-insensitive), newest first
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query string, limit int) ([]models.PostView, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	posts := []models.PostView{}
	err := r.views(ctx).
		Where("LOWER(posts.content) LIKE ?", pattern).
		Order("posts.created_at DESC").
		Limit(limit).
		Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
