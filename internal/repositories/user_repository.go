package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	SearchUsers(ctx context.Context, query string, limit int) ([]models.SearchUser, error)
	ListUsersExcept(ctx context.Context, excludeIDs []string, limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository on gorm. The name is kept
// from the postgres-only days; queries stay portable across drivers.
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// NewUserRepository returns the default UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return NewPostgresUserRepository(db)
}

// CreateUser inserts a user. A taken email or firebase uid yields ErrDuplicate.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

// DeleteUser deletes a user by ID. Dependent rows go with it via cascades.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

// SearchUsers matches name, email or profile headline (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string, limit int) ([]models.SearchUser, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	users := []models.SearchUser{}
	err := r.db.WithContext(ctx).Table("users").
		Select("users.id AS id, users.name AS name, users.email AS email, users.image AS image, profiles.headline AS headline, profiles.location AS location").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(profiles.headline) LIKE ?", pattern, pattern, pattern).
		Order("users.name ASC").
		Limit(limit).
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListUsersExcept returns up to limit users whose id is not in excludeIDs
func (r *PostgresUserRepository) ListUsersExcept(ctx context.Context, excludeIDs []string, limit int) ([]models.User, error) {
	users := []models.User{}
	q := r.db.WithContext(ctx)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Order("created_at DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
