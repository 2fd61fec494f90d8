package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	GetView(ctx context.Context, userID string) (*models.ProfileView, error)
}

// PostgresProfileRepository implements ProfileRepository on gorm
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// NewProfileRepository returns the default ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return NewPostgresProfileRepository(db)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a profile. A second profile for the same user is ErrDuplicate.
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return translateError(r.db.WithContext(ctx).Create(profile).Error)
}

// Update writes the editable columns and updated_at as given.
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		UpdateColumns(map[string]interface{}{
			"headline":   profile.Headline,
			"bio":        profile.Bio,
			"location":   profile.Location,
			"website":    profile.Website,
			"updated_at": profile.UpdatedAt,
		}).Error
}

// GetView left-joins the user to its profile. The user must exist; the
// profile columns are nil when no profile has been written yet.
func (r *PostgresProfileRepository) GetView(ctx context.Context, userID string) (*models.ProfileView, error) {
	var views []models.ProfileView
	err := r.db.WithContext(ctx).Table("users").
		Select(`profiles.id AS id, users.id AS user_id, profiles.headline AS headline, profiles.bio AS bio,
			profiles.location AS location, profiles.website AS website,
			profiles.created_at AS created_at, profiles.updated_at AS updated_at,
			users.name AS user_name, users.email AS user_email, users.image AS user_image`).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.id = ?", userID).
		Limit(1).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}
