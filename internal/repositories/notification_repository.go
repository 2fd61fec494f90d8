package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	GetByRecipientID(ctx context.Context, recipientID string, limit int) ([]models.NotificationView, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
}

// PostgresNotificationRepository implements NotificationRepository on gorm
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// NewNotificationRepository returns the default NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return NewPostgresNotificationRepository(db)
}

func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByRecipientID returns the newest notifications with actor fields
func (r *PostgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string, limit int) ([]models.NotificationView, error) {
	notifications := []models.NotificationView{}
	err := r.db.WithContext(ctx).Table("notifications").
		Select(`notifications.id AS id, notifications.type AS type, notifications.entity_id AS entity_id,
			notifications.entity_type AS entity_type, notifications.is_read AS is_read,
			notifications.created_at AS created_at, notifications.actor_id AS actor_id,
			users.name AS actor_name, users.email AS actor_email, users.image AS actor_image`).
		Joins("JOIN users ON users.id = notifications.actor_id").
		Where("notifications.user_id = ?", recipientID).
		Order("notifications.created_at DESC").
		Order("notifications.id DESC").
		Limit(limit).
		Scan(&notifications).Error
	return notifications, err
}

func (r *PostgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID string) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notificationID).
		UpdateColumn("is_read", true).Error
}

func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", recipientID, false).
		UpdateColumn("is_read", true)
	return res.RowsAffected, res.Error
}
