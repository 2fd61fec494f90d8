package services

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
)

// NotificationListLimit caps how many notifications List returns.
const NotificationListLimit = 50

// NotificationService reads and acknowledges notifications. Other services
// create them.
type NotificationService struct {
	store *repositories.Store
}

func NewNotificationService(store *repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns the user's newest notifications with actor fields.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.NotificationView, error) {
	views, err := s.store.Notifications.GetByRecipientID(ctx, userID, NotificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return views, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	n, err := s.store.Notifications.GetByID(ctx, notificationID)
	if err != nil {
		return lookupError(err, "Notification not found", "get notification")
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	if err := s.store.Notifications.MarkAsRead(ctx, n.ID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.store.Notifications.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.store.Notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
