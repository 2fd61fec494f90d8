// Package services holds the managers of the social graph: connections,
// messaging, posts and comments, notifications, profiles and search. Each
// manager validates its input, enforces ownership and runs its writes through
// repositories.Store, wrapping a mutation and its notification in one
// transaction.
package services

import (
	"context"
	"time"

	"github.com/anonto42/nano-link/backend/internal/metrics"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// notify inserts a notification inside the caller's transaction. Actions on
// one's own content never notify.
func notify(ctx context.Context, tx *repositories.Store, n *models.Notification) (bool, error) {
	if n.UserID == n.ActorID {
		return false, nil
	}
	if err := tx.Notifications.CreateNotification(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

func recordNotification(sent bool, typ models.NotificationType) {
	if sent {
		metrics.NotificationsCreated.WithLabelValues(string(typ)).Inc()
	}
}
