package services

import (
	"testing"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
	"github.com/anonto42/nano-link/backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*repositories.Store, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return repositories.NewStore(db), db
}

// tickingClock returns strictly increasing millisecond timestamps.
func tickingClock(start int64) func() int64 {
	now := start
	return func() int64 {
		now++
		return now
	}
}

func notificationsFor(t *testing.T, db *gorm.DB, userID string) []models.Notification {
	t.Helper()
	var ns []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at ASC").Find(&ns).Error)
	return ns
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
