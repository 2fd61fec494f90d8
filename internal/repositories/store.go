package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles every repository over one gorm handle. A Store created inside
// Transaction shares the transaction across all of its repositories.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Profiles      ProfileRepository
	Posts         PostRepository
	Likes         LikeRepository
	Comments      CommentRepository
	CommentLikes  CommentLikeRepository
	Connections   ConnectionRepository
	Conversations ConversationRepository
	Messages      MessageRepository
	Notifications NotificationRepository
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Profiles:      NewProfileRepository(db),
		Posts:         NewPostRepository(db),
		Likes:         NewLikeRepository(db),
		Comments:      NewCommentRepository(db),
		CommentLikes:  NewCommentLikeRepository(db),
		Connections:   NewConnectionRepository(db),
		Conversations: NewConversationRepository(db),
		Messages:      NewMessageRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// Transaction runs fn with a Store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB exposes the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}
