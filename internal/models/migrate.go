package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Post{},
		&PostLike{},
		&Comment{},
		&CommentLike{},
		&Connection{},
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
		&Notification{},
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
